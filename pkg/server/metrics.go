// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Completion describes a request once its handler has returned.
type Completion struct {
	// Route is the registered pattern that served the request, which
	// differs from r.URL.Path for the "/" catch-all.
	Route    string
	Status   int
	Bytes    int64
	Duration time.Duration
}

// RequestObserver is called once per completed request on every route,
// including the built-in ones.
type RequestObserver interface {
	ObserveRequest(r *http.Request, c Completion)
}

// RequestStarter is implemented by observers that also want to see a
// request before its handler runs.
type RequestStarter interface {
	StartRequest(r *http.Request, route string)
}

// ObserverFunc adapts a plain function to RequestObserver.
type ObserverFunc func(r *http.Request, c Completion)

// ObserveRequest calls f.
func (f ObserverFunc) ObserveRequest(r *http.Request, c Completion) {
	f(r, c)
}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bedrock_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bedrock_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bedrock_http_response_size_bytes",
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{"route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bedrock_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bedrock_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bedrock_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)
)

func recordCompletion(r *http.Request, c Completion) {
	httpRequestsTotal.WithLabelValues(r.Method, c.Route, strconv.Itoa(c.Status)).Inc()
	httpRequestDuration.WithLabelValues(r.Method, c.Route).Observe(c.Duration.Seconds())
	httpResponseSize.WithLabelValues(c.Route).Observe(float64(c.Bytes))
}

// observeMiddleware is the outermost layer of both chains. Labels use the
// route pattern so unknown paths hitting "/" cannot grow label cardinality.
func (s *Server) observeMiddleware(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		for _, o := range s.config.Observers {
			if st, ok := o.(RequestStarter); ok {
				st.StartRequest(r, route)
			}
		}

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		c := Completion{
			Route:    route,
			Status:   rw.Status(),
			Bytes:    rw.BytesWritten(),
			Duration: time.Since(start),
		}
		recordCompletion(r, c)
		for _, o := range s.config.Observers {
			o.ObserveRequest(r, c)
		}
	}
}
