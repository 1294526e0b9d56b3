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
package gateway

import (
	"net/http"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

// ServiceStatusActive marks a service the gateway currently routes to.
const ServiceStatusActive = "active"

// Service describes one service behind the gateway.
type Service struct {
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// MetricsResponse is the body of GET /metrics.
type MetricsResponse struct {
	Metrics   Counters `json:"metrics"`
	Timestamp string   `json:"timestamp"`
}

// ServicesResponse is the body of GET /v1/services.
type ServicesResponse struct {
	Services []Service `json:"services"`
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithService adds a service to the /v1/services listing.
func WithService(svc Service) Option {
	return func(g *Gateway) {
		g.services = append(g.services, svc)
	}
}

// WithClock replaces time.Now for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// Gateway serves the counters recorded by its Tracker.
type Gateway struct {
	tracker  *Tracker
	services []Service
	now      func() time.Time
}

// New returns a gateway that lists itself as its first service.
func New(tracker *Tracker, opts ...Option) *Gateway {
	g := &Gateway{
		tracker: tracker,
		services: []Service{{
			Name:      name,
			Status:    ServiceStatusActive,
			Endpoints: []string{routeHealth, routeMetrics, routeServices},
		}},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HandleMetrics handles GET /metrics.
func (g *Gateway) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, MetricsResponse{
		Metrics:   g.tracker.Counters(),
		Timestamp: health.Timestamp(g.now()),
	})
}

// HandleServices handles GET /v1/services.
func (g *Gateway) HandleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, ServicesResponse{Services: g.services})
}

// Methods advertised to CORS preflight requests.
const corsAllowMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// withCORS allows any origin. Preflight requests are answered with 204
// before reaching next.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				w.Header().Set("Access-Control-Allow-Headers", requested)
				w.Header().Add("Vary", "Access-Control-Request-Headers")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
