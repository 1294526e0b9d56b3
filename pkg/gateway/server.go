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
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/logging"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

const (
	name           = "apigateway"
	versionDefault = "dev"

	// DefaultPort is used when PORT is not set.
	DefaultPort = 8080

	// RequestIDHeader echoes the request id in the form API Gateway clients expect.
	RequestIDHeader = "x-amzn-RequestId"

	routeHealth     = "/health"
	routeMetrics    = "/metrics"
	routeServices   = "/v1/services"
	routePrometheus = "/metrics/prometheus"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/bedrock-probe/pkg/gateway.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the gateway and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := newServer(NewTracker()).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

func newServer(tracker *Tracker, opts ...Option) *server.Server {
	g := New(tracker, opts...)

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithDefaultPort(DefaultPort),
		server.WithMetricsPath(routePrometheus),
		server.WithRequestIDHeader(RequestIDHeader),
		server.WithObserver(tracker),
		server.WithSystemHandler(map[string]http.HandlerFunc{
			routeHealth: withCORS(health.HandleLiveness),
		}),
		server.WithHandler(map[string]http.HandlerFunc{
			routeMetrics:  withCORS(g.HandleMetrics),
			routeServices: withCORS(g.HandleServices),
		}),
	)
}
