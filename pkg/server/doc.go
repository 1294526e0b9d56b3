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
// Package server provides the HTTP server shared by the bedrock services.
//
// The server wires caller-supplied routes behind a middleware chain and adds
// a few built-in routes. It keeps no application state of its own.
//
// # Routes
//
// API routes (WithHandler) run behind the full chain: request observation,
// request id, panic recovery, rate limiting and request logging. System
// routes (WithSystemHandler) skip rate limiting so liveness checks are never
// throttled.
//
// Built-in routes:
//
//	GET /         name, version, readiness and the registered routes
//	GET /ready    200 while serving, 503 before start and during shutdown
//	GET /metrics  Prometheus exposition, moved or disabled with WithMetricsPath
//
// Every route, built-in or not, reports a Completion to the Prometheus
// instruments and to each RequestObserver added with WithObserver. The
// request id is echoed as X-Request-Id and under any WithRequestIDHeader alias.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("bedrockd"),
//	    server.WithVersion(version),
//	    server.WithSystemHandler(map[string]http.HandlerFunc{
//	        "/health": reporter.HandleHealth,
//	    }),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/bedrock/models": lister.HandleModels,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is canceled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to the shutdown timeout.
//
// # Configuration
//
// Defaults are read from the environment when the server is created:
//
//	PORT                      listen port (default 5000, or WithDefaultPort)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	RATE_LIMIT                API requests per second (default 100)
//	RATE_LIMIT_BURST          API burst size (default 200)
//
// Malformed values are ignored.
//
// # Errors
//
// Error replies share one JSON shape:
//
//	{
//	  "code": "METHOD_NOT_ALLOWED",
//	  "message": "Method not allowed",
//	  "details": {"method": "POST"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status and retryable flag from the code of a
// pkg/errors StructuredError.
//
// # References
//
//   - Rate limiting: https://pkg.go.dev/golang.org/x/time/rate
//   - UUID generation: https://pkg.go.dev/github.com/google/uuid
//   - Error groups: https://pkg.go.dev/golang.org/x/sync/errgroup
package server
