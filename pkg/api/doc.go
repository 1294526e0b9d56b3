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
// Package api wires the bedrockd health service.
//
// Serve configures structured logging, reads the model paths from the
// environment (a variable set to "" is used as is), acquires the GPU telemetry probe and runs the HTTP server
// until SIGINT or SIGTERM. The probe is released after the server stops.
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// System endpoints (no rate limiting):
//   - GET /health  - status, GPU and host telemetry, model path configuration
//   - GET /ready   - readiness check
//   - GET /metrics - Prometheus metrics
//
// Application endpoints (with rate limiting):
//   - GET /v1/bedrock/models - immediate subdirectories of MODEL_BASE_PATH
//
// # Environment
//
//   - MODEL_BASE_PATH   - model directory root (default /models)
//   - MODEL_CONFIG_PATH - model configuration path (default /models/config)
//   - TELEMETRY_SAMPLE_TIMEOUT_SECONDS - bound on each GPU and host sample (default 5)
//   - LOG_LEVEL         - debug, info, warn or error (default info)
//   - PORT and the other pkg/server variables
//
// Example:
//
//	curl -s http://localhost:5000/health | jq .resources
//	curl -s http://localhost:5000/v1/bedrock/models
package api
