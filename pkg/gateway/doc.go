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

// Package gateway implements the API gateway front of the bedrock stack.
//
// The gateway keeps in-process request counters and publishes them as JSON,
// lists the services it fronts and answers liveness checks. Every response
// carries the request id as X-Request-Id and as x-amzn-RequestId, and
// allows any origin.
//
// # Endpoints
//
//   - GET /health       - {"status":"healthy","timestamp":...}
//   - GET /metrics      - request counters, see Counters
//   - GET /v1/services  - the fronted services and their endpoints
//
// The Prometheus exposition of the shared server moves to
// /metrics/prometheus so /metrics can keep its JSON shape:
//
//	{
//	  "metrics": {
//	    "totalRequests": 12,
//	    "requestsPerEndpoint": {"/health": 10, "/v1/services": 2},
//	    "errors": 0
//	  },
//	  "timestamp": "2025-01-02T03:04:05.678Z"
//	}
//
// Counters start at zero with the process and are never persisted.
//
// # Environment
//
//   - PORT     - listen port (default 8080)
//   - LOG_LEVEL and the other pkg/server variables
package gateway
