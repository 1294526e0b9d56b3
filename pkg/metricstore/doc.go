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

// Package metricstore implements a single-slot metrics sink.
//
// A client posts one JSON document to /metrics. The store keeps the latest
// document and when it arrived, and returns both on GET:
//
//	{"data": {"gpu": {"utilization": 17}}, "timestamp": "2025-01-02T03:04:05.678Z"}
//
// Before the first post the reply is {"data": {}, "timestamp": null}. Each
// post replaces the previous document; nothing is persisted across restarts.
//
// Only bodies declared as application/json are parsed. Any other content
// type is stored as an empty object. A JSON body must be an object or an
// array and may not exceed 100 KiB.
//
// # Endpoints
//
//   - GET  /health   - {"status":"healthy","timestamp":...}
//   - GET  /metrics  - the stored document
//   - POST /metrics  - replace the stored document, replies {"status":"success"}
//
// The Prometheus exposition moves to /metrics/prometheus.
//
// # Environment
//
//   - PORT     - listen port (default 9090)
//   - LOG_LEVEL and the other pkg/server variables
package metricstore
