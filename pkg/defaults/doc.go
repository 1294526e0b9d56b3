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

// Package defaults provides centralized configuration constants for the probe
// service and the snapshot tool.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Telemetry timeouts: For GPU and host sampling
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - CLI timeouts: For command-line operations
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/bedrock-probe/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.TelemetrySampleTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Telemetry: 5s per sample, always shorter than the /health handler timeout
//   - HTTP handlers: 10s
//   - Server shutdown: 30s for graceful shutdown
package defaults
