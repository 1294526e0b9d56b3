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

package defaults

import "time"

// Telemetry timeouts for device and host sampling.
const (
	// TelemetrySampleTimeout bounds a single telemetry sample, including the
	// host CPU measurement.
	TelemetrySampleTimeout = 5 * time.Second

	// TelemetryCPUInterval is the window passed to the host CPU sampler.
	// Zero compares against the previous call, which keeps /health non-blocking.
	TelemetryCPUInterval = 0 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// HealthHandlerTimeout is the timeout for /health requests.
	HealthHandlerTimeout = 10 * time.Second

	// ModelsHandlerTimeout is the timeout for model directory listing requests.
	ModelsHandlerTimeout = 10 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for workspace snapshot operations.
	CLISnapshotTimeout = 5 * time.Minute

	// CLITelemetryTimeout is the default timeout for a one-shot telemetry sample.
	CLITelemetryTimeout = 30 * time.Second
)

const (
	// MetricStoreMaxBodyBytes caps a single metrics document posted to the
	// metric store.
	MetricStoreMaxBodyBytes = 100 << 10
)
