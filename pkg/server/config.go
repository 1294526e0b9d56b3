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
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
)

// Environment variables read by parseConfig.
const (
	EnvVarPort            = "PORT"
	EnvVarShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvVarRateLimit       = "RATE_LIMIT"
	EnvVarRateLimitBurst  = "RATE_LIMIT_BURST"
)

// Defaults for the built-in routes.
const (
	// DefaultPort matches the port the model-serving container exposes.
	DefaultPort = 5000

	// DefaultMetricsPath serves the Prometheus exposition.
	DefaultMetricsPath = "/metrics"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are API routes. They run behind the full middleware chain,
	// including rate limiting.
	Handlers map[string]http.HandlerFunc

	// SystemHandlers are probe-style routes that are never rate limited.
	SystemHandlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// MetricsPath is where the Prometheus exposition is served. Empty
	// disables the route.
	MetricsPath string

	// RequestIDHeaders are extra response headers that echo the request id
	// next to X-Request-Id.
	RequestIDHeaders []string

	// Observers are called once per completed request, after the built-in
	// Prometheus instruments.
	Observers []RequestObserver

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	portFromEnv bool
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by the environment.
// Malformed values are ignored.
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              DefaultPort,
		MetricsPath:       DefaultMetricsPath,
		RateLimit:         100, // 100 req/s
		RateLimitBurst:    200, // burst of 200
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt(EnvVarPort); ok && port > 0 && port < 65536 {
		cfg.Port = port
		cfg.portFromEnv = true
	}

	// Allow customization of shutdown timeout to match the container stop grace period
	if seconds, ok := envInt(EnvVarShutdownTimeout); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if limit, ok := envInt(EnvVarRateLimit); ok && limit > 0 {
		cfg.RateLimit = rate.Limit(limit)
	}

	if burst, ok := envInt(EnvVarRateLimitBurst); ok && burst > 0 {
		cfg.RateLimitBurst = burst
	}

	return cfg
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, false
	}
	return v, true
}
