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
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	require.NotNil(t, s)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.Equal(t, "server", s.config.Name)
	assert.Contains(t, s.config.Handlers, "/test")
	assert.Contains(t, s.config.Handlers, "/", "default root handler")
}

func TestOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("bedrockd"),
		WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"/a": okHandler}),
		WithHandler(map[string]http.HandlerFunc{"/b": okHandler}),
		WithSystemHandler(map[string]http.HandlerFunc{"/health": okHandler}),
	)

	assert.Equal(t, "bedrockd", s.config.Name)
	assert.Equal(t, "1.2.3", s.config.Version)
	assert.Equal(t, 9090, s.config.Port)
	assert.EqualValues(t, 500, s.config.RateLimit)
	assert.Contains(t, s.config.Handlers, "/a")
	assert.Contains(t, s.config.Handlers, "/b")
	assert.Contains(t, s.config.SystemHandlers, "/health")
	assert.True(t, strings.HasSuffix(s.httpServer.Addr, ":9090"))
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name   string
		ready  bool
		status int
	}{
		{"ready", true, http.StatusOK},
		{"not ready", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	t.Run("rejects post", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleReady(rec, httptest.NewRequest(http.MethodPost, "/ready", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	// Generate at least one observation.
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bedrock_http_requests_total")
}

func TestRateLimiting_SkipsSystemRoutes(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1

	s := New(
		WithConfig(cfg),
		WithHandler(map[string]http.HandlerFunc{"/api": okHandler}),
		WithSystemHandler(map[string]http.HandlerFunc{"/health": okHandler}),
	)
	h := s.Handler()

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestDefaultRootHandler(t *testing.T) {
	s := New(
		WithName("bedrockd"),
		WithHandler(map[string]http.HandlerFunc{"/v1/bedrock/models": okHandler}),
		WithSystemHandler(map[string]http.HandlerFunc{"/health": okHandler}),
	)

	t.Run("lists routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.config.Handlers["/"](rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp rootResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bedrockd", resp.Name)
		assert.Contains(t, resp.Routes, "GET /v1/bedrock/models")
		assert.Contains(t, resp.Routes, "GET /health")
		assert.Contains(t, resp.Routes, "GET /ready")
		assert.Contains(t, resp.Routes, "GET /metrics")
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.config.Handlers["/"](rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("unknown path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg), WithSystemHandler(map[string]http.HandlerFunc{"/health": okHandler}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)
	assert.True(t, s.isReady())

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
	assert.False(t, s.isReady())
}

func TestMetricsPath(t *testing.T) {
	t.Run("moved", func(t *testing.T) {
		s := New(
			WithMetricsPath("/metrics/prometheus"),
			WithHandler(map[string]http.HandlerFunc{"/metrics": okHandler}),
		)

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/prometheus", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bedrock_http_requests_total")

		rec = httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String(), "caller route owns /metrics")
		assert.Contains(t, s.routes(), "GET /metrics/prometheus")
	})

	t.Run("disabled", func(t *testing.T) {
		s := New(WithMetricsPath(""))

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, s.routes(), "GET /metrics")
	})
}

func TestWithDefaultPort(t *testing.T) {
	t.Run("applies when PORT unset", func(t *testing.T) {
		t.Setenv(EnvVarPort, "")
		s := New(WithDefaultPort(8080))
		assert.Equal(t, 8080, s.config.Port)
		assert.True(t, strings.HasSuffix(s.httpServer.Addr, ":8080"))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(EnvVarPort, "7001")
		s := New(WithDefaultPort(8080))
		assert.Equal(t, 7001, s.config.Port)
	})

	t.Run("out of range ignored", func(t *testing.T) {
		t.Setenv(EnvVarPort, "")
		s := New(WithDefaultPort(70000))
		assert.Equal(t, DefaultPort, s.config.Port)
	})
}

func TestWithObserver_SeesBuiltInRoutes(t *testing.T) {
	var routes []string
	s := New(WithObserver(ObserverFunc(func(_ *http.Request, c Completion) {
		routes = append(routes, c.Route)
	})))
	s.setReady(true)

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, []string{"/ready", "/"}, routes)
}

func TestWithRequestIDHeader(t *testing.T) {
	s := New(
		WithRequestIDHeader("x-amzn-RequestId"),
		WithSystemHandler(map[string]http.HandlerFunc{"/health": okHandler}),
	)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := rec.Header().Get("X-Request-Id")
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get("X-Amzn-Requestid"))
}
