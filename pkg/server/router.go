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
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NVIDIA/bedrock-probe/pkg/errors"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
)

const routeReady = "/ready"

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	registered := make(map[string]bool)
	handle := func(path string, h http.HandlerFunc) {
		if registered[path] {
			slog.Warn("route already registered, keeping first", "path", path)
			return
		}
		registered[path] = true
		mux.HandleFunc(path, h)
	}

	// System endpoints (no rate limiting)
	handle(routeReady, s.withSystemMiddleware(routeReady, s.handleReady))
	for path, h := range s.config.SystemHandlers {
		handle(path, s.withSystemMiddleware(path, h))
	}

	// API endpoints with middleware
	for path, h := range s.config.Handlers {
		handle(path, s.withMiddleware(path, h))
	}

	if path := s.config.MetricsPath; path != "" {
		exposition := promhttp.Handler()
		handle(path, s.withSystemMiddleware(path, exposition.ServeHTTP))
	}

	return mux
}

// routes lists every served path, sorted.
func (s *Server) routes() []string {
	seen := map[string]bool{routeReady: true}
	if s.config.MetricsPath != "" {
		seen[s.config.MetricsPath] = true
	}
	for p := range s.config.Handlers {
		seen[p] = true
	}
	for p := range s.config.SystemHandlers {
		seen[p] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, "GET "+p)
	}
	sort.Strings(out)
	return out
}

type rootResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Ready     bool     `json:"ready"`
	Timestamp string   `json:"timestamp"`
	Routes    []string `json:"routes"`
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; only the exact root is served here.
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	serializer.RespondJSON(w, http.StatusOK, rootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
