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
package metricstore

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/logging"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

const (
	name           = "cloudwatch"
	versionDefault = "dev"

	// DefaultPort is used when PORT is not set.
	DefaultPort = 9090

	routeHealth     = "/health"
	routeMetrics    = "/metrics"
	routePrometheus = "/metrics/prometheus"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/bedrock-probe/pkg/metricstore.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the metric store and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := newServer(NewStore(), time.Now).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

func newServer(store *Store, now func() time.Time) *server.Server {
	h := NewHandler(store, now)

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithDefaultPort(DefaultPort),
		server.WithMetricsPath(routePrometheus),
		server.WithSystemHandler(map[string]http.HandlerFunc{
			routeHealth: health.HandleLiveness,
		}),
		server.WithHandler(map[string]http.HandlerFunc{
			routeMetrics: h.HandleMetrics,
		}),
	)
}
