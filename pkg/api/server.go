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
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/logging"
	"github.com/NVIDIA/bedrock-probe/pkg/models"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
	"github.com/NVIDIA/bedrock-probe/pkg/telemetry"
)

const (
	name           = "bedrockd"
	versionDefault = "dev"

	routeHealth = "/health"
	routeModels = "/v1/bedrock/models"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/bedrock-probe/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the health service and blocks until shutdown.
// The telemetry probe is acquired before the server starts and released
// after it stops.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg := LoadConfig()
	slog.Info("model paths",
		"base", cfg.ModelBasePath,
		"config", cfg.ModelConfigPath,
		"sampleTimeout", cfg.SampleTimeout,
	)

	probe := telemetry.New(telemetry.WithSampleTimeout(cfg.SampleTimeout))
	if err := probe.Initialize(ctx); err != nil {
		return err
	}
	defer probe.Shutdown()

	slog.Info("telemetry initialized", "gpu_available", probe.Available())

	s := newServer(cfg, probe)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer registers /health as a system route so it is never rate
// limited, and the model listing as an API route.
func newServer(cfg Config, sampler health.Sampler) *server.Server {
	reporter := health.NewReporter(sampler, cfg.Environment())
	lister := models.NewLister(cfg.ModelBasePath)

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithSystemHandler(map[string]http.HandlerFunc{
			routeHealth: reporter.HandleHealth,
		}),
		server.WithHandler(map[string]http.HandlerFunc{
			routeModels: lister.HandleModels,
		}),
	)
}
