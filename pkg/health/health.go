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
package health

import (
	"context"
	"net/http"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
	"github.com/NVIDIA/bedrock-probe/pkg/telemetry"
)

// StatusHealthy is the only status the endpoint reports.
const StatusHealthy = "healthy"

// Sampler produces a telemetry snapshot. *telemetry.Probe satisfies it.
type Sampler interface {
	Sample(ctx context.Context) telemetry.Snapshot
}

// Environment is the static configuration echoed by /health.
type Environment struct {
	ModelBasePath   string `json:"MODEL_BASE_PATH" yaml:"MODEL_BASE_PATH"`
	ModelConfigPath string `json:"MODEL_CONFIG_PATH" yaml:"MODEL_CONFIG_PATH"`
}

// Response is the body of GET /health.
type Response struct {
	Status      string             `json:"status" yaml:"status"`
	Resources   telemetry.Snapshot `json:"resources" yaml:"resources"`
	Environment Environment        `json:"environment" yaml:"environment"`
}

// Reporter builds health responses from a sampler and a fixed environment.
type Reporter struct {
	sampler Sampler
	env     Environment
}

// NewReporter returns a Reporter.
func NewReporter(sampler Sampler, env Environment) *Reporter {
	return &Reporter{sampler: sampler, env: env}
}

// Report takes a fresh sample and returns the full response.
func (h *Reporter) Report(ctx context.Context) Response {
	return Response{
		Status:      StatusHealthy,
		Resources:   h.sampler.Sample(ctx),
		Environment: h.env,
	}
}

// HandleHealth handles GET /health.
func (h *Reporter) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.HealthHandlerTimeout)
	defer cancel()

	serializer.RespondJSON(w, http.StatusOK, h.Report(ctx))
}
