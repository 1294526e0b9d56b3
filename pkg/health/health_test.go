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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/bedrock-probe/pkg/telemetry"
)

type stubSampler struct {
	snap  telemetry.Snapshot
	calls int
}

func (s *stubSampler) Sample(context.Context) telemetry.Snapshot {
	s.calls++
	return s.snap
}

var testEnv = Environment{ModelBasePath: "/models", ModelConfigPath: "/models/config"}

func get(t *testing.T, r *Reporter) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name string
		snap telemetry.Snapshot
		want string
	}{
		{
			name: "no device",
			snap: telemetry.Snapshot{Available: false},
			want: `{"status":"healthy","resources":{"available":false},
				"environment":{"MODEL_BASE_PATH":"/models","MODEL_CONFIG_PATH":"/models/config"}}`,
		},
		{
			name: "query failure",
			snap: telemetry.Snapshot{Available: true, Error: "temperature query failed: Unknown Error"},
			want: `{"status":"healthy","resources":{"available":true,"error":"temperature query failed: Unknown Error"},
				"environment":{"MODEL_BASE_PATH":"/models","MODEL_CONFIG_PATH":"/models/config"}}`,
		},
		{
			name: "full sample",
			snap: telemetry.Snapshot{
				Available:   true,
				DeviceName:  "Tesla T4",
				Memory:      &telemetry.MemoryUsage{Total: "15.84GB", Used: "1.07GB", Free: "14.77GB"},
				Temperature: "41°C",
				Utilization: &telemetry.Utilization{GPU: "17%", Memory: "5%"},
				System:      &telemetry.SystemUsage{CPUPercent: 12.5, MemoryPercent: 48.25},
			},
			want: `{"status":"healthy","resources":{"available":true,"device_name":"Tesla T4",
				"memory":{"total":"15.84GB","used":"1.07GB","free":"14.77GB"},"temperature":"41°C",
				"utilization":{"gpu":"17%","memory":"5%"},"system":{"cpu_percent":12.5,"memory_percent":48.25}},
				"environment":{"MODEL_BASE_PATH":"/models","MODEL_CONFIG_PATH":"/models/config"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubSampler{snap: tt.snap}
			rec := get(t, NewReporter(s, testEnv))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, rec.Body.String())
			assert.Equal(t, 1, s.calls)
		})
	}
}

func TestHandleHealth_FreshSamplePerRequest(t *testing.T) {
	s := &stubSampler{}
	r := NewReporter(s, testEnv)

	for i := 0; i < 3; i++ {
		get(t, r)
	}
	assert.Equal(t, 3, s.calls)
}

func TestHandleHealth_WithProbe(t *testing.T) {
	// A probe that was never initialized reports no device.
	p := telemetry.New()
	defer p.Shutdown()

	rec := get(t, NewReporter(p, testEnv))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resources":{"available":false}`)
}

func TestHandleHealth_MethodNotAllowed(t *testing.T) {
	s := &stubSampler{}
	rec := httptest.NewRecorder()
	NewReporter(s, testEnv).HandleHealth(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	assert.Contains(t, rec.Body.String(), "METHOD_NOT_ALLOWED")
	assert.Equal(t, 0, s.calls)
}
