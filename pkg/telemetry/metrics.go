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
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sample results used as the "result" label.
const (
	resultOK          = "ok"
	resultError       = "error"
	resultUnavailable = "unavailable"
)

var (
	samplesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bedrock_telemetry_samples_total",
			Help: "Total number of telemetry samples by result",
		},
		[]string{"result"},
	)

	sampleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bedrock_telemetry_sample_duration_seconds",
			Help:    "Telemetry sample latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	deviceAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bedrock_telemetry_device_available",
			Help: "Whether a GPU device was detected at startup (1) or not (0)",
		},
	)
)
