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
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGB(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.00GB"},
		{1_000_000_000, "1.00GB"},
		{15_843_721_216, "15.84GB"},
		{85_899_345_920, "85.90GB"},
	}

	gb := regexp.MustCompile(`^\d+\.\d{2}GB$`)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatGB(tt.bytes)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, gb, got)
		})
	}
}

func TestFormatCelsius(t *testing.T) {
	assert.Equal(t, "0°C", FormatCelsius(0))
	assert.Equal(t, "87°C", FormatCelsius(87))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "100%", FormatPercent(100))
}

func TestSnapshot_JSONShape(t *testing.T) {
	t.Run("error variant", func(t *testing.T) {
		data, err := json.Marshal(errorSnapshot("boom"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"available":true,"error":"boom"}`, string(data))
	})

	t.Run("full reading", func(t *testing.T) {
		r := Reading{
			DeviceName:    "A100",
			Memory:        MemoryInfo{Total: 2e9, Used: 5e8, Free: 1.5e9},
			TemperatureC:  30,
			Utilization:   UtilizationRates{GPU: 1, Memory: 2},
			CPUPercent:    3.5,
			MemoryPercent: 4.5,
		}
		data, err := json.Marshal(r.Snapshot())
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"available": true,
			"device_name": "A100",
			"memory": {"total": "2.00GB", "used": "0.50GB", "free": "1.50GB"},
			"temperature": "30°C",
			"utilization": {"gpu": "1%", "memory": "2%"},
			"system": {"cpu_percent": 3.5, "memory_percent": 4.5}
		}`, string(data))
	})
}
