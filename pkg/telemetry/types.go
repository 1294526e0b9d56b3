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
	"fmt"
)

const bytesPerGB = 1e9

// MemoryInfo is the device framebuffer usage in bytes.
type MemoryInfo struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// UtilizationRates are the device and memory controller busy percentages
// over the driver's last sample period.
type UtilizationRates struct {
	GPU    uint32
	Memory uint32
}

// Reading is the raw result of a successful query.
type Reading struct {
	DeviceName    string
	Memory        MemoryInfo
	TemperatureC  uint32
	Utilization   UtilizationRates
	CPUPercent    float64
	MemoryPercent float64
}

// Snapshot is the rendered form of a sample as served by /health.
// Unset optional fields are omitted from the encoded output.
type Snapshot struct {
	Available   bool         `json:"available" yaml:"available"`
	DeviceName  string       `json:"device_name,omitempty" yaml:"device_name,omitempty"`
	Memory      *MemoryUsage `json:"memory,omitempty" yaml:"memory,omitempty"`
	Temperature string       `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Utilization *Utilization `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	System      *SystemUsage `json:"system,omitempty" yaml:"system,omitempty"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// MemoryUsage holds gigabyte strings such as "15.84GB".
type MemoryUsage struct {
	Total string `json:"total" yaml:"total"`
	Used  string `json:"used" yaml:"used"`
	Free  string `json:"free" yaml:"free"`
}

// Utilization holds percent strings such as "42%".
type Utilization struct {
	GPU    string `json:"gpu" yaml:"gpu"`
	Memory string `json:"memory" yaml:"memory"`
}

// SystemUsage is host-level utilization.
type SystemUsage struct {
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
}

// Snapshot renders the reading into its served form.
func (r *Reading) Snapshot() Snapshot {
	return Snapshot{
		Available:  true,
		DeviceName: r.DeviceName,
		Memory: &MemoryUsage{
			Total: FormatGB(r.Memory.Total),
			Used:  FormatGB(r.Memory.Used),
			Free:  FormatGB(r.Memory.Free),
		},
		Temperature: FormatCelsius(r.TemperatureC),
		Utilization: &Utilization{
			GPU:    FormatPercent(r.Utilization.GPU),
			Memory: FormatPercent(r.Utilization.Memory),
		},
		System: &SystemUsage{
			CPUPercent:    r.CPUPercent,
			MemoryPercent: r.MemoryPercent,
		},
	}
}

// unavailableSnapshot is the only shape returned when no device was detected.
func unavailableSnapshot() Snapshot {
	return Snapshot{Available: false}
}

func errorSnapshot(msg string) Snapshot {
	return Snapshot{Available: true, Error: msg}
}

// FormatGB renders a byte count in decimal gigabytes with two decimals.
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.2fGB", float64(bytes)/bytesPerGB)
}

// FormatCelsius renders whole degrees Celsius.
func FormatCelsius(deg uint32) string {
	return fmt.Sprintf("%d°C", deg)
}

// FormatPercent renders an integer percentage.
func FormatPercent(p uint32) string {
	return fmt.Sprintf("%d%%", p)
}
