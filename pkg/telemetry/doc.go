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
// Package telemetry samples GPU and host resource utilization for the
// health endpoint.
//
// A Probe owns the handle to GPU index 0 for its whole lifetime. The handle is
// acquired once by Initialize and released once by Shutdown; callers pass the
// probe explicitly to whatever needs a sample.
//
// # Availability
//
// Availability is decided once, during Initialize. When the driver cannot be
// loaded or no device is present the probe is unavailable for good and every
// Sample returns exactly:
//
//	{"available": false}
//
// without calling the driver. There is no hot-plug re-detection.
//
// # Sampling
//
// Sample queries memory, temperature, utilization, the device name and the
// host CPU and memory percentages, in that order. Any failing call replaces
// the whole snapshot with an error variant:
//
//	{"available": true, "error": "temperature query failed: Unknown Error"}
//
// Query is the explicit result form of the same operation and returns the raw
// Reading together with a structured error:
//
//	reading, err := probe.Query(ctx)
//	switch {
//	case errors.Is(err, telemetry.ErrDeviceUnavailable):
//	    // no GPU
//	case err != nil:
//	    // errors.CodeOf(err) == errors.ErrCodeQueryFailed
//	}
//
// # Drivers
//
// The default Driver is backed by NVML (github.com/NVIDIA/go-nvml) and the
// default HostSampler by gopsutil. Both are interfaces so tests and other
// platforms can supply their own:
//
//	probe := telemetry.New(
//	    telemetry.WithDriver(fake),
//	    telemetry.WithHostSampler(host),
//	)
//
// # Concurrency
//
// All probe methods are safe for concurrent use. Calls that touch the device
// handle are serialized by the probe.
package telemetry
