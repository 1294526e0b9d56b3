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
	"context"
	"fmt"
	"time"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
)

// Driver enumerates GPU devices. Init must succeed before any other call
// and Shutdown releases whatever Init acquired.
type Driver interface {
	Init() error
	DeviceCount() (int, error)
	Device(index int) (Device, error)
	Shutdown() error
}

// Device is a handle to one GPU.
type Device interface {
	Name() (string, error)
	Memory() (MemoryInfo, error)
	Temperature() (uint32, error)
	Utilization() (UtilizationRates, error)
}

// HostSampler reports host-wide utilization.
type HostSampler interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
}

// NewNVMLDriver returns a Driver backed by the NVIDIA Management Library.
// The library is loaded lazily by Init, so constructing the driver on a host
// without libnvidia-ml is safe.
func NewNVMLDriver() Driver {
	return &nvmlDriver{}
}

type nvmlDriver struct{}

func (d *nvmlDriver) Init() error {
	return nvmlErr(nvml.Init())
}

func (d *nvmlDriver) DeviceCount() (int, error) {
	n, ret := nvml.DeviceGetCount()
	if err := nvmlErr(ret); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *nvmlDriver) Device(index int) (Device, error) {
	h, ret := nvml.DeviceGetHandleByIndex(index)
	if err := nvmlErr(ret); err != nil {
		return nil, err
	}
	return &nvmlDevice{handle: h}, nil
}

func (d *nvmlDriver) Shutdown() error {
	return nvmlErr(nvml.Shutdown())
}

type nvmlDevice struct {
	handle nvml.Device
}

func (d *nvmlDevice) Name() (string, error) {
	name, ret := d.handle.GetName()
	return name, nvmlErr(ret)
}

func (d *nvmlDevice) Memory() (MemoryInfo, error) {
	m, ret := d.handle.GetMemoryInfo()
	if err := nvmlErr(ret); err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{Total: m.Total, Used: m.Used, Free: m.Free}, nil
}

func (d *nvmlDevice) Temperature() (uint32, error) {
	t, ret := d.handle.GetTemperature(nvml.TEMPERATURE_GPU)
	return t, nvmlErr(ret)
}

func (d *nvmlDevice) Utilization() (UtilizationRates, error) {
	u, ret := d.handle.GetUtilizationRates()
	if err := nvmlErr(ret); err != nil {
		return UtilizationRates{}, err
	}
	return UtilizationRates{GPU: u.Gpu, Memory: u.Memory}, nil
}

// nvmlErr converts an NVML return code into a Go error; SUCCESS is nil.
func nvmlErr(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return fmt.Errorf("%s", nvml.ErrorString(ret))
}

// NewHostSampler returns a HostSampler backed by gopsutil.
func NewHostSampler() HostSampler {
	return &psHostSampler{interval: defaults.TelemetryCPUInterval}
}

type psHostSampler struct {
	interval time.Duration
}

// CPUPercent returns overall CPU utilization. With a zero interval the value
// covers the time since the previous call.
func (s *psHostSampler) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, s.interval, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no cpu utilization reported")
	}
	return pcts[0], nil
}

func (s *psHostSampler) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}
