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
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/errors"
)

// deviceIndex is the only device the probe reports on.
const deviceIndex = 0

var (
	// ErrDeviceUnavailable is returned by Query when no device was detected
	// during Initialize.
	ErrDeviceUnavailable = errors.New(errors.ErrCodeUnavailable, "no compatible GPU device detected")

	// ErrProbeClosed is returned by Initialize after Shutdown.
	ErrProbeClosed = errors.New(errors.ErrCodeUnavailable, "telemetry probe is shut down")
)

// Option configures a Probe.
type Option func(*Probe)

// WithDriver sets the GPU driver. Defaults to NVML.
func WithDriver(d Driver) Option {
	return func(p *Probe) {
		p.driver = d
	}
}

// WithHostSampler sets the host utilization sampler. Defaults to gopsutil.
func WithHostSampler(h HostSampler) Option {
	return func(p *Probe) {
		p.host = h
	}
}

// WithSampleTimeout bounds each Sample call.
func WithSampleTimeout(d time.Duration) Option {
	return func(p *Probe) {
		p.sampleTimeout = d
	}
}

// Probe owns the handle to GPU index 0 and the host sampler.
type Probe struct {
	mu            sync.Mutex
	driver        Driver
	host          HostSampler
	sampleTimeout time.Duration

	device      Device
	initialized bool
	driverUp    bool
	closed      bool
}

// New creates a probe. Call Initialize before sampling and Shutdown when done.
func New(opts ...Option) *Probe {
	p := &Probe{
		sampleTimeout: defaults.TelemetrySampleTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.driver == nil {
		p.driver = NewNVMLDriver()
	}
	if p.host == nil {
		p.host = NewHostSampler()
	}
	return p
}

// Initialize detects the device once and acquires the handle for index 0.
// A missing driver or device leaves the probe unavailable and is not an
// error. Repeated calls are no-ops.
func (p *Probe) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProbeClosed
	}
	if p.initialized {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, "telemetry initialization canceled", err)
	}
	p.initialized = true
	deviceAvailable.Set(0)

	if err := p.driver.Init(); err != nil {
		slog.Debug("gpu driver not available", "error", err)
		return nil
	}
	p.driverUp = true

	count, err := p.driver.DeviceCount()
	if err != nil {
		slog.Debug("gpu device count failed", "error", err)
		return nil
	}
	if count <= deviceIndex {
		slog.Debug("no gpu devices found")
		return nil
	}

	dev, err := p.driver.Device(deviceIndex)
	if err != nil {
		slog.Debug("gpu device handle unavailable", "index", deviceIndex, "error", err)
		return nil
	}
	p.device = dev
	deviceAvailable.Set(1)

	slog.Info("gpu device detected", "index", deviceIndex, "devices", count)
	return nil
}

// Available reports whether a device was detected during Initialize.
func (p *Probe) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.device != nil
}

// Query reads the device and host state. It returns ErrDeviceUnavailable
// without touching the driver when no device was detected, and a
// QUERY_FAILED error naming the first call that failed otherwise.
func (p *Probe) Query(ctx context.Context) (*Reading, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return nil, ErrDeviceUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "telemetry query canceled", err)
	}

	var (
		r   Reading
		err error
	)

	if r.Memory, err = p.device.Memory(); err != nil {
		return nil, queryFailure("memory", err)
	}
	if r.TemperatureC, err = p.device.Temperature(); err != nil {
		return nil, queryFailure("temperature", err)
	}
	if r.Utilization, err = p.device.Utilization(); err != nil {
		return nil, queryFailure("utilization", err)
	}
	if r.DeviceName, err = p.device.Name(); err != nil {
		return nil, queryFailure("name", err)
	}
	if r.CPUPercent, err = p.host.CPUPercent(ctx); err != nil {
		return nil, queryFailure("cpu", err)
	}
	if r.MemoryPercent, err = p.host.MemoryPercent(ctx); err != nil {
		return nil, queryFailure("memory_percent", err)
	}

	return &r, nil
}

// Sample returns a fresh snapshot. It never fails: an unavailable device
// yields {available:false} and a failed query yields {available:true, error}.
func (p *Probe) Sample(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		sampleDuration.Observe(time.Since(start).Seconds())
	}()

	if p.sampleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.sampleTimeout)
		defer cancel()
	}

	r, err := p.Query(ctx)
	switch {
	case stderrors.Is(err, ErrDeviceUnavailable):
		samplesTotal.WithLabelValues(resultUnavailable).Inc()
		return unavailableSnapshot()
	case err != nil:
		samplesTotal.WithLabelValues(resultError).Inc()
		slog.Warn("telemetry query failed", "error", err)
		return errorSnapshot(failureMessage(err))
	}

	samplesTotal.WithLabelValues(resultOK).Inc()
	return r.Snapshot()
}

// Shutdown releases the driver if Initialize loaded it. It is safe to call
// more than once; release errors are logged at debug and otherwise dropped.
func (p *Probe) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.device = nil

	if !p.driverUp {
		return
	}
	p.driverUp = false
	if err := p.driver.Shutdown(); err != nil {
		slog.Debug("gpu driver shutdown failed", "error", err)
	}
}

func queryFailure(query string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeQueryFailed,
		fmt.Sprintf("%s query failed", query), cause,
		map[string]any{"query": query})
}

// failureMessage drops the code prefix so the snapshot carries the same
// text the driver reported.
func failureMessage(err error) string {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		if se.Cause != nil {
			return fmt.Sprintf("%s: %v", se.Message, se.Cause)
		}
		return se.Message
	}
	return err.Error()
}
