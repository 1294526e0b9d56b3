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
package gateway

import (
	"maps"
	"net/http"
	"sync"

	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

// Counters is a point-in-time copy of the request counters.
type Counters struct {
	TotalRequests       int64            `json:"totalRequests"`
	RequestsPerEndpoint map[string]int64 `json:"requestsPerEndpoint"`
	Errors              int64            `json:"errors"`
}

// Tracker counts every request the server sees. A request is counted, keyed
// by its URL path, as soon as it arrives, so GET /metrics includes itself and
// unknown paths are counted too. A response status of 400 or above is
// counted as an error once the handler returns.
type Tracker struct {
	mu          sync.Mutex
	total       int64
	perEndpoint map[string]int64
	errors      int64
}

// NewTracker returns a tracker with all counters at zero.
func NewTracker() *Tracker {
	return &Tracker{perEndpoint: make(map[string]int64)}
}

// StartRequest implements server.RequestStarter.
func (t *Tracker) StartRequest(r *http.Request, _ string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.perEndpoint[r.URL.Path]++
}

// ObserveRequest implements server.RequestObserver.
func (t *Tracker) ObserveRequest(_ *http.Request, c server.Completion) {
	if c.Status < http.StatusBadRequest {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors++
}

// Counters returns a copy that is safe to serialize while requests continue.
func (t *Tracker) Counters() Counters {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Counters{
		TotalRequests:       t.total,
		RequestsPerEndpoint: maps.Clone(t.perEndpoint),
		Errors:              t.errors,
	}
}
