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
package metricstore

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/health"
)

// emptyDocument is what the store holds before the first post.
var emptyDocument = json.RawMessage(`{}`)

// Document is the body of GET /metrics. Timestamp is nil until the first post.
type Document struct {
	Data      json.RawMessage `json:"data"`
	Timestamp *string         `json:"timestamp"`
}

// Store holds the most recently posted metrics document.
type Store struct {
	mu       sync.RWMutex
	data     json.RawMessage
	received time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: emptyDocument}
}

// Put replaces the stored document. data must be valid JSON; nil or empty
// data stores an empty object.
func (s *Store) Put(data json.RawMessage, at time.Time) {
	if len(data) == 0 {
		data = emptyDocument
	}
	cp := make(json.RawMessage, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = cp
	s.received = at
}

// Get returns the stored document.
func (s *Store) Get() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := Document{Data: s.data}
	if !s.received.IsZero() {
		ts := health.Timestamp(s.received)
		doc.Timestamp = &ts
	}
	return doc
}
