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
package header

import (
	"time"
)

// APIVersion is the schema version stamped on documents written by wsnap.
const APIVersion = "wsnap.nvidia.com/v1"

// Kind names the type of document a Header describes.
type Kind string

const (
	KindSnapshotIndex   Kind = "SnapshotIndex"
	KindSnapshotSummary Kind = "SnapshotSummary"
	KindTelemetrySample Kind = "TelemetrySample"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshotIndex, KindSnapshotSummary, KindTelemetrySample:
		return true
	default:
		return false
	}
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata adds a metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithVersion records the version of the tool that produced the document.
// Empty versions are not recorded.
func WithVersion(version string) Option {
	return func(h *Header) {
		if version != "" {
			WithMetadata("version", version)(h)
		}
	}
}

// WithTimestamp records t in UTC, RFC 3339.
func WithTimestamp(t time.Time) Option {
	return WithMetadata("timestamp", t.UTC().Format(time.RFC3339))
}

// New returns a Header of the given kind stamped with APIVersion and the
// current time. Options run after the defaults and may override them.
func New(kind Kind, opts ...Option) Header {
	h := Header{
		Kind:       kind,
		APIVersion: APIVersion,
	}
	WithTimestamp(time.Now())(&h)
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header identifies a serialized document, Kubernetes style.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
