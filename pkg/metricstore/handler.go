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
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/errors"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

// StatusSuccess is reported after a document is stored.
const StatusSuccess = "success"

type postResponse struct {
	Status string `json:"status"`
}

// Handler serves a Store over HTTP.
type Handler struct {
	store *Store
	now   func() time.Time
}

// NewHandler returns a handler for store. A nil clock uses time.Now.
func NewHandler(store *Store, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: store, now: now}
}

// HandleMetrics handles GET and POST /metrics.
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		serializer.RespondJSON(w, http.StatusOK, h.store.Get())
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		server.WriteMethodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read metrics document", nil)
		return
	}
	h.store.Put(doc, h.now())
	serializer.RespondJSON(w, http.StatusOK, postResponse{Status: StatusSuccess})
}

// readDocument returns the posted JSON document, or nil when the request
// does not carry one.
func readDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	if !isJSONContent(r.Header.Get("Content-Type")) {
		return nil, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, defaults.MetricStoreMaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"metrics document too large", map[string]any{"limitBytes": tooLarge.Limit})
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read request body", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if body[0] != '{' && body[0] != '[' {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"metrics document must be a JSON object or array")
	}
	if !json.Valid(body) {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "metrics document is not valid JSON")
	}
	return body, nil
}

// isJSONContent accepts application/json and any +json media type.
func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
