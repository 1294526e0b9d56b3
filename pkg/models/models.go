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
package models

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/NVIDIA/bedrock-probe/pkg/errors"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

// MsgPathNotFound is reported in the body when the base path does not exist.
const MsgPathNotFound = "Model path not found"

// ErrPathNotFound is returned by List when the base path does not exist.
var ErrPathNotFound = errors.New(errors.ErrCodeNotFound, MsgPathNotFound)

// Response is the 200 body of GET /v1/bedrock/models. Models is always
// encoded, as [] when empty.
type Response struct {
	Models []string `json:"models" yaml:"models"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// failureResponse is the 500 body.
type failureResponse struct {
	Error string `json:"error"`
}

// List returns the sorted names of the immediate subdirectories of basePath.
// The result is never nil on success.
func List(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ErrPathNotFound
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to list model path", err,
			map[string]any{"path": basePath})
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isDir(basePath, e) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDir(basePath string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(basePath, e.Name()))
	if err != nil {
		slog.Debug("skipping unresolvable symlink", "name", e.Name(), "error", err)
		return false
	}
	return info.IsDir()
}

// Lister serves the model listing for one base path.
type Lister struct {
	BasePath string
}

// NewLister returns a Lister for basePath.
func NewLister(basePath string) *Lister {
	return &Lister{BasePath: basePath}
}

// HandleModels handles GET /v1/bedrock/models.
func (l *Lister) HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	names, err := List(l.BasePath)
	switch {
	case stderrors.Is(err, ErrPathNotFound):
		slog.Debug("model path not found", "path", l.BasePath)
		serializer.RespondJSON(w, http.StatusOK, Response{Models: []string{}, Error: MsgPathNotFound})
	case err != nil:
		slog.Error("model listing failed", "path", l.BasePath, "error", err)
		serializer.RespondJSON(w, http.StatusInternalServerError, failureResponse{Error: failureMessage(err)})
	default:
		serializer.RespondJSON(w, http.StatusOK, Response{Models: names})
	}
}

// failureMessage reports the underlying filesystem error without the code prefix.
func failureMessage(err error) string {
	var se *errors.StructuredError
	if stderrors.As(err, &se) && se.Cause != nil {
		return se.Cause.Error()
	}
	return err.Error()
}
