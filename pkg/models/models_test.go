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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/bedrock-probe/pkg/errors"
)

func makeModelTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	for _, d := range []string{"mistral-7b", "llama-3", "config"} {
		require.NoError(t, os.Mkdir(filepath.Join(base, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(base, "README.md"), []byte("x"), 0o600))
	return base
}

func TestList(t *testing.T) {
	t.Run("sorted subdirectories only", func(t *testing.T) {
		names, err := List(makeModelTree(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"config", "llama-3", "mistral-7b"}, names)
	})

	t.Run("empty directory is empty slice", func(t *testing.T) {
		names, err := List(t.TempDir())
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := List(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, ErrPathNotFound)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	})

	t.Run("file is a listing failure", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "models")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		_, err := List(file)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPathNotFound)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	})

	t.Run("symlinked directory counts", func(t *testing.T) {
		base := t.TempDir()
		target := t.TempDir()
		require.NoError(t, os.Symlink(target, filepath.Join(base, "linked")))
		require.NoError(t, os.Symlink(filepath.Join(base, "gone"), filepath.Join(base, "dangling")))

		names, err := List(base)
		require.NoError(t, err)
		assert.Equal(t, []string{"linked"}, names)
	})
}

func serve(t *testing.T, l *Lister, method string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	l.HandleModels(rec, httptest.NewRequest(method, "/v1/bedrock/models", nil))
	return rec
}

func TestHandleModels(t *testing.T) {
	t.Run("lists models", func(t *testing.T) {
		rec := serve(t, NewLister(makeModelTree(t)), http.MethodGet)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"models":["config","llama-3","mistral-7b"]}`, rec.Body.String())
	})

	t.Run("empty list is not null", func(t *testing.T) {
		rec := serve(t, NewLister(t.TempDir()), http.MethodGet)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"models":[]}`, rec.Body.String())
	})

	t.Run("missing path is 200", func(t *testing.T) {
		rec := serve(t, NewLister(filepath.Join(t.TempDir(), "nope")), http.MethodGet)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"models":[],"error":"Model path not found"}`, rec.Body.String())
	})

	t.Run("listing failure is 500", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "models")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		rec := serve(t, NewLister(file), http.MethodGet)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
		assert.NotContains(t, body, "models")
	})

	t.Run("rejects post", func(t *testing.T) {
		rec := serve(t, NewLister(t.TempDir()), http.MethodPost)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
		assert.Contains(t, rec.Body.String(), "METHOD_NOT_ALLOWED")
	})
}
