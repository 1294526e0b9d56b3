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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

const test1Name = "test1"

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{
		{Name: test1Name, Value: 123},
		{Name: "test2", Value: 456},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}
	if result[0].Name != test1Name || result[0].Value != 123 {
		t.Errorf("Unexpected data: %+v", result[0])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented JSON output")
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := map[string]any{"available": false, "error": "no device"}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result["available"] != false {
		t.Errorf("available = %v, want false", result["available"])
	}
	if result["error"] != "no device" {
		t.Errorf("error = %v, want %q", result["error"], "no device")
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	type memory struct {
		Total string
		Used  string
	}
	type reading struct {
		Name   string
		Memory memory
		Tags   []string
	}

	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := reading{
		Name:   "Tesla T4",
		Memory: memory{Total: "16.00GB", Used: "1.00GB"},
		Tags:   []string{"gpu"},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FIELD", "VALUE", "Name", "Tesla T4", "Memory.Total", "16.00GB", "Tags.[0]", "gpu"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Rows are sorted by key.
	if strings.Index(out, "Memory.Total") > strings.Index(out, "Name") {
		t.Errorf("expected sorted rows:\n%s", out)
	}
}

func TestWriter_SerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("got %q, want <empty>", buf.String())
	}
}

func TestWriter_SerializeTableScalar(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), 42); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), defaultValueKey) {
		t.Errorf("expected %q key in output: %s", defaultValueKey, buf.String())
	}
}

func TestNewWriter_Defaults(t *testing.T) {
	w := NewWriter(Format("bogus"), nil)
	if w.format != FormatJSON {
		t.Errorf("format = %q, want %q", w.format, FormatJSON)
	}
	if w.output != os.Stdout {
		t.Error("expected stdout when output is nil")
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("IsUnknown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	got := SupportedFormats()
	if len(got) != 3 {
		t.Fatalf("expected 3 formats, got %v", got)
	}
	for _, f := range got {
		if Format(f).IsUnknown() {
			t.Errorf("supported format %q reports unknown", f)
		}
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		w := NewFileWriterOrStdout(FormatJSON, path)

		if err := w.Serialize(context.Background(), testConfig{Name: "x", Value: 1}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		// Second close is a no-op.
		if err := w.Close(); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !strings.Contains(string(data), `"name": "x"`) {
			t.Errorf("unexpected file content: %s", data)
		}
	})

	t.Run("empty path falls back to stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatYAML, "  ")
		if w.output != os.Stdout {
			t.Error("expected stdout writer")
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close on stdout writer failed: %v", err)
		}
	})

	t.Run("unwritable path falls back to stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
		if w.output != os.Stdout {
			t.Error("expected stdout writer")
		}
	})
}
