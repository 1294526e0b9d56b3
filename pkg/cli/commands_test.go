/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/bedrock-probe/pkg/header"
	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/telemetry"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &buf
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return buf.String(), err
}

func TestSnapshotCommand(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("print(1)"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "bundle.js"), []byte("minified"), 0o600))

	out, err := runCLI(t, "snapshot", "--root", root, "--output-dir", outDir, "--exclude-dir", "dist")
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace snapshot created: ")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, regexp.MustCompile(`^workspace_snapshot_\d{8}_\d{6}\.md$`), entries[0].Name())

	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "```python\nprint(1)\n```")
	assert.Contains(t, string(data), "*dist directory present but contents excluded*")
	assert.NotContains(t, string(data), "minified")
}

func TestSnapshotCommand_PolicyFile(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("keep"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "drop.log"), []byte("drop"), 0o600))

	policy := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(policy, []byte("excludedExtensions: [log]\n"), 0o600))

	_, err := runCLI(t, "snapshot", "--root", root, "--output-dir", outDir, "--policy", policy)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep")
	assert.NotContains(t, string(data), "drop.log")
}

func TestSnapshotCommand_Report(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.exe"), []byte("MZ"), 0o600))
	report := filepath.Join(t.TempDir(), "summary.json")

	_, err := runCLI(t, "snapshot", "--root", root, "--output-dir", outDir, "--report", report)
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)

	var got snapshotSummary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, header.KindSnapshotSummary, got.Kind)
	assert.Equal(t, outDir, filepath.Dir(got.Output))
	require.NotNil(t, got.Summary)
	assert.Equal(t, 1, got.Summary.FilesIncluded)
	assert.Equal(t, 1, got.Summary.FilesSkipped)
}

func TestSnapshotCommand_MissingRoot(t *testing.T) {
	_, err := runCLI(t, "snapshot", "--root", filepath.Join(t.TempDir(), "missing"), "--output-dir", t.TempDir())
	require.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	doc := "\n### Directory: ./.git\n*.git directory present but contents excluded*\n" +
		"\n### File: a.py\n```python\nprint(1)\nprint(2)\n```\n" +
		"\n### File: blob.dat\n*Binary or unreadable file*\n"
	path := filepath.Join(t.TempDir(), "snap.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := runCLI(t, "inspect", "--format", "json", "--content", path)
	require.NoError(t, err)

	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, header.KindSnapshotIndex, report.Kind)
	assert.Equal(t, header.APIVersion, report.APIVersion)
	assert.Equal(t, path, report.Snapshot)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 1, report.Directories)
	require.Len(t, report.Sections, 3)
	assert.Equal(t, "python", report.Sections[1].Language)
	assert.Equal(t, 2, report.Sections[1].Lines)
	assert.Equal(t, "print(1)\nprint(2)", report.Sections[1].Content)
	assert.Equal(t, "Binary or unreadable file", report.Sections[2].Placeholder)
}

func TestInspectCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "inspect")
	require.Error(t, err)

	_, err = runCLI(t, "inspect", filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)

	_, err = runCLI(t, "inspect", "--format", "xml", "whatever.md")
	require.Error(t, err)
}

type noDriver struct{}

func (noDriver) Init() error { return stderrors.New("libnvidia-ml.so.1 not found") }
func (noDriver) DeviceCount() (int, error) { return 0, nil }
func (noDriver) Device(int) (telemetry.Device, error) { return nil, stderrors.New("no device") }
func (noDriver) Shutdown() error { return nil }

func TestTelemetryCommand_Local(t *testing.T) {
	orig := probeOptions
	t.Cleanup(func() { probeOptions = orig })
	probeOptions = func() []telemetry.Option {
		return []telemetry.Option{telemetry.WithDriver(noDriver{})}
	}

	out, err := runCLI(t, "telemetry", "--format", "json")
	require.NoError(t, err)

	var got telemetrySample
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, header.KindTelemetrySample, got.Kind)
	assert.Equal(t, localSource, got.Source)
	assert.Nil(t, got.Health)
	require.NotNil(t, got.Resources)
	assert.Equal(t, telemetry.Snapshot{Available: false}, *got.Resources)
	assert.NotContains(t, out, "device_name")
}

func TestTelemetryCommand_Remote(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, health.Response{
			Status:    health.StatusHealthy,
			Resources: telemetry.Snapshot{Available: false},
			Environment: health.Environment{
				ModelBasePath:   "/models",
				ModelConfigPath: "/models/config",
			},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, "telemetry", "--format", "json", "--url", srv.URL+"/")
	require.NoError(t, err)

	var got telemetrySample
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, srv.URL+"/", got.Source)
	assert.Nil(t, got.Resources)
	require.NotNil(t, got.Health)
	assert.Equal(t, health.StatusHealthy, got.Health.Status)
	assert.False(t, got.Health.Resources.Available)
	assert.Equal(t, "/models", got.Health.Environment.ModelBasePath)
	assert.Equal(t, name+"/"+version, userAgent)
}

func TestTelemetryCommand_RemoteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := runCLI(t, "telemetry", "--url", srv.URL, "--timeout", "50ms")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTelemetryCommand_RemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := runCLI(t, "telemetry", "--url", srv.URL)
	require.Error(t, err)
}
