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
package snapshot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NVIDIA/bedrock-probe/pkg/errors"
)

// FileNameLayout is the time layout of snapshot file names.
const FileNameLayout = "20060102_150405"

// Option configures a Collector.
type Option func(*Collector)

// Collector writes Markdown snapshots of directory trees.
type Collector struct {
	policy Policy
	detect bool
	now    func() time.Time
}

// WithPolicy replaces the default exclusion and language policy.
func WithPolicy(p Policy) Option {
	return func(c *Collector) {
		c.policy = p.Normalize()
	}
}

// WithLanguageDetection labels files whose extension the policy does not
// know using the chroma lexer registry.
func WithLanguageDetection(enabled bool) Option {
	return func(c *Collector) {
		c.detect = enabled
	}
}

// WithClock sets the time source used for output file names.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCollector returns a Collector using DefaultPolicy unless overridden.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		policy: DefaultPolicy().Normalize(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileName returns the snapshot file name for t.
func FileName(t time.Time) string {
	return fmt.Sprintf("workspace_snapshot_%s.md", t.Format(FileNameLayout))
}

// CollectToFile writes a snapshot of root into a new file in dir, or the
// working directory when dir is empty, and returns its path. The output file
// is never part of its own snapshot. A root that does not exist is a
// NOT_FOUND error and no file is created. On cancellation the partial file is left
// in place and its path is still returned.
func (c *Collector) CollectToFile(ctx context.Context, root, dir string) (string, *Summary, error) {
	if err := checkRoot(root); err != nil {
		return "", nil, err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(c.now()))

	f, err := os.Create(path)
	if err != nil {
		return "", nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create snapshot file", err, map[string]any{"path": path})
	}

	skip := ""
	if abs, absErr := filepath.Abs(path); absErr == nil {
		skip = abs
	}

	bw := bufio.NewWriter(f)
	summary, err := c.collect(ctx, root, bw, skip)
	if flushErr := bw.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("failed to flush snapshot file: %w", flushErr)
	}
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close snapshot file: %w", closeErr)
	}
	return path, summary, err
}

// Collect writes a snapshot of root to w.
func (c *Collector) Collect(ctx context.Context, root string, w io.Writer) (*Summary, error) {
	return c.collect(ctx, root, w, "")
}

func (c *Collector) collect(ctx context.Context, root string, w io.Writer, skip string) (*Summary, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	wk := &walker{
		Collector: c,
		root:      root,
		skip:      skip,
		out:       &sectionWriter{w: w},
		summary:   &Summary{Root: root},
	}

	start := time.Now()
	err := wk.walk(ctx, root, root)
	if err == nil {
		err = wk.out.err
	}

	slog.Debug("snapshot collected",
		slog.String("root", root),
		slog.Int("included", wk.summary.FilesIncluded),
		slog.Int("excluded", wk.summary.FilesExcluded),
		slog.Int("skipped", wk.summary.FilesSkipped),
		slog.Int("unreadable", wk.summary.FilesUnreadable),
		slog.Duration("duration", time.Since(start)),
	)

	return wk.summary, err
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeNotFound,
			"snapshot root not found", err, map[string]any{"root": root})
	}
	if !info.IsDir() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"snapshot root is not a directory", map[string]any{"root": root})
	}
	return nil
}

type walker struct {
	*Collector
	root    string
	skip    string
	out     *sectionWriter
	summary *Summary
}

// walk handles one directory. dir is the filesystem path and display the
// path used in directory headings, built by plain joining from root.
func (wk *walker) walk(ctx context.Context, dir, display string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("skipping unreadable directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return nil
	}

	var files, dirs []string
	symlinked := make(map[string]bool)
	for _, e := range entries {
		isDir, isLink := classify(dir, e)
		if !isDir {
			files = append(files, e.Name())
			continue
		}
		dirs = append(dirs, e.Name())
		if isLink {
			symlinked[e.Name()] = true
		}
	}

	for _, name := range wk.policy.ExcludedDirs {
		if !slices.Contains(dirs, name) {
			continue
		}
		wk.out.entry(Entry{Path: joinDisplay(display, name), Kind: KindDirectory, Excluded: true}, name)
		wk.summary.DirsExcluded++
	}

	slices.Sort(files)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		wk.file(dir, name)
		if wk.out.err != nil {
			return wk.out.err
		}
	}

	slices.Sort(dirs)
	for _, name := range dirs {
		if wk.policy.dirExcluded(name) || symlinked[name] {
			continue
		}
		if err := wk.walk(ctx, filepath.Join(dir, name), joinDisplay(display, name)); err != nil {
			return err
		}
	}
	return nil
}

func (wk *walker) file(dir, name string) {
	path := filepath.Join(dir, name)
	if wk.isOutput(path) {
		return
	}

	rel, err := filepath.Rel(wk.root, path)
	if err != nil {
		rel = path
	}

	if wk.policy.fileExcluded(name) {
		wk.out.entry(Entry{Path: rel, Kind: KindFile, Excluded: true}, name)
		wk.summary.FilesExcluded++
		return
	}

	if wk.policy.extensionExcluded(name) {
		wk.summary.FilesSkipped++
		return
	}

	content, err := readText(path)
	if err != nil {
		slog.Debug("unreadable file", slog.String("path", rel), slog.String("error", err.Error()))
		wk.out.entry(Entry{Path: rel, Kind: KindFile, Unreadable: true}, name)
		wk.summary.FilesUnreadable++
		return
	}

	wk.out.entry(Entry{Path: rel, Kind: KindFile, Language: wk.languageFor(name), Content: content}, name)
	wk.summary.FilesIncluded++
}

func (wk *walker) isOutput(path string) bool {
	if wk.skip == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && abs == wk.skip
}

func (c *Collector) languageFor(name string) string {
	if lang, ok := c.policy.language(name); ok {
		return lang
	}
	if c.detect {
		return detectLanguage(name)
	}
	return ""
}

// classify reports whether e is a directory and whether it is reached
// through a symlink. Broken links count as files.
func classify(dir string, e os.DirEntry) (isDir, isLink bool) {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir(), false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	if err != nil {
		return false, true
	}
	return info.IsDir(), true
}

// readText returns the file as text with line endings normalized to "\n".
func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeReadFailed, "failed to read file", err,
			map[string]any{"path": path})
	}
	if !utf8.Valid(b) {
		return "", errors.NewWithContext(errors.ErrCodeReadFailed, "file is not valid UTF-8",
			map[string]any{"path": path})
	}
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n"), nil
}

// joinDisplay appends name without cleaning, so a root of "." yields "./name".
func joinDisplay(parent, name string) string {
	if strings.HasSuffix(parent, string(filepath.Separator)) {
		return parent + name
	}
	return parent + string(filepath.Separator) + name
}

// sectionWriter keeps the first write error and ignores later writes.
type sectionWriter struct {
	w   io.Writer
	err error
}

func (sw *sectionWriter) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

func (sw *sectionWriter) entry(e Entry, name string) {
	prefix := fileHeadingPrefix
	if e.Kind == KindDirectory {
		prefix = directoryHeadingPrefix
	}
	sw.printf("\n### %s%s\n", prefix, e.Path)

	if note := e.placeholder(name); note != "" {
		sw.printf("*%s*\n", note)
		return
	}

	fence := codeFence(e.Content)
	sw.printf("%s%s\n%s\n%s\n", fence, e.Language, e.Content, fence)
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}
