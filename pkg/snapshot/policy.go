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
	"fmt"
	"slices"
	"strings"

	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
)

// Policy decides what the collector reads. Directory and file names match
// exactly; extensions match case-insensitively against the final suffix.
type Policy struct {
	// ExcludedDirs are reported with a placeholder and never descended into.
	// Placeholders follow this order.
	ExcludedDirs []string `json:"excludedDirs" yaml:"excludedDirs"`

	// ExcludedFiles are reported with a placeholder without being read.
	ExcludedFiles []string `json:"excludedFiles" yaml:"excludedFiles"`

	// ExcludedExtensions are skipped silently, such as ".exe".
	ExcludedExtensions []string `json:"excludedExtensions" yaml:"excludedExtensions"`

	// Languages maps an extension to the code fence label. An extension
	// mapped to "" produces an unlabeled fence.
	Languages map[string]string `json:"languages" yaml:"languages"`
}

// DefaultPolicy returns the exclusions and language labels used when no
// policy file is given.
func DefaultPolicy() Policy {
	return Policy{
		ExcludedDirs:       []string{".git", "node_modules"},
		ExcludedFiles:      []string{"package-lock.json", "collect_workspace.py", "workspace.py"},
		ExcludedExtensions: []string{".exe", ".dll", ".bin", ".o", ".pack", ".idx"},
		Languages: map[string]string{
			".py":   "python",
			".js":   "javascript",
			".ts":   "typescript",
			".ps1":  "powershell",
			".psm1": "powershell",
			".json": "json",
			".md":   "markdown",
			".yml":  "yaml",
			".yaml": "yaml",
			".txt":  "",
		},
	}
}

// LoadPolicy reads a YAML or JSON policy from a file path or URL. Keys absent
// from the document keep their DefaultPolicy values.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if err := serializer.DecodeFile(path, &p); err != nil {
		return Policy{}, fmt.Errorf("failed to load snapshot policy: %w", err)
	}
	return p.Normalize(), nil
}

// Normalize lowercases extensions, adds a missing leading dot and drops
// duplicates while keeping the first occurrence.
func (p Policy) Normalize() Policy {
	out := Policy{
		ExcludedDirs:       dedupe(p.ExcludedDirs, nil),
		ExcludedFiles:      dedupe(p.ExcludedFiles, nil),
		ExcludedExtensions: dedupe(p.ExcludedExtensions, normalizeExt),
		Languages:          make(map[string]string, len(p.Languages)),
	}
	for ext, lang := range p.Languages {
		out.Languages[normalizeExt(ext)] = lang
	}
	return out
}

func (p Policy) dirExcluded(name string) bool {
	return slices.Contains(p.ExcludedDirs, name)
}

func (p Policy) fileExcluded(name string) bool {
	return slices.Contains(p.ExcludedFiles, name)
}

func (p Policy) extensionExcluded(name string) bool {
	ext := suffix(name)
	return ext != "" && slices.Contains(p.ExcludedExtensions, ext)
}

// language returns the label for name and whether the policy knows the
// extension at all.
func (p Policy) language(name string) (string, bool) {
	lang, ok := p.Languages[suffix(name)]
	return lang, ok
}

// suffix returns the lowercased final extension of a file name. A leading
// dot alone (".bashrc") or a trailing dot ("notes.") is not an extension.
func suffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func dedupe(in []string, norm func(string) string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if norm != nil {
			s = norm(s)
		}
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
