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

// EntryKind identifies what a snapshot section describes.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

const (
	fileHeadingPrefix      = "File: "
	directoryHeadingPrefix = "Directory: "

	unreadablePlaceholder = "Binary or unreadable file"
)

// Entry is one section as the collector writes it.
type Entry struct {
	Path       string
	Kind       EntryKind
	Excluded   bool
	Unreadable bool
	Language   string
	Content    string
}

// placeholder returns the italic line written instead of content, or "".
func (e Entry) placeholder(name string) string {
	switch {
	case e.Excluded && e.Kind == KindDirectory:
		return name + " directory present but contents excluded"
	case e.Excluded:
		return name + " present but contents excluded"
	case e.Unreadable:
		return unreadablePlaceholder
	default:
		return ""
	}
}

// Summary counts what a collection run did.
type Summary struct {
	Root            string `json:"root" yaml:"root"`
	FilesIncluded   int    `json:"filesIncluded" yaml:"filesIncluded"`
	FilesExcluded   int    `json:"filesExcluded" yaml:"filesExcluded"`
	FilesSkipped    int    `json:"filesSkipped" yaml:"filesSkipped"`
	FilesUnreadable int    `json:"filesUnreadable" yaml:"filesUnreadable"`
	DirsExcluded    int    `json:"dirsExcluded" yaml:"dirsExcluded"`
}

// Section is one heading block read back from a snapshot document.
type Section struct {
	Kind     EntryKind `json:"kind" yaml:"kind"`
	Path     string    `json:"path" yaml:"path"`
	Language string    `json:"language,omitempty" yaml:"language,omitempty"`
	Content  string    `json:"content,omitempty" yaml:"content,omitempty"`

	// Placeholder holds the italic note written instead of content, for
	// excluded entries and unreadable files.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// HasContent reports whether the section carried a code block.
func (s Section) HasContent() bool {
	return s.Kind == KindFile && s.Placeholder == ""
}
