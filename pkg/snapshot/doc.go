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
// Package snapshot flattens a directory tree into a single Markdown document
// and reads such documents back.
//
// A snapshot lists every file under a root as a level three heading followed
// by the file content in a fenced code block. Directories and files named by
// the Policy are recorded with a placeholder line instead of their content,
// and files with excluded extensions are left out entirely:
//
//	### File: cmd/main.go
//	```go
//	package main
//	```
//
//	### Directory: ./.git
//	*.git directory present but contents excluded*
//
// Traversal is top-down: a directory's own files, in name order, come before
// any of its subdirectories, which are visited in name order as well. Output
// for an unchanged tree is byte-identical between runs.
//
// Usage:
//
//	c := snapshot.NewCollector(snapshot.WithLanguageDetection(true))
//	path, summary, err := c.CollectToFile(ctx, ".", "")
//
// ReadSections parses a snapshot with goldmark and recovers the content of
// every included file.
package snapshot
