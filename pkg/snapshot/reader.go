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
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New()
	})
	return markdownParser
}

// ReadSections parses a snapshot document and returns its sections in
// document order. Headings other than "File:" and "Directory:" level three
// headings are ignored, as is any text between sections.
func ReadSections(r io.Reader) ([]Section, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	doc := getMarkdown().Parser().Parse(text.NewReader(source))

	sections := make([]Section, 0)
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 3 {
			continue
		}
		sec, ok := sectionFromHeading(headingTitle(heading, source))
		if !ok {
			continue
		}
		fillBody(&sec, heading.NextSibling(), source)
		sections = append(sections, sec)
	}
	return sections, nil
}

func sectionFromHeading(title string) (Section, bool) {
	switch {
	case strings.HasPrefix(title, fileHeadingPrefix):
		return Section{Kind: KindFile, Path: strings.TrimPrefix(title, fileHeadingPrefix)}, true
	case strings.HasPrefix(title, directoryHeadingPrefix):
		return Section{Kind: KindDirectory, Path: strings.TrimPrefix(title, directoryHeadingPrefix)}, true
	default:
		return Section{}, false
	}
}

func fillBody(sec *Section, node ast.Node, source []byte) {
	switch body := node.(type) {
	case *ast.FencedCodeBlock:
		sec.Language = string(body.Language(source))
		content := rawLines(body, source)
		sec.Content = strings.TrimSuffix(content, "\n")
	case *ast.Paragraph:
		note := strings.TrimSpace(rawLines(body, source))
		if strings.HasPrefix(note, "*") && strings.HasSuffix(note, "*") && len(note) > 1 {
			note = note[1 : len(note)-1]
		}
		sec.Placeholder = note
	}
}

// headingTitle returns the text of an ATX heading as written. The parsed
// segment drops a trailing run of '#' and trailing spaces, both of which
// are legal in file names, so the title is cut from the source line.
func headingTitle(h *ast.Heading, source []byte) string {
	if h.Lines().Len() == 0 {
		return ""
	}
	seg := h.Lines().At(0)
	start := bytes.LastIndexByte(source[:seg.Start], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[seg.Start:], '\n'); i >= 0 {
		end = seg.Start + i
	}
	line := strings.TrimSuffix(string(source[start:end]), "\r")
	line = strings.TrimLeft(line, " ")
	line = strings.TrimLeft(line, "#")
	return strings.TrimLeft(line, " \t")
}

// rawLines returns the unparsed source of a block node. Inline parsing is
// bypassed so paths such as __init__.py keep their underscores.
func rawLines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}
