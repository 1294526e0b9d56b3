/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/bedrock-probe/pkg/header"
	"github.com/NVIDIA/bedrock-probe/pkg/snapshot"
)

// inspectReport is the serialized result of the inspect command.
type inspectReport struct {
	header.Header `yaml:",inline"`

	Snapshot    string            `json:"snapshot" yaml:"snapshot"`
	Files       int               `json:"files" yaml:"files"`
	Directories int               `json:"directories" yaml:"directories"`
	Sections    []sectionOverview `json:"sections" yaml:"sections"`
}

type sectionOverview struct {
	Kind        snapshot.EntryKind `json:"kind" yaml:"kind"`
	Path        string             `json:"path" yaml:"path"`
	Language    string             `json:"language,omitempty" yaml:"language,omitempty"`
	Lines       int                `json:"lines,omitempty" yaml:"lines,omitempty"`
	Placeholder string             `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Content     string             `json:"content,omitempty" yaml:"content,omitempty"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "inspect",
		EnableShellCompletion: true,
		Usage:                 "List the sections of a workspace snapshot",
		ArgsUsage:             "<snapshot.md>",
		Description: `Parse a snapshot written by "wsnap snapshot" and list its file and
directory sections with their language and line count.

# Examples

  wsnap inspect workspace_snapshot_20250101_120000.md --format table
  wsnap inspect snap.md --content --format json --output sections.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "content",
				Usage: "Include recovered file content in the output",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("snapshot file argument is required")
			}

			report, err := inspectFile(path, cmd.Bool("content"))
			if err != nil {
				return err
			}
			return serialize(ctx, cmd, outFormat, report)
		},
	}
}

func inspectFile(path string, withContent bool) (*inspectReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close snapshot", "error", closeErr)
		}
	}()

	sections, err := snapshot.ReadSections(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %q: %w", path, err)
	}

	report := &inspectReport{
		Header:   header.New(header.KindSnapshotIndex, header.WithVersion(version)),
		Snapshot: path,
		Sections: make([]sectionOverview, 0, len(sections)),
	}
	for _, s := range sections {
		if s.Kind == snapshot.KindDirectory {
			report.Directories++
		} else {
			report.Files++
		}

		o := sectionOverview{
			Kind:        s.Kind,
			Path:        s.Path,
			Language:    s.Language,
			Placeholder: s.Placeholder,
		}
		if s.HasContent() {
			o.Lines = countLines(s.Content)
			if withContent {
				o.Content = s.Content
			}
		}
		report.Sections = append(report.Sections, o)
	}
	return report, nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
