/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/header"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/snapshot"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Write a Markdown snapshot of a directory tree",
		Description: `Walk a directory tree and write every readable text file into a single
Markdown document named workspace_snapshot_<YYYYMMDD_HHMMSS>.md.

Excluded directories (.git, node_modules) and excluded files are listed with a
placeholder line. Binary extensions (.exe, .dll, .bin, .o, .pack, .idx) are left
out. Files that are not valid UTF-8 are marked as unreadable.

# Policy File

A YAML or JSON policy replaces any of the default lists; missing keys keep
their defaults:

  excludedDirs: [.git, node_modules, vendor]
  excludedExtensions: [.exe, .dll, .so]
  languages:
    .go: go

# Examples

Snapshot the current directory:
  wsnap snapshot

Snapshot another tree into /tmp, skipping build output:
  wsnap snapshot --root ./service --output-dir /tmp --exclude-dir dist`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory tree to snapshot",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory for the snapshot file (default: working directory)",
			},
			&cli.StringFlag{
				Name:    "policy",
				Aliases: []string{"p"},
				Usage:   "Path/URL to a YAML or JSON exclusion policy",
				Sources: cli.EnvVars("WSNAP_POLICY"),
			},
			&cli.StringSliceFlag{
				Name:  "exclude-dir",
				Usage: "Additional directory name to exclude (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-file",
				Usage: "Additional file name to exclude (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-ext",
				Usage: "Additional file extension to skip (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "detect-language",
				Usage: "Label files with unknown extensions using lexer detection",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Also write a run summary to this path (.json, .yaml or .table)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Maximum time for the snapshot",
				Value: defaults.CLISnapshotTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			policy, err := policyFromCmd(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			c := snapshot.NewCollector(
				snapshot.WithPolicy(policy),
				snapshot.WithLanguageDetection(cmd.Bool("detect-language")),
			)

			path, summary, err := c.CollectToFile(ctx, cmd.String("root"), cmd.String("output-dir"))
			if err != nil {
				if path != "" {
					slog.Warn("partial snapshot left on disk", "path", path)
				}
				return fmt.Errorf("snapshot failed: %w", err)
			}

			slog.Info("snapshot complete",
				"path", path,
				"included", summary.FilesIncluded,
				"excluded", summary.FilesExcluded,
				"skipped", summary.FilesSkipped,
				"unreadable", summary.FilesUnreadable,
				"dirsExcluded", summary.DirsExcluded)

			fmt.Fprintf(cmd.Root().Writer, "Workspace snapshot created: %s\n", path)

			if report := cmd.String("report"); report != "" {
				return writeSummary(ctx, report, path, summary)
			}
			return nil
		},
	}
}

// snapshotSummary is the document written by --report.
type snapshotSummary struct {
	header.Header `yaml:",inline"`

	Output  string            `json:"output" yaml:"output"`
	Summary *snapshot.Summary `json:"summary" yaml:"summary"`
}

func writeSummary(ctx context.Context, path, output string, summary *snapshot.Summary) error {
	ser := serializer.NewFileWriterOrStdout(serializer.FormatFromPath(path), path)
	defer closeSerializer(ser)

	doc := snapshotSummary{
		Header:  header.New(header.KindSnapshotSummary, header.WithVersion(version)),
		Output:  output,
		Summary: summary,
	}
	if err := ser.Serialize(ctx, doc); err != nil {
		return fmt.Errorf("failed to write snapshot report: %w", err)
	}
	return nil
}

func policyFromCmd(cmd *cli.Command) (snapshot.Policy, error) {
	policy := snapshot.DefaultPolicy()
	if path := cmd.String("policy"); path != "" {
		loaded, err := snapshot.LoadPolicy(path)
		if err != nil {
			return snapshot.Policy{}, err
		}
		policy = loaded
	}

	policy.ExcludedDirs = append(policy.ExcludedDirs, cmd.StringSlice("exclude-dir")...)
	policy.ExcludedFiles = append(policy.ExcludedFiles, cmd.StringSlice("exclude-file")...)
	policy.ExcludedExtensions = append(policy.ExcludedExtensions, cmd.StringSlice("exclude-ext")...)
	return policy.Normalize(), nil
}
