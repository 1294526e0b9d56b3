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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/bedrock-probe/pkg/logging"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
)

const (
	name           = "wsnap"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Workspace snapshot and GPU telemetry tooling",
		Description: `wsnap flattens a directory tree into a single Markdown snapshot,
inspects existing snapshots and samples GPU and host telemetry.

snapshot  - writes workspace_snapshot_<timestamp>.md for a directory tree.
inspect   - lists the sections of a snapshot document.
telemetry - samples the local GPU once, or reads /health from a running bedrockd.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging, overrides --log-level",
			},
		},
		Before: initLogger,
		Commands: []*cli.Command{
			snapshotCmd(),
			inspectCmd(),
			telemetryCmd(),
		},
	}
}

// Execute runs the root command with the process arguments. It is called by
// main.main() and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// initLogger configures slog after flags are parsed so --log-level and
// --debug take effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	if cmd.Bool("debug") {
		level = "debug"
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// newOutputWriter writes to --output when set and to the command writer
// otherwise.
func newOutputWriter(cmd *cli.Command, format serializer.Format) serializer.Serializer {
	if path := cmd.String("output"); path != "" {
		return serializer.NewFileWriterOrStdout(format, path)
	}
	return serializer.NewWriter(format, cmd.Root().Writer)
}

func serialize(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser := newOutputWriter(cmd, format)
	defer closeSerializer(ser)
	return ser.Serialize(ctx, v)
}

func closeSerializer(ser serializer.Serializer) {
	closer, ok := ser.(serializer.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close serializer", "error", err)
	}
}
