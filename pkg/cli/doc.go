// Package cli implements the wsnap command-line interface.
//
// # Overview
//
// wsnap flattens a directory tree into a single Markdown snapshot, inspects
// snapshots written earlier and samples GPU and host telemetry from the
// command line. It shares the snapshot and telemetry packages with the
// bedrockd service.
//
// # Commands
//
// snapshot - Write a workspace snapshot:
//
//	wsnap snapshot [--root .] [--output-dir DIR] [--policy policy.yaml]
//	               [--exclude-dir NAME] [--exclude-file NAME] [--exclude-ext EXT]
//	               [--detect-language]
//
// Writes workspace_snapshot_<YYYYMMDD_HHMMSS>.md into the output directory and
// prints its path. Repeated --exclude-* flags extend the policy.
//
// inspect - List snapshot sections:
//
//	wsnap inspect snapshot.md [--content] [--format yaml|json|table] [--output FILE]
//
// telemetry - Sample telemetry once:
//
//	wsnap telemetry [--url http://host:5000] [--format yaml|json|table] [--output FILE]
//
// Without --url the local GPU driver is initialized, sampled and released.
// With --url the /health report of a running bedrockd is read instead.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--debug        Shorthand for --log-level debug
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// YAML (default) and JSON are produced by the serializer package. Table
// output flattens nested fields into FIELD/VALUE rows for terminal viewing.
package cli
