/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/header"
	"github.com/NVIDIA/bedrock-probe/pkg/health"
	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/telemetry"
)

// telemetrySample is the serialized result of the telemetry command. Exactly
// one of Resources and Health is set.
type telemetrySample struct {
	header.Header `yaml:",inline"`

	Source    string              `json:"source" yaml:"source"`
	Resources *telemetry.Snapshot `json:"resources,omitempty" yaml:"resources,omitempty"`
	Health    *health.Response    `json:"health,omitempty" yaml:"health,omitempty"`
}

const localSource = "local"

// probeOptions supplies the options for locally created probes.
var probeOptions = func() []telemetry.Option { return nil }

func telemetryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "telemetry",
		EnableShellCompletion: true,
		Usage:                 "Sample GPU and host telemetry once",
		Description: `Initialize the GPU driver, take a single telemetry sample and release
the driver again. Without a compatible GPU the result is {available: false}.

With --url the health report of a running bedrockd is fetched instead.

# Examples

  wsnap telemetry --format json
  wsnap telemetry --url http://localhost:5000`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "Base URL of a running bedrockd to read /health from",
				Sources: cli.EnvVars("BEDROCK_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Maximum time for the sample",
				Value: defaults.CLITelemetryTimeout,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			sample := telemetrySample{
				Header: header.New(header.KindTelemetrySample, header.WithVersion(version)),
				Source: localSource,
			}

			if url := cmd.String("url"); url != "" {
				report, err := remoteHealth(ctx, url, cmd.Duration("timeout"))
				if err != nil {
					return err
				}
				sample.Source = url
				sample.Health = report
				return serialize(ctx, cmd, outFormat, sample)
			}

			snap, err := localSample(ctx)
			if err != nil {
				return err
			}
			sample.Resources = &snap
			return serialize(ctx, cmd, outFormat, sample)
		},
	}
}

func localSample(ctx context.Context) (telemetry.Snapshot, error) {
	probe := telemetry.New(probeOptions()...)
	defer probe.Shutdown()

	if err := probe.Initialize(ctx); err != nil {
		return telemetry.Snapshot{}, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	return probe.Sample(ctx), nil
}

func remoteHealth(ctx context.Context, baseURL string, timeout time.Duration) (*health.Response, error) {
	url := strings.TrimSuffix(baseURL, "/") + "/health"

	reader := serializer.NewHttpReader(
		serializer.WithUserAgent(name+"/"+version),
		serializer.WithTotalTimeout(timeout),
	)
	data, err := reader.ReadWithContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to read health from %s: %w", url, err)
	}

	var report health.Response
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &report, nil
}
