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
package api

import (
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/defaults"
	"github.com/NVIDIA/bedrock-probe/pkg/health"
)

// Environment variables read by LoadConfig.
const (
	EnvVarModelBasePath   = "MODEL_BASE_PATH"
	EnvVarModelConfigPath = "MODEL_CONFIG_PATH"
	EnvVarSampleTimeout   = "TELEMETRY_SAMPLE_TIMEOUT_SECONDS"
)

// Defaults used when the environment does not set a path.
const (
	DefaultModelBasePath   = "/models"
	DefaultModelConfigPath = "/models/config"
)

// Config is the service configuration read once at startup.
type Config struct {
	ModelBasePath   string
	ModelConfigPath string

	// SampleTimeout bounds each telemetry sample taken for /health.
	SampleTimeout time.Duration
}

// LoadConfig reads the service configuration from the environment. A path
// variable that is set, even to "", is used as is. A malformed or
// non-positive sample timeout keeps the default.
func LoadConfig() Config {
	cfg := Config{
		ModelBasePath:   envOr(EnvVarModelBasePath, DefaultModelBasePath),
		ModelConfigPath: envOr(EnvVarModelConfigPath, DefaultModelConfigPath),
		SampleTimeout:   defaults.TelemetrySampleTimeout,
	}
	if seconds, err := strconv.Atoi(os.Getenv(EnvVarSampleTimeout)); err == nil && seconds > 0 {
		cfg.SampleTimeout = time.Duration(seconds) * time.Second
	}
	return cfg
}

// Environment returns the block echoed by /health.
func (c Config) Environment() health.Environment {
	return health.Environment{
		ModelBasePath:   c.ModelBasePath,
		ModelConfigPath: c.ModelConfigPath,
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
