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
// Package health serves the GET /health endpoint.
//
// The response always has status 200. Telemetry problems are reported inside
// the body, never as a transport error:
//
//	{
//	  "status": "healthy",
//	  "resources": {"available": false},
//	  "environment": {
//	    "MODEL_BASE_PATH": "/models",
//	    "MODEL_CONFIG_PATH": "/models/config"
//	  }
//	}
//
// The environment block is captured once when the Reporter is built.
package health
