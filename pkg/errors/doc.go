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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Codes used by the probe and the snapshot tool:
//
//   - SERVICE_UNAVAILABLE: no compatible GPU was detected at startup
//   - QUERY_FAILED: a driver or host telemetry call failed
//   - NOT_FOUND: the model base path does not exist
//   - INTERNAL: any other listing or server failure
//   - READ_FAILED: a file could not be read as UTF-8 text
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeQueryFailed,
//	    "failed to query GPU temperature",
//	    ret,
//	    map[string]any{
//	        "query":  "temperature",
//	        "device": 0,
//	    },
//	)
package errors
