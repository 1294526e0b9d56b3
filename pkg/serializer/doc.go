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

// Package serializer provides encoding and decoding of probe and snapshot data
// in multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable representation
//   - Used for HTTP responses via RespondJSON
//
// YAML:
//   - Human-readable with preserved structure
//   - Used for snapshot policy files (gopkg.in/yaml.v3)
//
// Table:
//   - Flattened FIELD/VALUE rows for terminal viewing
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, data); err != nil {
//	    return err
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// # Usage - Decoding
//
//	policy := snapshot.DefaultPolicy()
//	err := serializer.DecodeFile("policy.yaml", &policy)
//
// Remote documents are fetched with HttpReader, which applies connection
// pooling and timeouts from pkg/defaults.
package serializer
