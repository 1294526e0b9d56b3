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
// Package models lists the model directories available to the serving
// container.
//
// A model is any immediate subdirectory of the model base path (symlinks to
// directories included). Files at the top level are ignored. Names are
// returned sorted.
//
// List is the explicit result form:
//
//	names, err := models.List("/models")
//	switch {
//	case errors.Is(err, models.ErrPathNotFound):
//	    // base path missing
//	case err != nil:
//	    // any other listing failure
//	}
//
// Lister.HandleModels serves GET /v1/bedrock/models. A missing base path is
// not a transport error:
//
//	200 {"models": ["llama", "mistral"]}
//	200 {"models": [], "error": "Model path not found"}
//	500 {"error": "..."}
package models
