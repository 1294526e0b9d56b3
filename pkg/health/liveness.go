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
package health

import (
	"net/http"
	"time"

	"github.com/NVIDIA/bedrock-probe/pkg/serializer"
	"github.com/NVIDIA/bedrock-probe/pkg/server"
)

// TimestampLayout renders UTC instants with millisecond precision, for
// example 2025-01-02T03:04:05.678Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Liveness is the body of a plain liveness check.
type Liveness struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Timestamp formats t in UTC using TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// HandleLiveness handles GET /health for services without telemetry.
func HandleLiveness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteMethodNotAllowed(w, r, http.MethodGet)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, Liveness{
		Status:    StatusHealthy,
		Timestamp: Timestamp(time.Now()),
	})
}
