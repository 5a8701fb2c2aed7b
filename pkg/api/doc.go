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

// Package api provides the HTTP API layer for the DBMatch service.
//
// This package is a thin wrapper around the reusable pkg/server package. It
// reads pkg/config, builds the Gemini client and recommendation advisor and
// registers the application routes.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited and slowed down per client):
//   - POST /recommend-database - recommend a database for the described product
//
// Static endpoints (no admission control):
//   - GET / - landing page
//   - GET /docs - API browser over /docs/openapi.json and /docs/openapi.yaml
//
// System endpoints (no admission control):
//   - GET /ping    - returns "pong"
//   - GET /health  - host and process metrics
//   - GET /ready   - readiness check
//   - GET /metrics - Prometheus metrics
//
// # Request Body
//
//	{
//	  "productCategory": "E-commerce marketplace",
//	  "dataSize": "500 GB",
//	  "initialUsers": "10000",
//	  "readWritePattern": "read heavy",
//	  "schemaChangeFrequency": "monthly",
//	  "dataAccuracyImportance": 9,
//	  "scalabilityImportance": 8,
//	  "budget": "low",
//	  "userGeography": "global",
//	  "latencyImportance": 7
//	}
//
// Example:
//
//	curl -X POST http://localhost:7000/recommend-database \
//	  -H "Content-Type: application/json" \
//	  -d @request.json
//
// # Configuration
//
// See pkg/config for the environment variables. GEMINI_API_KEY is required.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/dbmatch/pkg/api.version=1.0.0'"
package api
