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

// Package server implements the DBMatch HTTP server: routing, middleware,
// admission control, structured errors and the system endpoints.
//
// # Architecture
//
// The server is stateless apart from per-client admission counters:
//
//   - Fixed-window rate limiting per client IP
//   - Slow-down throttle that delays clients past a request threshold
//   - Request ID tracking via X-Request-Id
//   - CORS and security response headers
//   - Panic recovery
//   - Graceful shutdown with readiness and systemd notifications
//   - Prometheus metrics
//
// # Usage
//
//	s := server.New(
//	    server.WithName("dbmatchd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/recommend-database": advisor.HandleRecommend,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Custom configuration:
//
//	cfg := server.NewConfig()
//	cfg.Port = 9090
//	cfg.RateLimitMax = 200
//	cfg.RateLimitWindow = 10 * time.Minute
//	s := server.New(server.WithConfig(cfg), server.WithHandler(handlers))
//
// # Endpoints
//
// Handlers passed with WithHandler run behind the full middleware chain.
// Handlers passed with WithStaticHandler skip rate limiting and slow-down.
// The server always registers:
//
//	GET /ping     - liveness, plain text "pong"
//	GET /health   - status plus host and process metrics
//	GET /ready    - 200 while serving, 503 during startup and shutdown
//	GET /metrics  - Prometheus exposition
//
// When no "/" handler is configured, a JSON index of routes is served.
//
// # Error Responses
//
// Every error is written as:
//
//	{
//	  "error": {
//	    "code": "INVALID_REQUEST",
//	    "message": "Request validation failed",
//	    "details": {"violations": [...]},
//	    "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	    "timestamp": "2025-01-01T00:00:00Z",
//	    "retryable": false
//	  }
//	}
//
// Use WriteError for explicit codes and WriteErrorFromErr to map a
// pkg/errors StructuredError onto status, code and details.
//
// # Rate Limiting
//
// Each client gets RateLimitMax requests per RateLimitWindow, refilled
// continuously. Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset; rejections return 429 with Retry-After.
//
// After SlowDownAfter requests within the window, each further request is
// held for an extra SlowDownDelay (capped at SlowDownMaxDelay) before being
// served. A held request is dropped if the client goes away.
package server
