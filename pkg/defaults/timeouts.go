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

package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// The write deadline starts when the request is read, so it must exceed
	// SlowDownMaxDelay plus HTTPClientTimeout for a delayed request that
	// waits out a slow model call to still get its response.
	ServerWriteTimeout = 90 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerPort is the listen port used when PORT is not set.
	ServerPort = 7000
)

// HTTP client timeouts for outbound requests to the model provider.
const (
	// HTTPClientTimeout is the default total timeout for a generation request.
	HTTPClientTimeout = 45 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 40 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Admission control for the recommendation endpoint.
const (
	// RateLimitWindow is the window over which RateLimitMax requests are allowed.
	RateLimitWindow = 15 * time.Minute

	// RateLimitMax is the number of requests a client may make per window.
	RateLimitMax = 100

	// RateLimitIdleTTL is how long an idle client's limiter state is retained.
	RateLimitIdleTTL = 30 * time.Minute

	// RateLimitCleanupInterval is how often idle client state is evicted.
	RateLimitCleanupInterval = 5 * time.Minute

	// SlowDownAfter is the number of requests per window served without delay.
	SlowDownAfter = 50

	// SlowDownDelay is the added delay per request beyond SlowDownAfter.
	SlowDownDelay = 500 * time.Millisecond

	// SlowDownMaxDelay caps the delay applied to a single request.
	SlowDownMaxDelay = 20 * time.Second
)

// Request limits.
const (
	// MaxRequestBodyBytes bounds the size of a recommendation request body.
	MaxRequestBodyBytes = 1 << 20
)

// Model defaults.
const (
	// GeminiModel is the model identifier used when GEMINI_MODEL is not set.
	GeminiModel = "gemini-1.5-flash"
)
