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

package server

import (
	"net/http"
	"time"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
)

// Config holds server configuration.
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are API routes served behind the full middleware chain,
	// including rate limiting and slow-down.
	Handlers map[string]http.HandlerFunc

	// StaticHandlers are served with request IDs, headers and recovery but
	// without admission control (docs, landing page).
	StaticHandlers map[string]http.HandlerFunc

	Address string
	Port    int

	// Per-client rate limiting: RateLimitMax requests per RateLimitWindow.
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Per-client slow-down: after SlowDownAfter requests in RateLimitWindow
	// each request is delayed by an extra SlowDownDelay, up to SlowDownMaxDelay.
	// SlowDownAfter <= 0 disables the throttle.
	SlowDownAfter    int
	SlowDownDelay    time.Duration
	SlowDownMaxDelay time.Duration

	// CORSAllowedOrigins lists origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config with defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return &Config{
		Name:               "server",
		Version:            "undefined",
		Port:               defaults.ServerPort,
		RateLimitMax:       defaults.RateLimitMax,
		RateLimitWindow:    defaults.RateLimitWindow,
		SlowDownAfter:      defaults.SlowDownAfter,
		SlowDownDelay:      defaults.SlowDownDelay,
		SlowDownMaxDelay:   defaults.SlowDownMaxDelay,
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        defaults.ServerReadTimeout,
		ReadHeaderTimeout:  defaults.ServerReadHeaderTimeout,
		WriteTimeout:       defaults.ServerWriteTimeout,
		IdleTimeout:        defaults.ServerIdleTimeout,
		ShutdownTimeout:    defaults.ServerShutdownTimeout,
	}
}
