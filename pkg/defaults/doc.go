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

// Package defaults provides centralized configuration constants for DBMatch.
//
// This package defines timeout values, admission-control limits, and other
// configuration defaults used across the codebase. Centralizing these values
// ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound requests to the model provider
//   - Admission control: Rate limit and slow-down windows
//   - Request limits and model defaults
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/dbmatch/pkg/defaults"
//
//	client := &http.Client{Timeout: defaults.HTTPClientTimeout}
//
// # Timeout Guidelines
//
//   - Server write timeout must exceed the outbound client timeout so a
//     failed generation can still be reported to the caller
//   - Server shutdown: 30s for graceful shutdown
package defaults
