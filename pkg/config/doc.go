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

// Package config loads DBMatch runtime configuration from the environment.
//
// A .env file in the working directory is loaded first when present; values
// already set in the process environment take precedence. Configuration is
// read once at startup.
//
//	GEMINI_API_KEY            Gemini API key (required to serve)
//	GEMINI_MODEL              model identifier (default gemini-1.5-flash)
//	GEMINI_BASE_URL           alternate Gemini endpoint
//	GEMINI_TEMPERATURE        sampling temperature, model default when unset
//	PORT                      listen port (default 7000)
//	LOG_LEVEL                 debug, info, warn or error (default info)
//	RATE_LIMIT_MAX            requests per client per window (default 100)
//	RATE_LIMIT_WINDOW         window as a Go duration (default 15m)
//	SLOW_DOWN_AFTER           requests per window before delaying (default 50)
//	SLOW_DOWN_DELAY           added delay per request over the threshold (default 500ms)
//	SLOW_DOWN_MAX_DELAY       delay cap (default 20s)
//	CORS_ALLOWED_ORIGINS      comma separated origins, "*" for any (default *)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown bound (default 30)
package config
