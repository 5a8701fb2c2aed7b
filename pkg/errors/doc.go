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

// Package errors provides structured error types shared by the recommendation
// pipeline, the HTTP server and the CLI.
//
// A StructuredError carries a stable ErrorCode that the server maps onto an
// HTTP status, a human-readable message, an optional cause and optional
// context that is surfaced as response details.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstreamFailed,
//	    "Failed to generate recommendation",
//	    cause,
//	    map[string]any{
//	        "model": "gemini-1.5-flash",
//	    },
//	)
package errors
