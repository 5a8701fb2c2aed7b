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

// Package cli implements the dbmatch command-line interface.
//
// # Commands
//
// serve - Run the API server:
//
//	dbmatch serve [--port N]
//
// recommend - Recommend a database for a request document:
//
//	dbmatch recommend --input request.yaml [--output FILE] [--format yaml|json|table]
//
// The request is validated first; an invalid request is never sent to the
// model. The result is a Recommendation document carrying the request, the
// model and its answer.
//
// validate - Check a request document:
//
//	dbmatch validate --input request.json
//
// Writes a ValidationResult document and exits non-zero when invalid.
//
// prompt - Print the assembled prompt without calling the model:
//
//	dbmatch prompt --input request.yaml
//
// # Global Flags
//
//	--log-level    debug, info, warn, error (default: info, env: LOG_LEVEL)
//	--version, -v  Show version information
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, invalid request, execution failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/dbmatch/pkg/cli.version=1.0.0'"
package cli
