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

// Package recommendation turns product requirements into a database
// recommendation produced by a generative language model.
//
// The flow for every request is:
//
//  1. Validate checks a decoded object against the rule table and returns a
//     typed Request or every violation found.
//  2. AssemblePrompt renders the fixed advisor prompt with the request values.
//  3. Advisor.Recommend sends the prompt to the configured Generator once and
//     returns the model text unmodified.
//
// HTTP usage:
//
//	advisor := recommendation.NewAdvisor(gen, recommendation.WithModel("gemini-1.5-flash"))
//	mux.HandleFunc("/recommend-database", advisor.HandleRecommend)
//
// Validation failures carry code INVALID_REQUEST with the violations in the
// error context. Generation failures carry code UPSTREAM_FAILED. Both are
// answered with HTTP 400.
package recommendation
