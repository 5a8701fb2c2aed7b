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

// Package llm provides text generation backed by Google Gemini through
// google.golang.org/genai.
//
// A Client is built once at process start and shared by all requests:
//
//	c, err := llm.New(ctx, llm.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
//	if err != nil {
//	    return err
//	}
//	text, err := c.Generate(ctx, "gemini-1.5-flash", prompt)
//
// Each Generate call sends a single user turn and returns the concatenated
// text of the first candidate. There is no streaming, chat state or retry.
package llm
