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

package recommendation

import (
	"github.com/NVIDIA/dbmatch/pkg/header"
)

// Document is the CLI output of a successful recommendation.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Model          string   `json:"model" yaml:"model"`
	Request        *Request `json:"request" yaml:"request"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// NewDocument wraps a result with its request and a Recommendation header.
func NewDocument(req *Request, res *Result, model, version string) *Document {
	d := &Document{
		Model:   model,
		Request: req,
	}
	if res != nil {
		d.Recommendation = res.Recommendation
	}
	d.Init(header.KindRecommendation, header.APIVersionV1, version)
	return d
}

// ValidationDocument reports the outcome of validating a request document.
type ValidationDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	Valid      bool        `json:"valid" yaml:"valid"`
	Violations []Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// NewValidationDocument builds a ValidationResult from Validate's error.
func NewValidationDocument(err error, version string) *ValidationDocument {
	d := &ValidationDocument{
		Valid:      err == nil,
		Violations: ViolationsOf(err),
	}
	d.Init(header.KindValidationResult, header.APIVersionV1, version)
	return d
}
