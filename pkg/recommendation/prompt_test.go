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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest(t *testing.T) *Request {
	t.Helper()
	req, err := Validate(validInput())
	require.NoError(t, err)
	return req
}

func TestAssemblePrompt_ContainsValues(t *testing.T) {
	req := validRequest(t)

	prompt, err := AssemblePrompt(req)
	require.NoError(t, err)

	lines := []string{
		"productCategory: E-commerce",
		"dataSize: Medium",
		"initialUsers: 1000",
		"readWritePattern: Read-heavy",
		"schemaChangeFrequency: Rarely",
		"dataAccuracyImportance: 8",
		"scalabilityImportance: 7",
		"budget: Low",
		"userGeography: Global",
		"latencyImportance: 6",
	}
	for _, l := range lines {
		assert.Contains(t, prompt, l)
	}

	assert.Contains(t, prompt, "Database Architect")
	assert.Contains(t, prompt, "### Input Requirements:")
	assert.Contains(t, prompt, "### Output Format:")
	assert.Contains(t, prompt, "**Recommended Database:**")
	assert.NotContains(t, prompt, "{{")
}

func TestAssemblePrompt_Verbatim(t *testing.T) {
	req := validRequest(t)
	req.ProductCategory = `<Marketplace & "Escrow">`
	req.UserGeography = "EU + 日本"

	prompt, err := AssemblePrompt(req)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(prompt, `productCategory: <Marketplace & "Escrow">`))
	assert.Contains(t, prompt, "userGeography: EU + 日本")
	assert.NotContains(t, prompt, "&amp;")
}

func TestAssemblePrompt_Deterministic(t *testing.T) {
	req := validRequest(t)

	a, err := AssemblePrompt(req)
	require.NoError(t, err)
	b, err := AssemblePrompt(req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssemblePrompt_EachFieldOnce(t *testing.T) {
	prompt, err := AssemblePrompt(validRequest(t))
	require.NoError(t, err)

	for _, fr := range Rules() {
		assert.Equal(t, 1, strings.Count(prompt, fmt.Sprintf("\n%s: ", fr.Field)), fr.Field)
	}
}

func TestAssemblePrompt_Nil(t *testing.T) {
	_, err := AssemblePrompt(nil)
	assert.Error(t, err)
}
