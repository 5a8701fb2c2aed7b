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
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
)

// fakeGenerator records invocations and returns a canned reply.
type fakeGenerator struct {
	calls  atomic.Int32
	model  string
	prompt string
	text   string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	f.calls.Add(1)
	f.model = model
	f.prompt = prompt
	return f.text, f.err
}

func TestNewAdvisor_Defaults(t *testing.T) {
	a := NewAdvisor(&fakeGenerator{})
	assert.Equal(t, defaults.GeminiModel, a.Model())

	a = NewAdvisor(&fakeGenerator{}, WithModel(""))
	assert.Equal(t, defaults.GeminiModel, a.Model())

	a = NewAdvisor(&fakeGenerator{}, WithModel("gemini-2.0-flash"))
	assert.Equal(t, "gemini-2.0-flash", a.Model())
}

func TestAdvisor_Recommend(t *testing.T) {
	reply := "- 🧠 **Recommended Database:** PostgreSQL\n- 📄 **Summary:** fits."
	gen := &fakeGenerator{text: reply}
	a := NewAdvisor(gen, WithModel("test-model"))

	res, err := a.Recommend(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, reply, res.Recommendation)
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, "test-model", gen.model)
	assert.Contains(t, gen.prompt, "productCategory: E-commerce")
}

func TestAdvisor_Recommend_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "transport error", gen: &fakeGenerator{err: errors.New("connection reset")}},
		{name: "provider error with text", gen: &fakeGenerator{text: "partial", err: errors.New("quota")}},
		{name: "empty text", gen: &fakeGenerator{text: ""}},
		{name: "blank text", gen: &fakeGenerator{text: " \n\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdvisor(tt.gen)

			res, err := a.Recommend(context.Background(), validRequest(t))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, cnserrors.HasCode(err, cnserrors.ErrCodeUpstreamFailed))
			assert.Equal(t, int32(1), tt.gen.calls.Load(), "no retry expected")

			var se *cnserrors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, ErrMsgGenerationFailed, se.Message)
		})
	}
}

func TestAdvisor_Recommend_Cancelled(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	a := NewAdvisor(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Recommend(ctx, validRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdvisor_Recommend_NilRequest(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	_, err := NewAdvisor(gen).Recommend(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, int32(0), gen.calls.Load())
}
