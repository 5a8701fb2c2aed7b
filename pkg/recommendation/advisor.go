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
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
)

// ErrMsgGenerationFailed is the client-facing message for any remote failure.
const ErrMsgGenerationFailed = "Failed to generate recommendation"

// Generator produces text for a prompt using the named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, model, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

// Advisor turns validated requests into database recommendations.
type Advisor struct {
	gen   Generator
	model string
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithModel sets the model identifier used for every invocation.
// Empty values are ignored.
func WithModel(model string) Option {
	return func(a *Advisor) {
		if model != "" {
			a.model = model
		}
	}
}

// NewAdvisor returns an Advisor backed by gen.
func NewAdvisor(gen Generator, opts ...Option) *Advisor {
	a := &Advisor{
		gen:   gen,
		model: defaults.GeminiModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model returns the model identifier the advisor invokes.
func (a *Advisor) Model() string {
	return a.model
}

// Recommend assembles the prompt and invokes the generator exactly once.
// The generated text is returned unmodified. Any failure, including an empty
// response, is reported as UPSTREAM_FAILED.
func (a *Advisor) Recommend(ctx context.Context, req *Request) (*Result, error) {
	prompt, err := AssemblePrompt(req)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to assemble prompt", err)
	}

	start := time.Now()
	text, err := a.gen.Generate(ctx, a.model, prompt)
	advisorInvocationDuration.Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyRecommendation
	}
	if err != nil {
		advisorInvocationsTotal.WithLabelValues(outcomeFailure).Inc()
		slog.Error("recommendation generation failed",
			"model", a.model,
			"error", err,
		)
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUpstreamFailed, ErrMsgGenerationFailed, err)
	}

	advisorInvocationsTotal.WithLabelValues(outcomeSuccess).Inc()
	slog.Debug("recommendation generated",
		"model", a.model,
		"chars", len(text),
	)
	return &Result{Recommendation: text}, nil
}

var errEmptyRecommendation = cnserrors.New(cnserrors.ErrCodeUpstreamFailed, "model returned no text")
