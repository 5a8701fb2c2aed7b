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

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = errors.New("gemini API key is required")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("gemini returned an empty response")
)

// Config configures the Gemini client.
type Config struct {
	APIKey string

	// HTTPClient overrides the transport; NewHTTPClient is used when nil.
	HTTPClient *http.Client

	// BaseURL overrides the Gemini API endpoint.
	BaseURL string

	// Optional generation parameters; nil leaves the model default.
	Temperature     *float32
	MaxOutputTokens int32
}

// Client generates text with Gemini models.
type Client struct {
	client *genai.Client
	gen    *genai.GenerateContentConfig
}

// New builds a Client. It does not contact the API.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{client: client}
	if cfg.Temperature != nil || cfg.MaxOutputTokens > 0 {
		c.gen = &genai.GenerateContentConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		}
	}
	return c, nil
}

// Generate sends prompt to model as a single user turn and returns the
// response text unmodified.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, c.gen)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, describeEmpty(resp))
	}
	return text, nil
}

// describeEmpty explains why a response carried no text.
func describeEmpty(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return "no response"
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "no candidates"
	}
	if fr := resp.Candidates[0].FinishReason; fr != "" {
		return fmt.Sprintf("finish reason %s", fr)
	}
	return "no text parts"
}
