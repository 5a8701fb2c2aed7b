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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig map[string]any `json:"generationConfig"`
}

func newGeminiStub(t *testing.T, status int, reply string, seen *generateRequest, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if seen != nil {
			assert.NoError(t, json.Unmarshal(body, seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_MissingAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		c, err := New(context.Background(), Config{APIKey: key})
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	}
}

func TestGenerate_Success(t *testing.T) {
	var seen generateRequest
	var calls atomic.Int32
	srv := newGeminiStub(t, http.StatusOK, `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "🧠 PostgreSQL"}]},
			"finishReason": "STOP"
		}]
	}`, &seen, &calls)

	c, err := New(context.Background(), Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		HTTPClient:  srv.Client(),
		Temperature: ptr.To[float32](0.2),
	})
	require.NoError(t, err)

	text, err := c.Generate(context.Background(), "test-model", "recommend a database")
	require.NoError(t, err)
	assert.Equal(t, "🧠 PostgreSQL", text)
	assert.Equal(t, int32(1), calls.Load())

	require.Len(t, seen.Contents, 1)
	assert.Equal(t, "user", seen.Contents[0].Role)
	require.Len(t, seen.Contents[0].Parts, 1)
	assert.Equal(t, "recommend a database", seen.Contents[0].Parts[0].Text)
	assert.InDelta(t, 0.2, seen.GenerationConfig["temperature"], 0.001)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "no candidates", reply: `{"candidates": []}`},
		{name: "blocked prompt", reply: `{"promptFeedback": {"blockReason": "SAFETY"}}`},
		{name: "empty text", reply: `{"candidates": [{"content": {"role": "model", "parts": [{"text": ""}]}, "finishReason": "MAX_TOKENS"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newGeminiStub(t, http.StatusOK, tt.reply, nil, &calls)

			c, err := New(context.Background(), Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "test-model", "p")
			assert.ErrorIs(t, err, ErrEmptyResponse)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	var calls atomic.Int32
	srv := newGeminiStub(t, http.StatusBadRequest,
		`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, nil, &calls)

	c, err := New(context.Background(), Config{APIKey: "bad", BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "test-model", "p")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyResponse))
	assert.Equal(t, int32(1), calls.Load(), "no retry expected")
}

func TestGenerate_Canceled(t *testing.T) {
	var calls atomic.Int32
	srv := newGeminiStub(t, http.StatusOK, `{}`, nil, &calls)

	c, err := New(context.Background(), Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Generate(ctx, "test-model", "p")
	assert.Error(t, err)
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient()
	require.NotNil(t, c.Transport)
	assert.Positive(t, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Positive(t, tr.TLSHandshakeTimeout)
	assert.Positive(t, tr.ResponseHeaderTimeout)
}
