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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/dbmatch/pkg/defaults"
	cnserrors "github.com/NVIDIA/dbmatch/pkg/errors"
	"github.com/NVIDIA/dbmatch/pkg/serializer"
	"github.com/NVIDIA/dbmatch/pkg/server"
)

// HandleRecommend serves POST /recommend-database.
// The body is a JSON (or YAML, by Content-Type) object with the ten request
// fields. Validation and generation failures are both answered with 400 and
// the structured error envelope; success returns {"recommendation": "..."}.
func (a *Advisor) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	defer func() {
		if r.Body != nil {
			r.Body.Close()
		}
	}()

	input, err := DecodeInput(http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes),
		r.Header.Get("Content-Type"))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	req, err := Validate(input)
	if err != nil {
		for _, v := range ViolationsOf(err) {
			validationFailuresTotal.WithLabelValues(v.Field, v.Rule).Inc()
		}
		server.WriteErrorFromErr(w, r, err, "Request validation failed", nil)
		return
	}

	slog.Debug("recommendation request",
		"productCategory", req.ProductCategory,
		"dataSize", req.DataSize,
		"budget", req.Budget,
	)

	result, err := a.Recommend(r.Context(), req)
	if err != nil {
		// cause is logged by Recommend and not exposed to the client
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.CodeOf(err),
			ErrMsgGenerationFailed, true, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// DecodeInput reads a request object from body using the format implied by
// contentType. An empty body decodes to an empty object.
func DecodeInput(body io.Reader, contentType string) (map[string]any, error) {
	input := map[string]any{}
	reader, err := serializer.NewReader(serializer.FormatFromContentType(contentType), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	if err := reader.Deserialize(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("request body must be an object: %w", err)
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, nil
}
