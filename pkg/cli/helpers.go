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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dbmatch/pkg/recommendation"
	"github.com/NVIDIA/dbmatch/pkg/serializer"
)

// parseOutputFormat reads and checks the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadInput reads a raw request document from path.
func loadInput(path string) (map[string]any, error) {
	slog.Debug("loading request", "path", path)

	in, err := serializer.FromFile[map[string]any](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load request from %q: %w", path, err)
	}
	if *in == nil {
		return map[string]any{}, nil
	}
	return *in, nil
}

// loadRequest reads and validates a request document.
func loadRequest(path string) (*recommendation.Request, error) {
	in, err := loadInput(path)
	if err != nil {
		return nil, err
	}

	req, err := recommendation.Validate(in)
	if err != nil {
		violations := recommendation.ViolationsOf(err)
		msgs := make([]string, 0, len(violations))
		for _, v := range violations {
			msgs = append(msgs, v.Message)
		}
		return nil, fmt.Errorf("invalid request %q (%s): %w", path, strings.Join(msgs, "; "), err)
	}
	return req, nil
}

// writeDocument serializes doc to path, or stdout when path is empty.
func writeDocument(ctx context.Context, format serializer.Format, path string, doc any) error {
	ser := serializer.NewFileWriterOrStdout(format, path)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, doc)
}
