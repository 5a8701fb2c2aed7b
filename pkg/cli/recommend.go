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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dbmatch/pkg/config"
	"github.com/NVIDIA/dbmatch/pkg/llm"
	"github.com/NVIDIA/dbmatch/pkg/recommendation"
)

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recommend",
		Aliases:               []string{"rec"},
		EnableShellCompletion: true,
		Usage:                 "Recommend a database for a request document",
		Description: `Validate a request document, send the assembled prompt to the Gemini model
once and write a Recommendation document.

The request document carries the ten product attributes:

  productCategory: E-commerce marketplace
  dataSize: 500 GB
  initialUsers: "10000"
  readWritePattern: read heavy
  schemaChangeFrequency: monthly
  dataAccuracyImportance: 9
  scalabilityImportance: 8
  budget: low
  userGeography: global
  latencyImportance: 7

The API key and model default to GEMINI_API_KEY and GEMINI_MODEL from the
environment or .env file.

Example:
  dbmatch recommend --input request.yaml --format json`,
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Gemini API key (default: " + config.EnvGeminiAPIKey + ")",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Gemini model (default: " + config.EnvGeminiModel + " or the built-in model)",
			},
			&cli.StringFlag{
				Name:   "base-url",
				Hidden: true,
				Usage:  "Gemini API endpoint override",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.IsSet("api-key") {
				cfg.Gemini.APIKey = cmd.String("api-key")
			}
			if cmd.IsSet("model") {
				cfg.Gemini.Model = cmd.String("model")
			}
			if cmd.IsSet("base-url") {
				cfg.Gemini.BaseURL = cmd.String("base-url")
			}

			req, err := loadRequest(cmd.String("input"))
			if err != nil {
				return cli.Exit(err.Error(), exitError)
			}

			gen, err := llm.New(ctx, llm.Config{
				APIKey:      cfg.Gemini.APIKey,
				BaseURL:     cfg.Gemini.BaseURL,
				Temperature: cfg.Gemini.Temperature,
			})
			if err != nil {
				return fmt.Errorf("failed to create gemini client: %w", err)
			}

			advisor := recommendation.NewAdvisor(gen, recommendation.WithModel(cfg.Gemini.Model))

			slog.Info("requesting recommendation", "model", advisor.Model())

			res, err := advisor.Recommend(ctx, req)
			if err != nil {
				return fmt.Errorf("error generating recommendation: %w", err)
			}

			doc := recommendation.NewDocument(req, res, advisor.Model(), version)
			return writeDocument(ctx, outFormat, cmd.String("output"), doc)
		},
	}
}
