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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dbmatch/pkg/recommendation"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a request document without calling the model",
		Description: `Check a request document against the field rules and write a
ValidationResult document listing every violation.

Exits with a non-zero status when the document is invalid.

Example:
  dbmatch validate --input request.json`,
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			in, err := loadInput(cmd.String("input"))
			if err != nil {
				return err
			}

			_, verr := recommendation.Validate(in)
			doc := recommendation.NewValidationDocument(verr, version)

			if err := writeDocument(ctx, outFormat, cmd.String("output"), doc); err != nil {
				return err
			}

			if !doc.Valid {
				return cli.Exit(fmt.Sprintf("request is invalid: %d violation(s)", len(doc.Violations)), exitError)
			}
			return nil
		},
	}
}
