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

func promptCmd() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Print the prompt a request document produces",
		Description: `Validate a request document and print the exact prompt that would be sent
to the model. No remote call is made.`,
		Flags: []cli.Flag{
			inputFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			req, err := loadRequest(cmd.String("input"))
			if err != nil {
				return cli.Exit(err.Error(), exitError)
			}

			prompt, err := recommendation.AssemblePrompt(req)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.Root().Writer, prompt)
			return err
		},
	}
}
