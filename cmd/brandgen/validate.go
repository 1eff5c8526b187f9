/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"brandgen/internal/scene"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check scene documents against the scene schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		s, err := scene.Load(path)
		if err == nil {
			fmt.Fprintf(out, "ok      %s (%s, %dx%d, %d ops)\n", path, s.Name, s.Width, s.Height, len(s.Ops))
			continue
		}
		failed++
		var verr *scene.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "invalid %s\n", path)
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "        - %s\n", p)
			}
			continue
		}
		fmt.Fprintf(out, "error   %s: %v\n", path, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}
