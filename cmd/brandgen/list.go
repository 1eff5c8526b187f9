/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brandgen/internal/scene"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in scenes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	scenes, err := scene.Builtins()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tOPS\tOUTPUT")
	for _, s := range scenes {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n", s.Name, s.Width, s.Height, len(s.Ops), s.OutputName())
	}
	return tw.Flush()
}
