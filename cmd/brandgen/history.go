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
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"brandgen/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent renders from the history database",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	path := app.cfg.HistoryPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "no render history at %s\n", path)
		return nil
	}
	h, err := storage.OpenHistory(path)
	if err != nil {
		return err
	}
	defer h.Close()

	entries, err := h.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSCENE\tSIZE\tBYTES\tKEY\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%.12s\t%s\n",
			humanize.Time(e.CreatedAt), e.Scene, e.Width, e.Height, humanize.Bytes(uint64(e.Bytes)), e.Digest, e.Path)
	}
	return tw.Flush()
}
