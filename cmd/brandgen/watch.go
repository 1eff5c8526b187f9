/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	applog "brandgen/internal/log"
	"brandgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Render scene files now and again whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-rendering")
	watchCmd.Flags().String("compression", "", "Deflate level: default, speed, best, none")
	watchCmd.Flags().String("font", "", "Glyph table for scenes without a font: 5x7, basic7x13")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")
	opts, closeFn, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	l := applog.WithOperation(applog.WithComponent("cli"), "watch")
	out := cmd.OutOrStdout()
	for _, f := range args {
		if err := renderOne(cmd.Context(), out, f, opts); err != nil {
			// keep watching: the next save may fix the document
			l.Error("render failed", slog.String("path", f), slog.Any("err", err))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintf(out, "watching %d file(s), press Ctrl+C to stop\n", len(args))
	}
	w := &watch.Watcher{
		Files:    args,
		Debounce: debounce,
		OnChange: func(ctx context.Context, path string) {
			if err := renderOne(ctx, out, path, opts); err != nil {
				l.Error("render failed", slog.String("path", path), slog.Any("err", err))
			}
		},
	}
	return w.Run(ctx)
}
