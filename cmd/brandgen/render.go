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
	"io"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"brandgen/internal/export"
	"brandgen/internal/glyph"
	"brandgen/internal/scene"
	"brandgen/internal/storage"
)

var renderCmd = &cobra.Command{
	Use:   "render [scene files...]",
	Short: "Render scene documents (default: all built-in scenes)",
	Long: `Render scene documents (.yaml, .yml, .json, .toml) to PNG.

Without arguments or --builtin, every built-in scene is rendered. Scenes whose
content, font and compression are unchanged since the last recorded render are
skipped unless --force is given.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringSlice("builtin", nil, "Built-in scenes to render (see 'brandgen list')")
	renderCmd.Flags().Bool("force", false, "Render even if the output is up to date")
	renderCmd.Flags().Int("parallel", 0, "Scenes rendered concurrently (overrides render.parallel)")
	renderCmd.Flags().String("compression", "", "Deflate level: default, speed, best, none")
	renderCmd.Flags().String("font", "", "Glyph table for scenes without a font: 5x7, basic7x13")
	renderCmd.Flags().String("bundle", "", "Also pack the rendered files into this zip archive")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	builtins, _ := cmd.Flags().GetStringSlice("builtin")
	force, _ := cmd.Flags().GetBool("force")
	bundle, _ := cmd.Flags().GetString("bundle")

	scenes, err := collectScenes(args, builtins)
	if err != nil {
		return err
	}
	opts, closeFn, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	defer closeFn()
	opts.Force = force

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := export.RenderAll(ctx, scenes, opts)
	printResults(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}
	if bundle != "" {
		man, err := export.WriteBundle(bundle, results)
		if err != nil {
			return fmt.Errorf("bundle: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bundled %d assets into %s\n", len(man.Assets), bundle)
	}
	return nil
}

// collectScenes loads files and named built-ins in argument order. With
// neither, all built-ins are returned.
func collectScenes(files, builtins []string) ([]*scene.Scene, error) {
	if len(files) == 0 && len(builtins) == 0 {
		return scene.Builtins()
	}
	var out []*scene.Scene
	for _, name := range builtins {
		s, err := scene.Builtin(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, f := range files {
		s, err := scene.Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// renderOptions resolves flags over app.cfg. The returned func closes the
// history database.
func renderOptions(cmd *cobra.Command) (export.RenderOptions, func(), error) {
	cfg := app.cfg
	noop := func() {}
	if cmd.Flags().Lookup("parallel") != nil {
		if n, _ := cmd.Flags().GetInt("parallel"); n > 0 {
			cfg.Render.Parallel = n
		}
	}
	if cmd.Flags().Lookup("compression") != nil {
		if c, _ := cmd.Flags().GetString("compression"); c != "" {
			cfg.Render.Compression = c
		}
	}
	if cmd.Flags().Lookup("font") != nil {
		if f, _ := cmd.Flags().GetString("font"); f != "" {
			cfg.Render.Font = f
		}
	}

	level, err := export.ParseCompression(cfg.Render.Compression)
	if err != nil {
		return export.RenderOptions{}, noop, err
	}
	table, err := glyph.ByName(cfg.Render.Font)
	if err != nil {
		return export.RenderOptions{}, noop, err
	}
	opts := export.RenderOptions{
		OutDir:      cfg.Render.OutDir,
		Parallel:    cfg.Render.Parallel,
		Compression: level,
		Table:       table,
	}
	if !cfg.History.Enabled {
		return opts, noop, nil
	}
	h, err := storage.OpenHistory(cfg.HistoryPath())
	if err != nil {
		return export.RenderOptions{}, noop, err
	}
	opts.History = h
	return opts, func() { _ = h.Close() }, nil
}

func printResults(w io.Writer, results []export.Result) {
	for _, r := range results {
		if r.Bytes == 0 {
			continue // not written
		}
		status := "wrote"
		if r.Skipped {
			status = "up to date"
		}
		fmt.Fprintf(w, "%-10s %-14s %5dx%-5d %8s  %s\n", status, r.Scene, r.Width, r.Height, humanize.Bytes(uint64(r.Bytes)), r.Path)
	}
}

// renderOne is the watch callback body: it renders a single scene file,
// ignoring history so every save produces output.
func renderOne(ctx context.Context, w io.Writer, path string, opts export.RenderOptions) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	opts.Force = true
	res, err := export.RenderScene(ctx, s, opts)
	if err != nil {
		return err
	}
	printResults(w, []export.Result{res})
	return nil
}
