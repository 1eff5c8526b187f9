/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Command brandgen renders procedural brand artwork (logos, social cards)
// to PNG files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"brandgen/internal/config"
	"brandgen/internal/crash"
	applog "brandgen/internal/log"
	"brandgen/internal/storage"
	"brandgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:               "brandgen",
	Short:             "Render procedural brand artwork to PNG",
	Version:           version.String(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

// app holds state shared by subcommands after loadApp ran.
var app struct {
	cfg config.AppConfig
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/brandgen/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("out", "o", "", "Output directory (overrides render.out_dir)")
}

func loadApp(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Render.OutDir = out
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Console:   cmd.ErrOrStderr(),
	})
	crash.SetReportDir(filepath.Join(cfg.Render.OutDir, storage.HistoryDirName))
	app.cfg = cfg
	applog.WithComponent("cli").Debug("start",
		slog.String("cmd", cmd.Name()),
		slog.String("out_dir", cfg.Render.OutDir),
		slog.String("config", cfgPath))
	return nil
}

func main() {
	defer crash.Recover()
	err := rootCmd.Execute()
	_ = applog.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
