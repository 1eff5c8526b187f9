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
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brandgen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and where they come from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configFile is the --config flag or the platform default.
func configFile(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configFile(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Save(path, config.Defaults()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := configFile(cmd)
	if err != nil {
		return err
	}
	c := app.cfg
	rows := []struct{ key, value string }{
		{"render.out_dir", c.Render.OutDir},
		{"render.parallel", strconv.Itoa(c.Render.Parallel)},
		{"render.compression", c.Render.Compression},
		{"render.font", c.Render.Font},
		{"history.enabled", strconv.FormatBool(c.History.Enabled)},
		{"history.path", c.HistoryPath()},
		{"logging.level", c.Logging.Level},
		{"logging.format", c.Logging.Format},
		{"logging.source", strconv.FormatBool(c.Logging.Source)},
		{"logging.file", c.Logging.File},
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		src := ""
		if env, ok := config.EnvOverrideFor(r.key); ok {
			src = "(" + env + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.key, r.value, src)
	}
	return tw.Flush()
}
