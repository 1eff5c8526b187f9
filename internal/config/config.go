/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package config loads the user configuration: a YAML file with
// environment overrides on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"brandgen/internal/glyph"
	"brandgen/internal/storage"
)

// CurrentVersion is written into new config files. Bump it when the layout
// changes incompatibly.
const CurrentVersion = 1

type RenderConfig struct {
	OutDir      string `yaml:"out_dir"`
	Parallel    int    `yaml:"parallel"`
	Compression string `yaml:"compression"` // default | speed | best | none
	Font        string `yaml:"font"`        // 5x7 | basic7x13
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path defaults to <out_dir>/.brandgen/history.sqlite when empty.
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the persisted configuration. Environment variables override
// it at load time but are never written back.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: CurrentVersion,
		Render:        RenderConfig{OutDir: "attached_assets", Parallel: 2, Compression: "default", Font: "5x7"},
		History:       HistoryConfig{Enabled: true},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfig      = "BRANDGEN_CONFIG"
	EnvOutDir      = "BRANDGEN_OUT_DIR"
	EnvParallel    = "BRANDGEN_PARALLEL"
	EnvCompression = "BRANDGEN_COMPRESSION"
	EnvFont        = "BRANDGEN_FONT"
	EnvHistory     = "BRANDGEN_HISTORY"
	EnvLogLevel    = "BRANDGEN_LOG_LEVEL"
	EnvLogFormat   = "BRANDGEN_LOG_FORMAT"
	EnvLogSource   = "BRANDGEN_LOG_SOURCE"
	EnvLogFile     = "BRANDGEN_LOG_FILE"
)

var compressionNames = []string{"default", "speed", "best", "none"}

// ConfigPath returns the per-user config file path. BRANDGEN_CONFIG wins
// over the platform location.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home := os.Getenv("HOME")
			if home == "" {
				return "", errors.New("cannot resolve config directory")
			}
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "brandgen", "config.yaml"), nil
}

// Load reads the config file at path (ConfigPath when empty), merges it over
// the defaults and applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			applyEnvOverrides(&cfg)
			return cfg, cfg.Validate()
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path (ConfigPath when empty).
func Save(path string, cfg AppConfig) error {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate reports settings no renderer can honour.
func (c AppConfig) Validate() error {
	if c.Render.Parallel < 1 {
		return fmt.Errorf("render.parallel must be at least 1, got %d", c.Render.Parallel)
	}
	if strings.TrimSpace(c.Render.OutDir) == "" {
		return errors.New("render.out_dir must not be empty")
	}
	ok := false
	for _, n := range compressionNames {
		if c.Render.Compression == n {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("render.compression %q is not one of %s", c.Render.Compression, strings.Join(compressionNames, ", "))
	}
	switch c.Render.Font {
	case glyph.Name5x7, glyph.NameBasic7x13:
	default:
		return fmt.Errorf("render.font %q is not one of %s, %s", c.Render.Font, glyph.Name5x7, glyph.NameBasic7x13)
	}
	return nil
}

// HistoryPath returns the configured history database path, derived from
// the output directory when unset.
func (c AppConfig) HistoryPath() string {
	if p := strings.TrimSpace(c.History.Path); p != "" {
		return p
	}
	return storage.DefaultHistoryPath(c.Render.OutDir)
}

// mergeInto copies set fields of src over dst. src starts from Defaults, so
// booleans absent from the file keep their default value.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Render.OutDir); v != "" {
		dst.Render.OutDir = v
	}
	if src.Render.Parallel != 0 {
		dst.Render.Parallel = src.Render.Parallel
	}
	if v := strings.TrimSpace(src.Render.Compression); v != "" {
		dst.Render.Compression = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Render.Font); v != "" {
		dst.Render.Font = v
	}
	dst.History.Enabled = src.History.Enabled
	if v := strings.TrimSpace(src.History.Path); v != "" {
		dst.History.Path = v
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		cfg.Render.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvParallel)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Render.Parallel = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCompression)); v != "" {
		cfg.Render.Compression = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFont)); v != "" {
		cfg.Render.Font = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistory)); v != "" {
		cfg.History.Enabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envByKey = map[string]string{
	"render.out_dir":     EnvOutDir,
	"render.parallel":    EnvParallel,
	"render.compression": EnvCompression,
	"render.font":        EnvFont,
	"history.enabled":    EnvHistory,
	"logging.level":      EnvLogLevel,
	"logging.format":     EnvLogFormat,
	"logging.source":     EnvLogSource,
	"logging.file":       EnvLogFile,
}

// EnvOverrideFor returns the env var name if the dotted key is currently
// overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envByKey[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
