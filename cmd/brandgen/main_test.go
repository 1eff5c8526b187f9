/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores defaults; cobra keeps flag values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and an isolated config.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BRANDGEN_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderBuiltinThenSkip(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--builtin", "logo", "--out", dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "wrote") || !strings.Contains(out, "logo-game.png") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "logo-game.png")); err != nil {
		t.Fatalf("missing output: %v", err)
	}

	out, err = execute(t, "render", "--builtin", "logo", "--out", dir)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(out, "up to date") {
		t.Fatalf("expected skip, got %q", out)
	}

	out, err = execute(t, "history", "--out", dir)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if strings.Count(out, "logo") != 2 { // one entry: scene name and path
		t.Fatalf("unexpected history output: %q", out)
	}
}

func TestRenderSceneFileWithBundle(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "badge.toml")
	body := `name = "badge"
width = 32
height = 16

[background]
top = [10, 10, 10]
bottom = [40, 40, 40]

[[ops]]
[ops.text]
text = "OK"
x = 2
y = 2
color = [255, 255, 255]
scale = 1
`
	if err := os.WriteFile(doc, []byte(body), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	bundle := filepath.Join(dir, "assets.zip")
	out, err := execute(t, "render", doc, "--out", filepath.Join(dir, "out"), "--bundle", bundle, "--compression", "best")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "badge.png") || !strings.Contains(out, "bundled 1 assets") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(bundle); err != nil {
		t.Fatalf("bundle missing: %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(good, []byte(`{"name":"g","width":4,"height":4,"background":{"top":[0,0,0],"bottom":[0,0,0]},"ops":[]}`), 0o644)
	_ = os.WriteFile(bad, []byte("name: b\nwidth: 0\nheight: 4\n"), 0o644)

	out, err := execute(t, "validate", good)
	if err != nil || !strings.Contains(out, "ok") {
		t.Fatalf("validate good: %q %v", out, err)
	}
	out, err = execute(t, "validate", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected failure count, got %v", err)
	}
	if !strings.Contains(out, "invalid "+bad) {
		t.Fatalf("bad document not reported: %q", out)
	}
}

func TestListAndVersion(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"logo", "512x512", "social-card", "1200x630"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q: %q", want, out)
		}
	}
	out, err = execute(t, "version")
	if err != nil || !strings.HasPrefix(out, "brandgen ") {
		t.Fatalf("version: %q %v", out, err)
	}
}

func TestRenderUnknownBuiltin(t *testing.T) {
	_, err := execute(t, "render", "--builtin", "nope", "--out", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brandgen", "config.yaml")
	out, err := execute(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := execute(t, "config", "init", "--config", path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if _, err := execute(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	t.Setenv("BRANDGEN_PARALLEL", "7")
	out, err = execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "# "+path) {
		t.Fatalf("config path not shown: %q", out)
	}
	var parallel, font string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "render.parallel"):
			parallel = line
		case strings.HasPrefix(line, "render.font"):
			font = line
		}
	}
	if !strings.Contains(parallel, "7") || !strings.Contains(parallel, "(BRANDGEN_PARALLEL)") {
		t.Fatalf("env override not marked: %q", parallel)
	}
	if !strings.Contains(font, "5x7") || strings.Contains(font, "(") {
		t.Fatalf("font line wrong: %q", font)
	}
}
