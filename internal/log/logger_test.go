/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestInitWritesJSONFile verifies the rotated file sink gets JSON records with
// the static and contextual attributes.
func TestInitWritesJSONFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "brandgen.log")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "console", File: fpath, Console: &console})
	t.Cleanup(func() { _ = Close() })

	l := WithOperation(WithComponent("export"), "render")
	l.InfoContext(WithScene(context.Background(), "logo"), "wrote asset", slog.Int("bytes", 1234))
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log %q: %v", last, err)
	}
	want := map[string]any{"app": AppName, "component": "export", "op": "render", "scene": "logo", "msg": "wrote asset"}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("%s = %v, want %v (record %v)", k, m[k], v, m)
		}
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr: %v", m)
	}

	out := console.String()
	if !strings.Contains(out, "INF wrote asset") || !strings.Contains(out, "scene=logo") || !strings.Contains(out, "bytes=1234") {
		t.Fatalf("console output missing content: %q", out)
	}
	if strings.Contains(out, "app=") {
		t.Fatalf("console should omit app attr: %q", out)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BRANDGEN_LOG_LEVEL", "warn")
	t.Setenv("BRANDGEN_LOG_FORMAT", "json")
	t.Setenv("BRANDGEN_LOG_SOURCE", "TRUE")
	t.Setenv("BRANDGEN_LOG_FILE", "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if v := getenv("BRANDGEN_SOME_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, " WARN ": slog.LevelWarn, "warning": slog.LevelWarn,
		"error": slog.LevelError, "": slog.LevelInfo, "bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLineHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &lineHandler{level: slog.LevelWarn, w: &buf, mu: &sync.Mutex{}}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should pass at warn level")
	}

	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("grp")
	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelError, "boom", 0)
	r.AddAttrs(slog.Int("n", 42), slog.Float64("pi", 3.14), slog.String("path", "a b"))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"03:04:05 ERR boom", " k=v", " grp.n=42", " grp.pi=3.14", ` grp.path="a b"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestSceneFrom(t *testing.T) {
	if _, ok := SceneFrom(context.Background()); ok {
		t.Fatalf("expected no scene on bare context")
	}
	if s, ok := SceneFrom(WithScene(context.Background(), "social-card")); !ok || s != "social-card" {
		t.Fatalf("SceneFrom = %q, %v", s, ok)
	}
}
