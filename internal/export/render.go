/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"brandgen/internal/glyph"
	applog "brandgen/internal/log"
	"brandgen/internal/scene"
	"brandgen/internal/storage"
)

// RenderOptions controls how scenes become files.
//
// Path semantics:
//   - Each scene is written to <OutDir>/<scene output name>.
//   - Files are written to a temp file in OutDir and renamed into place, so
//     readers never observe a partial PNG.
//   - With History set, a scene whose latest recorded render key matches and
//     whose file still exists is skipped unless Force is set.
type RenderOptions struct {
	OutDir      string
	Parallel    int // <= 0 means 1
	Compression CompressionLevel
	// Table is used for scenes that do not name a font. Nil means the
	// built-in 5x7 table.
	Table   *glyph.Table
	Force   bool
	History *storage.History
}

// Result describes one scene's outcome.
type Result struct {
	Scene    string
	Path     string
	Key      string
	Bytes    int64
	Width    int
	Height   int
	Skipped  bool
	Duration time.Duration
}

var compressionByName = map[string]CompressionLevel{
	"default": DefaultCompression,
	"speed":   BestSpeed,
	"best":    BestCompression,
	"none":    NoCompression,
}

// ParseCompression maps a config name (default, speed, best, none) to a
// level. The empty string means default.
func ParseCompression(name string) (CompressionLevel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DefaultCompression, nil
	}
	if l, ok := compressionByName[n]; ok {
		return l, nil
	}
	return DefaultCompression, fmt.Errorf("unknown compression %q", name)
}

func (l CompressionLevel) String() string {
	for n, v := range compressionByName {
		if v == l {
			return n
		}
	}
	return fmt.Sprintf("CompressionLevel(%d)", int(l))
}

// renderKey identifies the bytes a render will produce: the scene content,
// the glyph table actually used and the compression level.
func renderKey(s *scene.Scene, table *glyph.Table, level CompressionLevel) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d", s.Digest(), table.Name(), int(level))
	return hex.EncodeToString(h.Sum(nil))
}

func resolveTable(s *scene.Scene, fallback *glyph.Table) (*glyph.Table, error) {
	if s.Font != "" {
		return glyph.ByName(s.Font)
	}
	if fallback != nil {
		return fallback, nil
	}
	return glyph.Default5x7(), nil
}

// RenderScene renders s and writes it below opts.OutDir.
func RenderScene(ctx context.Context, s *scene.Scene, opts RenderOptions) (Result, error) {
	if s == nil {
		return Result{}, errors.New("scene is nil")
	}
	ctx = applog.WithScene(ctx, s.Name)
	l := applog.WithOperation(applog.WithComponent("export"), "render")
	start := time.Now()

	table, err := resolveTable(s, opts.Table)
	if err != nil {
		return Result{}, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	res := Result{
		Scene:  s.Name,
		Path:   filepath.Join(opts.OutDir, s.OutputName()),
		Key:    renderKey(s, table, opts.Compression),
		Width:  s.Width,
		Height: s.Height,
	}

	if opts.History != nil && !opts.Force {
		if skip, size := upToDate(ctx, opts.History, res); skip {
			res.Skipped = true
			res.Bytes = size
			res.Duration = time.Since(start)
			l.DebugContext(ctx, "unchanged, skipped", slog.String("path", res.Path))
			return res, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	fb := scene.Render(s, table)
	n, err := writeAtomic(res.Path, func(f *os.File) error {
		return (&PNGEncoder{CompressionLevel: opts.Compression}).Encode(f, fb)
	})
	if err != nil {
		l.ErrorContext(ctx, "write failed", slog.String("path", res.Path), slog.Any("err", err))
		return res, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	res.Bytes = n
	res.Duration = time.Since(start)

	if opts.History != nil {
		if _, err := opts.History.Record(ctx, storage.Entry{
			Scene: s.Name, Digest: res.Key, Path: res.Path,
			Width: res.Width, Height: res.Height, Bytes: res.Bytes,
		}); err != nil {
			// the asset is on disk; a missing entry only costs a re-render
			l.WarnContext(ctx, "history record failed", slog.Any("err", err))
		}
	}
	l.InfoContext(ctx, "rendered", slog.String("path", res.Path), slog.Int64("bytes", res.Bytes), slog.Duration("took", res.Duration))
	return res, nil
}

func upToDate(ctx context.Context, h *storage.History, res Result) (bool, int64) {
	last, ok, err := h.Latest(ctx, res.Scene)
	if err != nil || !ok || last.Digest != res.Key || last.Path != res.Path {
		return false, 0
	}
	st, err := os.Stat(res.Path)
	if err != nil || st.Size() != last.Bytes {
		return false, 0
	}
	return true, st.Size()
}

// writeAtomic writes through a temp file in the target directory and renames
// it over path. It returns the number of bytes written.
func writeAtomic(path string, write func(f *os.File) error) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure out dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, err
	}
	st, err := tmp.Stat()
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return 0, fmt.Errorf("rename into place: %w", err)
	}
	return st.Size(), nil
}

// RenderAll renders scenes with at most opts.Parallel in flight. Results are
// in input order. The first failure cancels scenes that have not started and
// is returned alongside the results gathered so far.
func RenderAll(ctx context.Context, scenes []*scene.Scene, opts RenderOptions) ([]Result, error) {
	if err := checkOutputNames(scenes); err != nil {
		return nil, err
	}
	limit := opts.Parallel
	if limit <= 0 {
		limit = 1
	}
	results := make([]Result, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range scenes {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := RenderScene(gctx, s, opts)
			results[i] = r
			return err
		})
	}
	err := g.Wait()
	return results, err
}

// checkOutputNames rejects batches where two scenes would write the same file.
func checkOutputNames(scenes []*scene.Scene) error {
	seen := make(map[string]string, len(scenes))
	for _, s := range scenes {
		if s == nil {
			return errors.New("scene is nil")
		}
		out := s.OutputName()
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("scenes %s and %s both write %s", prev, s.Name, out)
		}
		seen[out] = s.Name
	}
	return nil
}
