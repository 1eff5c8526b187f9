/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package watch re-runs a callback when scene files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "brandgen/internal/log"
)

// DefaultDebounce collapses editor save bursts (write, chmod, rename) into
// one change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes a fixed set of files. Parent directories are watched
// rather than the files, so editors that replace files on save keep working.
type Watcher struct {
	Files    []string
	Debounce time.Duration
	// OnChange is called with the cleaned path of a changed file. Calls for
	// different files may overlap; calls for one file never do.
	OnChange func(ctx context.Context, path string)
}

// Run blocks until ctx is done or the underlying watcher fails. It returns
// only after any OnChange call already in progress has finished.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.Files) == 0 {
		return errors.New("no files to watch")
	}
	if w.OnChange == nil {
		return errors.New("OnChange is required")
	}
	l := applog.WithComponent("watch")
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	wanted := make(map[string]bool, len(w.Files))
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", f, err)
		}
		wanted[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	l.Info("watching", slog.Int("files", len(wanted)), slog.Int("dirs", len(dirs)))

	d := newDebouncer(delay, func(path string) { w.fire(ctx, path) })
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !wanted[abs] {
				continue
			}
			l.Debug("change", slog.String("path", abs), slog.String("op", ev.Op.String()))
			d.touch(abs)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher error", slog.Any("err", err))
		}
	}
}

func (w *Watcher) fire(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	w.OnChange(ctx, path)
}

// debouncer calls fn once per key after the key has been quiet for delay.
type debouncer struct {
	delay time.Duration
	fn    func(string)

	mu       sync.Mutex
	timers   map[string]*time.Timer
	running  map[string]*sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
}

func newDebouncer(delay time.Duration, fn func(string)) *debouncer {
	return &debouncer{delay: delay, fn: fn, timers: map[string]*time.Timer{}, running: map[string]*sync.Mutex{}}
}

func (d *debouncer) touch(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Reset(d.delay)
		return
	}
	if d.running[key] == nil {
		d.running[key] = &sync.Mutex{}
	}
	run := d.running[key]
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		if d.stopped {
			d.mu.Unlock()
			return
		}
		// Add under mu so stop never waits on a zero group that is about to grow.
		d.inflight.Add(1)
		d.mu.Unlock()
		defer d.inflight.Done()
		run.Lock()
		defer run.Unlock()
		d.fn(key)
	})
}

// stop cancels pending calls and waits for running ones to return.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
	d.mu.Unlock()
	d.inflight.Wait()
}
