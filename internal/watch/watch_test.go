/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	var calls atomic.Int32
	done := make(chan string, 4)
	d := newDebouncer(30*time.Millisecond, func(k string) {
		calls.Add(1)
		done <- k
	})
	defer d.stop()
	for i := 0; i < 5; i++ {
		d.touch("a")
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case k := <-done:
		if k != "a" {
			t.Fatalf("fired for %q", k)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("debouncer never fired")
	}
	time.Sleep(80 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(20*time.Millisecond, func(string) { calls.Add(1) })
	d.touch("a")
	d.stop()
	d.touch("b")
	time.Sleep(60 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("calls after stop = %d", n)
	}
}

func TestRunRequiresFilesAndCallback(t *testing.T) {
	if err := (&Watcher{}).Run(context.Background()); err == nil {
		t.Fatalf("expected error without files")
	}
	if err := (&Watcher{Files: []string{"x.yaml"}}).Run(context.Background()); err == nil {
		t.Fatalf("expected error without callback")
	}
}

func TestRunReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.yaml")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{target, other} {
		if err := os.WriteFile(p, []byte("v1"), 0o644); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var mu sync.Mutex
	var got []string
	changed := make(chan struct{}, 8)
	w := &Watcher{
		Files:    []string{target},
		Debounce: 20 * time.Millisecond,
		OnChange: func(_ context.Context, p string) {
			mu.Lock()
			got = append(got, p)
			mu.Unlock()
			changed <- struct{}{}
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("v2"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(target, []byte("v2"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported")
	}
	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	abs, _ := filepath.Abs(target)
	for _, p := range got {
		if p != abs {
			t.Fatalf("unexpected change path %q (want %q)", p, abs)
		}
	}
}

func TestDebouncerStopWaitsForRunningCall(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	d := newDebouncer(5*time.Millisecond, func(string) {
		close(started)
		time.Sleep(150 * time.Millisecond)
		finished.Store(true)
	})
	d.touch("a")
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("debouncer never fired")
	}
	d.stop()
	if !finished.Load() {
		t.Fatalf("stop returned while the call was still running")
	}
}

func TestRunReturnsAfterCallbackFinishes(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.yaml")
	if err := os.WriteFile(target, []byte("v1"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	started := make(chan struct{}, 1)
	var finished atomic.Bool
	w := &Watcher{
		Files:    []string{target},
		Debounce: 10 * time.Millisecond,
		OnChange: func(context.Context, string) {
			select {
			case started <- struct{}{}:
			default:
			}
			time.Sleep(300 * time.Millisecond)
			finished.Store(true)
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(target, []byte("v2"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported")
	}
	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !finished.Load() {
		t.Fatalf("Run returned while OnChange was still running")
	}
}
