/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package crash turns a panic in the CLI into a logged error, a report file
// and exit status 2.
package crash

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	applog "brandgen/internal/log"
	"brandgen/internal/version"
)

// ExitCode is the process status after a recovered panic.
const ExitCode = 2

var (
	exitFn           = os.Exit
	stderr io.Writer = os.Stderr

	reportDir atomic.Pointer[string]
)

// SetReportDir selects where crash reports go. Until it is called, or when
// dir is unwritable, reports land in the system temp dir.
func SetReportDir(dir string) { reportDir.Store(&dir) }

// Recover logs a panic, writes a report and exits with ExitCode. It must be
// deferred directly: defer crash.Recover()
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	var dir string
	if p := reportDir.Load(); p != nil {
		dir = *p
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(dir, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err), slog.String("path", reportPath))
	}
	_, _ = fmt.Fprintf(stderr, "brandgen crashed. Report: %s\nVersion: %s\nOS/Arch: %s/%s\n",
		reportPath, version.String(), runtime.GOOS, runtime.GOARCH)
	_ = applog.Close()
	exitFn(ExitCode)
}

func writeReport(dir string, panicVal any, stack []byte) (string, error) {
	if dir == "" || os.MkdirAll(dir, 0o755) != nil {
		dir = os.TempDir()
	}
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("brandgen-crash-%s-%d.log", now.Format("20060102-150405"), os.Getpid()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "brandgen crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", now.Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "Args: %q\n", os.Args)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
