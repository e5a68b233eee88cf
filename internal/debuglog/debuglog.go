// SPDX-License-Identifier: AGPL-3.0-or-later

// Package debuglog provides the opt-in diagnostic log. The server speaks
// its protocol on stdout, so diagnostics must never touch it: output goes
// to stderr when --debug is set, or to a file when --log is given.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	enabled bool
	sink    io.Writer = os.Stderr
)

// SetDebug toggles logging to the current sink.
func SetDebug(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// SetLogFile redirects diagnostics to the named file, appending to any
// existing content, and enables logging.
func SetLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	sink = f
	enabled = true
	return nil
}

// Logf writes one formatted diagnostic line when logging is enabled.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(sink, "[shellmcp] "+format+"\n", args...)
}

// Sink returns a writer that forwards whole writes through the debug log,
// suitable for handing to libraries that want an io.Writer or *log.Logger
// destination. Writes are dropped while logging is disabled.
func Sink() io.Writer {
	return sinkWriter{}
}

type sinkWriter struct{}

func (sinkWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return len(p), nil
	}
	if _, err := sink.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
