// SPDX-License-Identifier: AGPL-3.0-or-later

// Package executor runs rendered argument vectors as child processes and
// captures their outcome.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Options controls how a single command invocation runs.
type Options struct {
	// Timeout bounds the process lifetime. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
	// Dir is the working directory. Empty inherits the server's cwd.
	Dir string
	// Env appends KEY=VALUE pairs to the inherited environment.
	Env []string
}

// Result holds the captured outcome of one invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Run executes argv[0] with the remaining elements as arguments. A
// non-zero exit is not an error: it is reported through Result.ExitCode
// so the caller can relay the command's own diagnostics. Errors are
// reserved for failures to run at all (spawn errors, context
// cancellation, timeout), in which case ExitCode is -1.
func Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{ExitCode: -1}, fmt.Errorf("run command: empty argument vector")
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return res, nil
	}

	// The context verdict takes precedence: a killed process surfaces as
	// an ExitError, but the caller needs to know it was a timeout.
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return res, fmt.Errorf("command timed out after %s", opts.Timeout)
		}
		return res, fmt.Errorf("command cancelled: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = -1
	return res, fmt.Errorf("run command %q: %w", argv[0], err)
}
