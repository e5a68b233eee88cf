// SPDX-License-Identifier: AGPL-3.0-or-later
package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on a POSIX shell")
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	res, err := Run(context.Background(), []string{"echo", "hello", "world"}, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	if res.Stdout != "hello world\n" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShell(t)
	res, err := Run(context.Background(), []string{"sh", "-c", "exit 3"}, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", res.ExitCode)
	}
}

func TestRun_CapturesStderr(t *testing.T) {
	skipWithoutShell(t)
	res, err := Run(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 1"}, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 1 {
		t.Fatalf("expected exit 1, got %d", res.ExitCode)
	}
	if res.Stderr != "oops\n" {
		t.Fatalf("unexpected stderr %q", res.Stderr)
	}
}

func TestRun_Timeout(t *testing.T) {
	skipWithoutShell(t)
	res, err := Run(context.Background(), []string{"sleep", "5"}, Options{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected timeout error, got result %+v", res)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("unexpected error %v", err)
	}
	if res.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %d", res.ExitCode)
	}
}

func TestRun_SpawnFailure(t *testing.T) {
	res, err := Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, Options{})
	if err == nil {
		t.Fatalf("expected spawn error")
	}
	if res.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %d", res.ExitCode)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	if _, err := Run(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}

func TestRun_WorkingDirAndEnv(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	res, err := Run(context.Background(), []string{"sh", "-c", "pwd; printf %s \"$SHELLMCP_TEST_VAR\""}, Options{
		Dir: dir,
		Env: []string{"SHELLMCP_TEST_VAR=wired"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(res.Stdout, "wired") {
		t.Fatalf("expected env var in output, got %q", res.Stdout)
	}
}
