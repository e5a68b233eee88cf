// SPDX-License-Identifier: AGPL-3.0-or-later
package paths

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDataDirOverrideWins(t *testing.T) {
	t.Setenv(envDataDir, t.TempDir())
	dir := t.TempDir()
	SetDataDirOverride(dir)
	t.Cleanup(func() { SetDataDirOverride("") })

	if got := DataDir(); got != filepath.Clean(dir) {
		t.Fatalf("DataDir() = %q, want %q", got, dir)
	}
}

func TestDataDirFromEnv(t *testing.T) {
	SetDataDirOverride("")
	dir := t.TempDir()
	t.Setenv(envDataDir, dir)

	if got := DataDir(); got != filepath.Clean(dir) {
		t.Fatalf("DataDir() = %q, want %q", got, dir)
	}
}

func TestDataDirXDGDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG resolution does not apply on windows")
	}
	SetDataDirOverride("")
	t.Setenv(envDataDir, "")
	xdg := t.TempDir()
	t.Setenv(envXDGDataHome, xdg)

	want := filepath.Join(xdg, appDirName)
	if got := DataDir(); got != want {
		t.Fatalf("DataDir() = %q, want %q", got, want)
	}
}

func TestDataPathJoins(t *testing.T) {
	dir := t.TempDir()
	SetDataDirOverride(dir)
	t.Cleanup(func() { SetDataDirOverride("") })

	want := filepath.Join(dir, "a", "b")
	if got := DataPath("a", "b"); got != want {
		t.Fatalf("DataPath() = %q, want %q", got, want)
	}
}

func TestEnsureDataPathCreates(t *testing.T) {
	dir := t.TempDir()
	SetDataDirOverride(dir)
	t.Cleanup(func() { SetDataDirOverride("") })

	path, err := EnsureDataPath("nested", "leaf")
	if err != nil {
		t.Fatalf("EnsureDataPath: %v", err)
	}
	if path != filepath.Join(dir, "nested", "leaf") {
		t.Fatalf("unexpected path %q", path)
	}
}
