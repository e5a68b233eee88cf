// SPDX-License-Identifier: AGPL-3.0-or-later
package journal

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func openTestJournal(t *testing.T, maxEntries int) *Journal {
	t.Helper()
	ctx := context.Background()
	j, err := Open(ctx, Options{DataDir: t.TempDir(), MaxEntries: maxEntries})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = j.Close()
	})
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j := openTestJournal(t, 0)

	ts := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	first := Entry{
		CallID:    "call-1",
		Tool:      "echo",
		Argv:      []string{"echo", "hello"},
		ExitCode:  0,
		Duration:  25 * time.Millisecond,
		Timestamp: ts,
	}
	if err := j.Record(ctx, first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	second := Entry{
		CallID:    "call-2",
		Tool:      "echo",
		Argv:      []string{"echo", "world"},
		ExitCode:  1,
		Duration:  40 * time.Millisecond,
		Timestamp: ts.Add(time.Second),
	}
	if err := j.Record(ctx, second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	entries, err := j.Recent(ctx, "echo", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].CallID != "call-2" || entries[1].CallID != "call-1" {
		t.Fatalf("expected newest first, got %#v", entries)
	}
	if !reflect.DeepEqual(entries[0].Argv, []string{"echo", "world"}) {
		t.Fatalf("unexpected argv %v", entries[0].Argv)
	}
	if entries[0].ExitCode != 1 {
		t.Fatalf("unexpected exit code %d", entries[0].ExitCode)
	}
	if entries[0].Duration != 40*time.Millisecond {
		t.Fatalf("unexpected duration %v", entries[0].Duration)
	}
	if !entries[1].Timestamp.Equal(ts) {
		t.Fatalf("expected timestamp %v, got %v", ts, entries[1].Timestamp)
	}
}

func TestJournalRecentFiltersByTool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j := openTestJournal(t, 0)

	for _, tool := range []string{"echo", "ls", "echo"} {
		if err := j.Record(ctx, Entry{CallID: "c", Tool: tool, Argv: []string{tool}}); err != nil {
			t.Fatalf("record %s: %v", tool, err)
		}
	}

	entries, err := j.Recent(ctx, "ls", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Tool != "ls" {
		t.Fatalf("expected single ls entry, got %#v", entries)
	}

	all, err := j.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestJournalEvictsBeyondBound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j := openTestJournal(t, 3)

	for i := 0; i < 5; i++ {
		entry := Entry{
			CallID: fmt.Sprintf("call-%d", i),
			Tool:   "echo",
			Argv:   []string{"echo", fmt.Sprintf("%d", i)},
		}
		if err := j.Record(ctx, entry); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	entries, err := j.Recent(ctx, "echo", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected retention bound of 3, got %d entries", len(entries))
	}
	if entries[0].CallID != "call-4" || entries[2].CallID != "call-2" {
		t.Fatalf("expected oldest entries evicted, got %#v", entries)
	}
}

func TestJournalRecordRequiresTool(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t, 0)
	if err := j.Record(context.Background(), Entry{CallID: "x"}); err == nil {
		t.Fatalf("expected error for missing tool name")
	}
}

func TestJournalSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	j, err := Open(ctx, Options{DataDir: dir})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := j.Record(ctx, Entry{CallID: "c1", Tool: "echo", Argv: []string{"echo"}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, Options{DataDir: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	entries, err := reopened.Recent(ctx, "echo", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}
