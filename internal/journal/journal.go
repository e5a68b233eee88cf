// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal persists a bounded history of tool calls in a local
// SQLite database.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shellmcp-org/shellmcp/internal/paths"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	dbFileName       = "shellmcp.db"

	defaultBusyTimeout = 5 * time.Second
	defaultMaxEntries  = 10000
)

// Options controls how the journal is opened.
type Options struct {
	// DataDir is the base directory where the DB file lives. If empty the
	// platform-default shellmcp data directory is used.
	DataDir string
	// MaxEntries bounds how many calls are retained. Oldest entries are
	// evicted once the bound is exceeded. Zero uses the default.
	MaxEntries int
}

// Entry is one recorded tool call.
type Entry struct {
	Seq       int64
	CallID    string
	Tool      string
	Argv      []string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// Journal provides append-only call persistence with size-bounded eviction.
type Journal struct {
	db         *sql.DB
	maxEntries int
	nowFn      func() time.Time
}

// Open initialises the journal database with required pragmas and schema.
// The connection is pinned to a single handle; SQLite serialises writers
// and the WAL keeps readers out of their way.
func Open(ctx context.Context, opts Options) (*Journal, error) {
	dir := opts.DataDir
	if dir == "" {
		dir = paths.DataDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", filepath.ToSlash(dbPath), int(defaultBusyTimeout/time.Millisecond))

	conn, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, stmt := range pragmas {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("execute pragma %q: %w", stmt, err)
		}
	}

	if err := applyMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	return &Journal{
		db:         conn,
		maxEntries: maxEntries,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// Close shuts down the underlying SQLite connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one call to the journal and evicts the oldest rows
// beyond the retention bound. Insertion and eviction share a transaction
// so the bound holds under concurrent recorders.
func (j *Journal) Record(ctx context.Context, entry Entry) (err error) {
	if j == nil {
		return nil
	}
	if entry.Tool == "" {
		return fmt.Errorf("record call: tool name required")
	}

	argvJSON, err := json.Marshal(entry.Argv)
	if err != nil {
		return fmt.Errorf("encode argv: %w", err)
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = j.nowFn()
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
INSERT INTO call_journal (call_id, tool, argv, exit_code, duration_ms, ts)
VALUES (?, ?, ?, ?, ?, ?)
`, entry.CallID, entry.Tool, string(argvJSON), entry.ExitCode, entry.Duration.Milliseconds(), ts.UnixMilli()); err != nil {
		return fmt.Errorf("journal insert: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
DELETE FROM call_journal WHERE seq NOT IN (
	SELECT seq FROM call_journal ORDER BY seq DESC LIMIT ?
)
`, j.maxEntries); err != nil {
		return fmt.Errorf("journal eviction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	return nil
}

// Recent returns the most recent calls, newest first. An empty tool name
// matches every tool. limit caps the result; zero or negative means a
// single page of 50.
func (j *Journal) Recent(ctx context.Context, tool string, limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
SELECT seq, call_id, tool, argv, exit_code, duration_ms, ts
FROM call_journal
`
	args := []any{}
	if tool != "" {
		query += "WHERE tool = ?\n"
		args = append(args, tool)
	}
	query += "ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var argvJSON string
		var durationMillis, tsMillis int64
		if err := rows.Scan(&e.Seq, &e.CallID, &e.Tool, &argvJSON, &e.ExitCode, &durationMillis, &tsMillis); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		if err := json.Unmarshal([]byte(argvJSON), &e.Argv); err != nil {
			return nil, fmt.Errorf("decode argv seq=%d: %w", e.Seq, err)
		}
		e.Duration = time.Duration(durationMillis) * time.Millisecond
		e.Timestamp = time.UnixMilli(tsMillis).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows: %w", err)
	}
	return entries, nil
}
