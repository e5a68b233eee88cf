// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"database/sql"
	"fmt"
)

var baseMigrations = [...]string{
	`CREATE TABLE IF NOT EXISTS call_journal (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		call_id TEXT NOT NULL,
		tool TEXT NOT NULL,
		argv TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		ts INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_call_journal_tool_ts ON call_journal(tool, ts);`,
}

func applyMigrations(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range baseMigrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
