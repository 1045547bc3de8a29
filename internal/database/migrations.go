package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema DDL, applied in order. users -> tasks -> changes so the foreign
// keys resolve; deletes cascade user -> task -> change.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		login         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id            UUID PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		creation_time TIMESTAMPTZ NOT NULL,
		finish_time   TIMESTAMPTZ,
		user_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS changes (
		id            UUID PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		creation_time TIMESTAMPTZ NOT NULL,
		finish_time   TIMESTAMPTZ,
		task_id       UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		recorded_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_changes_task_id ON changes(task_id)`,
}

// Migrate applies the schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
