package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite variant of the schema, installed by OpenSQLite. Kept next to the
// Postgres DDL so the two stay in sync.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		login         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		creation_time TIMESTAMP NOT NULL,
		finish_time   TIMESTAMP,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS changes (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		creation_time TIMESTAMP NOT NULL,
		finish_time   TIMESTAMP,
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		recorded_at   TIMESTAMP NOT NULL
	)`,
}

// OpenSQLite opens a named in-memory SQLite database with foreign keys
// enabled and installs the schema. Tests use it as a stand-in for
// Postgres; the repositories rebind their queries per driver, so the same
// SQL runs against both.
func OpenSQLite(name string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for i, stmt := range sqliteMigrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply sqlite migration %d: %w", i+1, err)
		}
	}
	return db, nil
}
