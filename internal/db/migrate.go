package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per storage slot; data holds the whole board document.
	`CREATE TABLE IF NOT EXISTS board_slots (
		key        TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT ''
	)`,
}
