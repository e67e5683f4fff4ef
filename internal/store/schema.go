// Package store handles all database operations for the to-do list.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitSchema creates the todos table if it does not exist.
// This is idempotent - safe to call multiple times.
func InitSchema(db *sqlx.DB) error {
	// todos table: the only table in the database. The completed flag is
	// stored as INTEGER 0/1 and normalized to bool on the way out.
	ddl := `CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0
	)`

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to execute DDL: %w", err)
	}

	return nil
}
