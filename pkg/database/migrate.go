package database

import (
	"database/sql"
	"fmt"
	"os"
)

const defaultSchemaPath = "docs/schema.sql"

// Migrate applies docs/schema.sql to the database. The schema uses
// IF NOT EXISTS guards, so repeated runs are safe.
func Migrate(db *sql.DB) error {
	return MigrateFile(db, defaultSchemaPath)
}

// MigrateFile applies the schema at path; for tools and tests running
// outside the repository root.
func MigrateFile(db *sql.DB, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
