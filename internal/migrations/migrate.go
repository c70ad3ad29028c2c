package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// gooseDialect maps a backend name onto goose's dialect identifiers.
func gooseDialect(backend string) string {
	if backend == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

// Up runs all pending SQL migrations found in migrationsDir for backend.
func Up(db *sql.DB, migrationsDir, backend string) error {
	if err := goose.SetDialect(gooseDialect(backend)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
