package storage

import (
	"database/sql"
	"fmt"
)

// MigrationVersion tracks the current database schema version.
const MigrationVersion = 1

// InitializeDatabase creates the SQLite schema for conformance run history.
// Applied migrations are recorded in the migrations table, so calling it
// on an existing database is a no-op.
func InitializeDatabase(db *sql.DB) error {
	migrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version INTEGER NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}

	if currentVersion < 1 {
		if err := applyMigration1(db); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}
	}

	return nil
}

// applyMigration1 creates the runs and run_cases tables.
func applyMigration1(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runsTable := `
	CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		catalog TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL
	);`

	if _, err := tx.Exec(runsTable); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	// position keeps catalog order; case ids are only unique per run
	runCasesTable := `
	CREATE TABLE run_cases (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		case_id TEXT NOT NULL,
		passed INTEGER NOT NULL,
		kind TEXT,
		message TEXT,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);`

	if _, err := tx.Exec(runCasesTable); err != nil {
		return fmt.Errorf("failed to create run_cases table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX idx_runs_started_at ON runs(started_at DESC);",
		"CREATE INDEX idx_runs_catalog ON runs(catalog);",
	}

	for _, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create run index: %w", err)
		}
	}

	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", 1); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}
