package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dshills/jqrt/pkg/catalog"
)

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded conformance run of a catalog.
type Run struct {
	ID        uuid.UUID
	Catalog   string
	StartedAt time.Time
	Passed    int
	Failed    int
	Cases     []CaseRecord // populated by Get, nil from List
}

// CaseRecord is the stored outcome of one case. Kind and Message are empty
// for cases that produced an output.
type CaseRecord struct {
	CaseID  string
	Passed  bool
	Kind    string
	Message string
}

// NewRun builds a Run from a catalog result with a fresh ID.
func NewRun(res *catalog.Result, startedAt time.Time) *Run {
	run := &Run{
		ID:        uuid.New(),
		Catalog:   res.Catalog,
		StartedAt: startedAt,
		Passed:    res.Passed,
		Failed:    res.Failed,
		Cases:     make([]CaseRecord, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		msg := o.Message
		if !o.Passed && o.Reason != "" {
			msg = o.Reason
		}
		run.Cases = append(run.Cases, CaseRecord{
			CaseID:  o.CaseID,
			Passed:  o.Passed,
			Kind:    o.Kind,
			Message: msg,
		})
	}
	return run
}

// SQLiteRunRepository persists conformance runs in SQLite.
type SQLiteRunRepository struct {
	db *sql.DB
}

// NewSQLiteRunRepository opens (creating if needed) the run-history database
// at dbPath and applies pending migrations.
func NewSQLiteRunRepository(dbPath string) (*SQLiteRunRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteRunRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteRunRepository) Close() error {
	return r.db.Close()
}

// Save stores a run and its case records in one transaction. Saving an ID
// that already exists replaces the earlier record.
func (r *SQLiteRunRepository) Save(run *Run) error {
	if run == nil {
		return fmt.Errorf("cannot save nil run")
	}
	if run.ID == uuid.Nil {
		return fmt.Errorf("run ID cannot be empty")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO runs (id, catalog, started_at, passed, failed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			catalog = excluded.catalog,
			started_at = excluded.started_at,
			passed = excluded.passed,
			failed = excluded.failed
	`
	if _, err := tx.Exec(query, run.ID.String(), run.Catalog, run.StartedAt.UTC(), run.Passed, run.Failed); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM run_cases WHERE run_id = ?", run.ID.String()); err != nil {
		return fmt.Errorf("failed to clear run cases: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_cases (run_id, position, case_id, passed, kind, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare case insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range run.Cases {
		if _, err := stmt.Exec(run.ID.String(), i, c.CaseID, c.Passed, nullString(c.Kind), nullString(c.Message)); err != nil {
			return fmt.Errorf("failed to save case %s: %w", c.CaseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get loads a run with its case records.
func (r *SQLiteRunRepository) Get(id uuid.UUID) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT id, catalog, started_at, passed, failed
		FROM runs
		WHERE id = ?
	`, id.String())

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	cases, err := r.loadCases(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run cases: %w", err)
	}
	run.Cases = cases

	return run, nil
}

// ListOptions filters the runs returned by ListFiltered.
type ListOptions struct {
	Limit        int       // zero or less means no limit
	Catalog      string    // exact catalog name, empty for all
	StartedAfter time.Time // zero for no lower bound
}

// List returns up to limit runs, most recent first. A limit of zero or
// less returns every run.
func (r *SQLiteRunRepository) List(limit int) ([]*Run, error) {
	return r.ListFiltered(ListOptions{Limit: limit})
}

// ListFiltered returns the runs matching opts, most recent first.
func (r *SQLiteRunRepository) ListFiltered(opts ListOptions) ([]*Run, error) {
	query := `
		SELECT id, catalog, started_at, passed, failed
		FROM runs
		WHERE 1 = 1`
	args := make([]interface{}, 0, 3)

	if opts.Catalog != "" {
		query += " AND catalog = ?"
		args = append(args, opts.Catalog)
	}
	if !opts.StartedAfter.IsZero() {
		query += " AND started_at >= ?"
		args = append(args, opts.StartedAfter.UTC())
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " ORDER BY started_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]*Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

func (r *SQLiteRunRepository) loadCases(id uuid.UUID) ([]CaseRecord, error) {
	rows, err := r.db.Query(`
		SELECT case_id, passed, kind, message
		FROM run_cases
		WHERE run_id = ?
		ORDER BY position
	`, id.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cases := make([]CaseRecord, 0)
	for rows.Next() {
		var c CaseRecord
		var kind, message sql.NullString
		if err := rows.Scan(&c.CaseID, &c.Passed, &kind, &message); err != nil {
			return nil, err
		}
		c.Kind = kind.String
		c.Message = message.String
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var id string
	if err := s.Scan(&id, &run.Catalog, &run.StartedAt, &run.Passed, &run.Failed); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.ID = parsed
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
