// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists batch run outcomes in a local SQLite database
// so past conversions can be inspected after the fact. Recording failures
// never fails a conversion; callers log and continue.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/scoreconv/pkg/types"
)

const dbFile = "scoreconv.db"

// Run is one recorded batch run.
type Run struct {
	ID         int64
	JobFile    string
	Total      int
	Failed     int
	OK         bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store manages the run-history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database under cfg.Dir, creating
// the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_file TEXT NOT NULL,
			total INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			ok INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_errors_run_id ON run_errors(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores one batch outcome and returns the run id.
func (s *Store) RecordRun(ctx context.Context, jobFile string, total int, result types.BatchResult, started, finished time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (job_file, total, failed, ok, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobFile, total, len(result.Errors), result.OK,
		started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, errors.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Errorf("reading run id: %w", err)
	}

	for i, e := range result.Errors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, position, input, output, message) VALUES (?, ?, ?, ?, ?)`,
			runID, i, e.In, e.Out, e.Message); err != nil {
			return 0, errors.Errorf("inserting run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_file, total, failed, ok, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.JobFile, &r.Total, &r.Failed, &r.OK, &started, &finished); err != nil {
			return nil, errors.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunErrors returns the per-job failures of one run, in job order.
func (s *Store) RunErrors(ctx context.Context, runID int64) ([]types.JobError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, message FROM run_errors WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, errors.Errorf("querying run errors: %w", err)
	}
	defer rows.Close()

	var errs []types.JobError
	for rows.Next() {
		var e types.JobError
		if err := rows.Scan(&e.In, &e.Out, &e.Message); err != nil {
			return nil, errors.Errorf("scanning run error: %w", err)
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}
