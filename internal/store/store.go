package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users will need to delete their results database afterwards.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages check-run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the results database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure results directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the results database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun inserts a completed run with its trial timings in one
// transaction and returns the stored row id.
func (s *Store) RecordRun(ctx context.Context, run *Run, timings []TrialTiming) (int64, error) {
	if run == nil {
		return 0, errors.New("run is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO check_runs (
            run_id, session_id, log_path, report_path, started_at, finished_at,
            warnings, infos, metrics_passed, metrics_failed,
            reading_ms, setup_ms, total_ms, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.SessionID,
		nullableString(run.LogPath),
		nullableString(run.ReportPath),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Warnings,
		run.Infos,
		run.MetricsPassed,
		run.MetricsFailed,
		run.ReadingMS,
		run.SetupMS,
		run.TotalMS,
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, timing := range timings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trial_timings (run_ref, trial, practice, stimulus, element, duration_ms, complete)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id,
			timing.Trial,
			boolToInt(timing.Practice),
			timing.Stimulus,
			timing.Element,
			timing.DurationMS,
			boolToInt(timing.Complete),
		); err != nil {
			return 0, fmt.Errorf("insert trial timing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListRuns returns runs ordered newest first. A non-empty sessionID
// restricts the listing to one session; limit <= 0 returns everything.
func (s *Store) ListRuns(ctx context.Context, sessionID string, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM check_runs`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY finished_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by its external run identifier.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM check_runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// TrialTimings returns the stored per-element durations for a run.
func (s *Store) TrialTimings(ctx context.Context, runRef int64) ([]TrialTiming, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT trial, practice, stimulus, element, duration_ms, complete
         FROM trial_timings WHERE run_ref = ? ORDER BY id`, runRef)
	if err != nil {
		return nil, fmt.Errorf("query trial timings: %w", err)
	}
	defer rows.Close()

	var timings []TrialTiming
	for rows.Next() {
		var (
			timing   TrialTiming
			practice int
			complete int
		)
		if err := rows.Scan(&timing.Trial, &practice, &timing.Stimulus, &timing.Element, &timing.DurationMS, &complete); err != nil {
			return nil, err
		}
		timing.Practice = practice != 0
		timing.Complete = complete != 0
		timings = append(timings, timing)
	}
	return timings, rows.Err()
}

const runColumns = "id, run_id, session_id, log_path, report_path, started_at, finished_at, warnings, infos, metrics_passed, metrics_failed, reading_ms, setup_ms, total_ms, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		logPath      sql.NullString
		reportPath   sql.NullString
		startedRaw   string
		finishedRaw  string
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&run.SessionID,
		&logPath,
		&reportPath,
		&startedRaw,
		&finishedRaw,
		&run.Warnings,
		&run.Infos,
		&run.MetricsPassed,
		&run.MetricsFailed,
		&run.ReadingMS,
		&run.SetupMS,
		&run.TotalMS,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	run.LogPath = logPath.String
	run.ReportPath = reportPath.String
	run.ErrorMessage = errorMessage.String
	if started, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = started
	}
	if finished, err := time.Parse(time.RFC3339Nano, finishedRaw); err == nil {
		run.FinishedAt = finished
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
