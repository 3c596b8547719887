// Package history keeps a local SQLite log of revision check runs.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates a database written by a different schema version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Run is one recorded revision check.
type Run struct {
	ID         int64         `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Client     string        `json:"client" yaml:"client"`
	Home       string        `json:"home" yaml:"home"`
	Output     string        `json:"output" yaml:"output"`
	Total      int           `json:"total" yaml:"total"`
	Verified   int           `json:"verified" yaml:"verified"`
	NeedsCheck int           `json:"needs_check" yaml:"needs_check"`
	NotFound   int           `json:"not_found" yaml:"not_found"`
	Warnings   int           `json:"warnings" yaml:"warnings"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Store persists runs in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapResource("open", "history", path, err)
	}
	// A single connection keeps pragmas and writes on one handle.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, errors.WrapResource("configure", "history", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("path", path).Msg("Opened run history")
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run and sets its ID.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return &errors.ValidationError{Field: "run", Message: "cannot be nil"}
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            started_at, client_path, home_path, output_path,
            total, verified, needs_check, not_found, warnings, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Client,
		run.Home,
		run.Output,
		run.Total,
		run.Verified,
		run.NeedsCheck,
		run.NotFound,
		run.Warnings,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return errors.WrapResource("insert", "run", run.Client, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.WrapResource("insert", "run", run.Client, err)
	}
	run.ID = id
	return nil
}

// List returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, client_path, home_path, output_path,
        total, verified, needs_check, not_found, warnings, duration_ms
        FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapResource("list", "runs", "", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "runs", "", err)
	}
	return runs, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, &errors.ValidationError{Field: "keep", Value: keep, Message: "must be zero or greater"}
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
        )`, keep)
	if err != nil {
		return 0, errors.WrapResource("prune", "runs", "", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		startedAt  string
		durationMs int64
	)
	if err := row.Scan(
		&run.ID, &startedAt, &run.Client, &run.Home, &run.Output,
		&run.Total, &run.Verified, &run.NeedsCheck, &run.NotFound, &run.Warnings, &durationMs,
	); err != nil {
		return Run{}, errors.WrapResource("scan", "run", "", err)
	}

	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, errors.WrapParse("timestamp", "history", err)
	}
	run.StartedAt = t
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return errors.WrapResource("inspect", "history", s.path, err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return errors.WrapResource("inspect", "history", s.path, err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has v%d, expected v%d (remove %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("migrate", "history", s.path, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return errors.WrapResource("migrate", "history", s.path, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return errors.WrapResource("migrate", "history", s.path, err)
	}
	return tx.Commit()
}
