package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

// Fixed width so lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	job             TEXT NOT NULL,
	started_at      TEXT NOT NULL,
	duration_ms     INTEGER NOT NULL,
	status          TEXT NOT NULL,
	notification_id TEXT NOT NULL DEFAULT '',
	recipients      INTEGER NOT NULL DEFAULT 0,
	error           TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Store keeps the delivery ledger in a SQLite database.
type Store struct {
	db *sql.DB
}

var _ ports.RunHistory = (*Store)(nil)

// Open opens (creating if needed) the ledger at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run; re-recording the same id replaces it.
func (s *Store) Record(ctx context.Context, run model.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, job, started_at, duration_ms, status, notification_id, recipients, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Job,
		run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(),
		string(run.Status),
		run.NotificationID,
		run.Recipients,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job, started_at, duration_ms, status, notification_id, recipients, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var (
			run        model.Run
			startedAt  string
			durationMS int64
			status     string
		)
		if err := rows.Scan(&run.ID, &run.Job, &startedAt, &durationMS, &status, &run.NotificationID, &run.Recipients, &run.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.Status = model.RunStatus(status)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
