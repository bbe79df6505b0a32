// Package store records finished games in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS results (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id    TEXT    NOT NULL,
		winner      TEXT    NOT NULL,
		plies       INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS results_match_id ON results (match_id)`,
}

// Result is one finished game.
type Result struct {
	MatchID    string
	Winner     string
	Plies      int
	FinishedAt time.Time
}

type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the results database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := sqlDB.Exec(stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) RecordResult(ctx context.Context, r Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(r.MatchID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(r.Winner) == "" {
		return fmt.Errorf("winner is required")
	}
	finished := r.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO results (match_id, winner, plies, finished_at) VALUES (?, ?, ?, ?)`,
		r.MatchID, r.Winner, r.Plies, finished.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// ListResults returns the most recent results first.
func (s *Store) ListResults(ctx context.Context, limit int) ([]Result, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT match_id, winner, plies, finished_at FROM results ORDER BY finished_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r  Result
			ms int64
		)
		if err := rows.Scan(&r.MatchID, &r.Winner, &r.Plies, &ms); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.FinishedAt = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
