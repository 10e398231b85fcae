package scoreboard

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gridgames/snake-game/game/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT    NOT NULL,
	config_name TEXT    NOT NULL,
	score       INTEGER NOT NULL,
	length      INTEGER NOT NULL,
	ticks       INTEGER NOT NULL,
	cause       TEXT    NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_score ON results(score DESC, finished_at ASC);
`

// Store persists final session results in a SQLite database. It implements
// service.Scoreboard.
type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if needed) the scoreboard database at path.
// Use ":memory:" for an ephemeral scoreboard.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scoreboard database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize scoreboard schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the final result of a finished session
func (s *Store) Record(ctx context.Context, entry service.ScoreEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, config_name, score, length, ticks, cause, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.ConfigName, entry.Score, entry.Length, entry.Ticks, entry.Cause, entry.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// Top returns the best results, highest score first. Ties go to the earlier
// finish.
func (s *Store) Top(ctx context.Context, limit int) ([]service.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, config_name, score, length, ticks, cause, finished_at
		 FROM results
		 ORDER BY score DESC, finished_at ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	entries := []service.ScoreEntry{}
	for rows.Next() {
		var entry service.ScoreEntry
		if err := rows.Scan(&entry.SessionID, &entry.ConfigName, &entry.Score,
			&entry.Length, &entry.Ticks, &entry.Cause, &entry.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the total number of recorded results
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}
