// Package storage provides the SQLite session journal: one row per phase
// run (boot menu or game), with its outcome and how long it lasted.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Phase names stored in the journal.
const (
	PhaseBoot = "boot"
	PhaseGame = "game"
)

// Outcomes of a phase run.
const (
	OutcomeFinished  = "finished"  // terminal condition reached
	OutcomeCancelled = "cancelled" // context cancelled or console stopped
	OutcomeLimit     = "limit"     // tick limit reached
	OutcomeFailed    = "failed"    // load or callback error
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Run is one journaled phase run.
type Run struct {
	ID        int64
	Phase     string
	Game      string // payload name, empty for the boot menu
	Outcome   string
	Ticks     int
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// PlayCount is the number of game runs journaled for one game.
type PlayCount struct {
	Game  string
	Count int
	Last  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phase TEXT NOT NULL,
			game TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game ON runs(game);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun appends a run to the journal and returns its ID.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (phase, game, outcome, ticks, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Phase, r.Game, r.Outcome, r.Ticks, r.Error, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, phase, game, outcome, ticks, error, duration_ms, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Phase, &r.Game, &r.Outcome, &r.Ticks, &r.Error, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// PlayCounts returns how often each game was started, most played first.
func (s *Store) PlayCounts() ([]PlayCount, error) {
	rows, err := s.db.Query(
		`SELECT game, COUNT(*), MAX(created_at)
		 FROM runs
		 WHERE phase = ? AND game != ''
		 GROUP BY game
		 ORDER BY COUNT(*) DESC, game ASC`,
		PhaseGame,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query play counts: %w", err)
	}
	defer rows.Close()

	var counts []PlayCount
	for rows.Next() {
		var c PlayCount
		var last any
		if err := rows.Scan(&c.Game, &c.Count, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Last = parseTime(last)
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// ClearRuns deletes the whole journal.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
