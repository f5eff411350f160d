// Package storage provides SQLite-based persistence for personal records and
// run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/punch-escape/internal/games/escape"
)

// Keys of the records table.
const (
	KeyBestScore = "best_score"
	KeyBestLevel = "best_level"
	KeyPlays     = "plays"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is a stored run with its insertion time.
type RunEntry struct {
	escape.Run
	CreatedAt time.Time
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
	// SSH sessions share one store; a single connection serialises writers.
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			gems INTEGER NOT NULL DEFAULT 0,
			gems_total INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
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

// value reads one record, 0 when absent.
func (s *Store) value(key string) (int, error) {
	var v int
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return v, nil
}

// raise stores v under key unless the stored value is already at least v.
func (s *Store) raise(key string, v int) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE excluded.value > records.value`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// LoadBest returns best score, best level and play count.
// Best level is at least 1.
func (s *Store) LoadBest() (escape.Best, error) {
	var b escape.Best
	var err error
	if b.Score, err = s.value(KeyBestScore); err != nil {
		return escape.Best{Level: 1}, err
	}
	if b.Level, err = s.value(KeyBestLevel); err != nil {
		return escape.Best{Level: 1}, err
	}
	if b.Plays, err = s.value(KeyPlays); err != nil {
		return escape.Best{Level: 1}, err
	}
	if b.Level < 1 {
		b.Level = 1
	}
	return b, nil
}

// SaveBest raises the stored best score and level. Lower values are ignored.
func (s *Store) SaveBest(b escape.Best) error {
	if err := s.raise(KeyBestScore, b.Score); err != nil {
		return err
	}
	return s.raise(KeyBestLevel, b.Level)
}

// IncrementPlays bumps the play counter and returns the new value.
func (s *Store) IncrementPlays() (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO records (key, value) VALUES (?, 1)
		 ON CONFLICT(key) DO UPDATE SET value = records.value + 1`,
		KeyPlays,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot increment plays: %w", err)
	}

	var plays int
	if err := tx.QueryRow("SELECT value FROM records WHERE key = ?", KeyPlays).Scan(&plays); err != nil {
		return 0, fmt.Errorf("storage: cannot read plays: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit plays: %w", err)
	}
	return plays, nil
}

// SaveRun records a finished run. Saving the same id twice replaces the row.
func (s *Store) SaveRun(r escape.Run) error {
	if r.ID == "" {
		return errors.New("storage: run has no id")
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO runs
		 (id, score, level, gems, gems_total, outcome, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Score, r.Level, r.Gems, r.GemsTotal, r.Outcome, int(r.Duration.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, score, level, gems, gems_total, outcome, duration_secs, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// TopRuns returns the highest scoring runs.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, score, level, gems, gems_total, outcome, duration_secs, created_at
		 FROM runs
		 ORDER BY score DESC, level DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var secs int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.Level, &e.Gems, &e.GemsTotal,
			&e.Outcome, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(secs) * time.Second
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

var _ escape.Records = (*Store)(nil)
