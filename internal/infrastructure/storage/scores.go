// Package storage persists run history, records and player settings.
// Scores use the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	keyHighScore = "high_score"
	keyBestTime  = "best_time"
)

// ScoreStore keeps finished runs and the all-time records
type ScoreStore struct {
	db *sql.DB
}

// RunResult is one finished campaign attempt
type RunResult struct {
	ID            int64
	Score         int
	TimeMs        int64
	LevelsCleared int
	Completed     bool
	Seed          int64
	CreatedAt     time.Time
}

// Open creates or opens the score database at path. A leading ~ expands
// to the home directory; ":memory:" opens a private in-memory database.
func Open(path string) (*ScoreStore, error) {
	if path != ":memory:" {
		if path != "" && path[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A second pooled connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &ScoreStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *ScoreStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			levels_cleared INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *ScoreStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun appends a finished run to the history
func (s *ScoreStore) RecordRun(run RunResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (score, time_ms, levels_cleared, completed, seed)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Score, run.TimeMs, run.LevelsCleared, run.Completed, run.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs by score, newest first among ties
func (s *ScoreStore) TopRuns(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, time_ms, levels_cleared, completed, seed, created_at
		 FROM runs
		 ORDER BY score DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		var r RunResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.TimeMs, &r.LevelsCleared, &r.Completed, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the stored high score, 0 when none was saved
func (s *ScoreStore) HighScore() (int, error) {
	v, ok, err := s.record(keyHighScore)
	if err != nil || !ok {
		return 0, err
	}
	return int(v), nil
}

// BestTime returns the fastest completed run in milliseconds. ok is false
// until a run has been completed.
func (s *ScoreStore) BestTime() (ms int64, ok bool, err error) {
	return s.record(keyBestTime)
}

// SaveHighScore stores score if it beats the current record and reports
// whether it did.
func (s *ScoreStore) SaveHighScore(score int) (bool, error) {
	current, err := s.HighScore()
	if err != nil {
		return false, err
	}
	if score <= current {
		return false, nil
	}
	if err := s.setRecord(keyHighScore, int64(score)); err != nil {
		return false, err
	}
	return true, nil
}

// SaveBestTime stores ms if it is faster than the current record and
// reports whether it did.
func (s *ScoreStore) SaveBestTime(ms int64) (bool, error) {
	current, ok, err := s.BestTime()
	if err != nil {
		return false, err
	}
	if ok && ms >= current {
		return false, nil
	}
	if err := s.setRecord(keyBestTime, ms); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ScoreStore) record(key string) (int64, bool, error) {
	var v int64
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query %s: %w", key, err)
	}
	return v, true, nil
}

func (s *ScoreStore) setRecord(key string, v int64) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

func parseTimestamp(v any) time.Time {
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
