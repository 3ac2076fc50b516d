// Package storage provides SQLite-based persistence for finished run results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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
)

// ErrNotFound is returned when a run ID has no stored result.
var ErrNotFound = errors.New("storage: result not found")

// Store manages the SQLite database connection for run results.
type Store struct {
	db *sql.DB
}

// RunResult is the outcome of one simulation run.
type RunResult struct {
	ID        int64
	RunID     string // UUID, generated on save when empty
	LevelID   string
	Seed      int64
	Policy    string
	Ticks     uint64
	Light     int
	Dark      int
	Captures  int
	CreatedAt time.Time
}

// Winner returns "light", "dark" or "draw" by block count.
func (r RunResult) Winner() string {
	switch {
	case r.Light > r.Dark:
		return "light"
	case r.Dark > r.Light:
		return "dark"
	default:
		return "draw"
	}
}

// LevelStats aggregates results for one level.
type LevelStats struct {
	LevelID     string
	Runs        int
	LightWins   int
	DarkWins    int
	MaxCaptures int
	AvgTicks    float64
	LastRun     time.Time
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
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			policy TEXT NOT NULL DEFAULT 'reflect_y',
			ticks INTEGER NOT NULL,
			light INTEGER NOT NULL,
			dark INTEGER NOT NULL,
			captures INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_captures ON runs(level_id, captures DESC);
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

// SaveResult records a finished run and returns it with ID and RunID set.
func (s *Store) SaveResult(r RunResult) (RunResult, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return r, fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}
	if r.Policy == "" {
		r.Policy = "reflect_y"
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (run_id, level_id, seed, policy, ticks, light, dark, captures)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Seed, r.Policy, int64(r.Ticks), r.Light, r.Dark, r.Captures,
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return r, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	r.ID = id
	return r, nil
}

const resultColumns = `id, run_id, level_id, seed, policy, ticks, light, dark, captures, created_at`

// RecentResults returns the newest results first, across all levels.
func (s *Store) RecentResults(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// TopResults returns the runs with the most captures for a level.
func (s *Store) TopResults(levelID string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY captures DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// ResultByRunID retrieves a single result.
func (s *Store) ResultByRunID(runID string) (RunResult, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+` FROM runs WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return RunResult{}, fmt.Errorf("storage: cannot query result: %w", err)
	}
	results, err := scanResults(rows)
	if err != nil {
		return RunResult{}, err
	}
	if len(results) == 0 {
		return RunResult{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return results[0], nil
}

// Stats aggregates all results for a level.
func (s *Store) Stats(levelID string) (LevelStats, error) {
	stats := LevelStats{LevelID: levelID}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN light > dark THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN dark > light THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(captures), 0),
		        COALESCE(AVG(ticks), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.LightWins, &stats.DarkWins, &stats.MaxCaptures, &stats.AvgTicks, &lastRun)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)
	return stats, nil
}

// ClearResults deletes all results for a level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]RunResult, error) {
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		var ticks int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.LevelID,
			&r.Seed,
			&r.Policy,
			&ticks,
			&r.Light,
			&r.Dark,
			&r.Captures,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
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
