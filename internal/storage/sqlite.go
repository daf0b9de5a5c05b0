// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/results"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Entry is a stored record with its row ID.
type Entry struct {
	ID int64
	results.Record
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
// played_at is TEXT so the driver hands back exactly what was written.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			mode_name TEXT NOT NULL,
			file TEXT NOT NULL,
			timed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			played_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_score ON results(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_results_time ON results(mode, elapsed_ms ASC);
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

// Save implements results.Recorder.
func (s *Store) Save(rec results.Record) error {
	_, err := s.SaveResult(rec)
	return err
}

var _ results.Recorder = (*Store)(nil)

// SaveResult inserts a record and returns its row ID.
func (s *Store) SaveResult(rec results.Record) (int64, error) {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO results
		 (mode, mode_name, file, timed, failed, score, elapsed_ms, lines, level, pieces, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Mode, rec.ModeName, rec.File, rec.Timed, rec.Failed, rec.Score,
		rec.Elapsed.Milliseconds(), rec.Lines, rec.Level, rec.Pieces,
		at.Format(results.TimestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectColumns = `SELECT id, mode, mode_name, file, timed, failed, score, elapsed_ms, lines, level, pieces, played_at
		 FROM results`

// Leaderboard returns the best N results of a mode: highest score first,
// or fastest time first for timed modes. Ties go to the earlier record.
// Failed sessions are not ranked.
func (s *Store) Leaderboard(mode string, timed bool, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	order := "score DESC, played_at ASC, id ASC"
	if timed {
		order = "elapsed_ms ASC, played_at ASC, id ASC"
	}

	rows, err := s.db.Query(
		selectColumns+` WHERE mode = ? AND failed = 0 ORDER BY `+order+` LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanEntries(rows)
}

// History returns the most recent N results of a mode, newest first.
func (s *Store) History(mode string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectColumns+` WHERE mode = ? ORDER BY played_at DESC, id DESC LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanEntries(rows)
}

// Best returns the top leaderboard entry, or false if the mode has none.
func (s *Store) Best(mode string, timed bool) (Entry, bool, error) {
	entries, err := s.Leaderboard(mode, timed, 1)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

// ClearResults deletes all results for the given mode.
func (s *Store) ClearResults(mode string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			elapsedMS int64
			playedAt  any
		)
		if err := rows.Scan(
			&e.ID, &e.Mode, &e.ModeName, &e.File, &e.Timed, &e.Failed, &e.Score,
			&elapsedMS, &e.Lines, &e.Level, &e.Pieces, &playedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.At = parseTime(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.ParseInLocation(results.TimestampLayout, v, time.Local); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	BestScore  int
	AvgScore   float64
	BestTime   time.Duration // zero when no timed results exist
	TotalLines int64
	LastPlayed time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var bestMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MIN(CASE WHEN timed AND NOT failed THEN elapsed_ms END), 0), COALESCE(SUM(lines), 0)
		 FROM results WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.BestScore, &stats.AvgScore, &bestMS, &stats.TotalLines)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.BestTime = time.Duration(bestMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT played_at FROM results WHERE mode = ? ORDER BY played_at DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
