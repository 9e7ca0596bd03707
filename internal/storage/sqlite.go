// Package storage provides SQLite-based persistence for recorded replays.
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

	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplaySummary is a replay row without its config and input frames.
type ReplaySummary struct {
	ID         int64
	Seed       int64
	TickRate   int
	Ticks      uint64
	FinalScore int
	CreatedAt  time.Time
}

// Duration returns the simulated length of the replay.
func (r ReplaySummary) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate) //#nosec G115 -- tick counts fit in int64
}

// ReplayStats contains aggregated statistics over all stored replays.
type ReplayStats struct {
	Count      int
	BestScore  int
	TotalTicks int64
	LastPlayed time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			final_score INTEGER NOT NULL DEFAULT 0,
			final_hash INTEGER NOT NULL,
			frames BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_score ON replays(final_score DESC);
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

// SaveReplay stores a recorded session.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(rp *replay.Replay) (int64, error) {
	frames, err := replay.EncodeFrames(rp.Frames)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (seed, tick_rate, config_yaml, ticks, final_score, final_hash, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rp.Seed,
		rp.TickRate,
		rp.ConfigYAML,
		int64(rp.Ticks),     //#nosec G115 -- tick counts fit in int64
		rp.FinalScore,
		int64(rp.FinalHash), //#nosec G115 -- stored as the signed bit pattern
		frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replay loads a full replay by ID.
// Returns nil without error if no such replay exists.
func (s *Store) Replay(id int64) (*replay.Replay, error) {
	var rp replay.Replay
	var ticks, hash int64
	var frames []byte
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, tick_rate, config_yaml, ticks, final_score, final_hash, frames, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&rp.ID,
		&rp.Seed,
		&rp.TickRate,
		&rp.ConfigYAML,
		&ticks,
		&rp.FinalScore,
		&hash,
		&frames,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rp.Ticks = uint64(ticks)    //#nosec G115 -- written from a uint64
	rp.FinalHash = uint64(hash) //#nosec G115 -- signed bit pattern of the hash
	rp.CreatedAt = parseTime(createdAt)

	rp.Frames, err = replay.DecodeFrames(frames)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	return &rp, nil
}

// RecentReplays retrieves the most recent replays, newest first.
func (s *Store) RecentReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, tick_rate, ticks, final_score, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.TickRate, &ticks, &e.FinalScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks) //#nosec G115 -- written from a uint64
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes a replay. Reports whether a row was deleted.
func (s *Store) DeleteReplay(id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// Stats retrieves aggregated statistics over all replays.
func (s *Store) Stats() (*ReplayStats, error) {
	stats := &ReplayStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(final_score), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM replays`,
	).Scan(&stats.Count, &stats.BestScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
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
