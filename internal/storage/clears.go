package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelClear records one completed level within a run.
type LevelClear struct {
	ID         int64
	RunID      string
	GameID     string
	LevelID    string
	Targets    int
	Touches    int
	Reverts    int
	Hints      int
	DurationMs int64
	CreatedAt  time.Time
}

// SaveLevelClear records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelClear(c LevelClear) (int64, error) {
	if c.RunID == "" || c.GameID == "" || c.LevelID == "" {
		return 0, fmt.Errorf("storage: level clear needs run, game and level ids")
	}

	res, err := s.db.Exec(
		`INSERT INTO level_clears
		 (run_id, game_id, level_id, targets, touches, reverts, hints, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.GameID, c.LevelID, c.Targets, c.Touches, c.Reverts, c.Hints, c.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level clear: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const clearColumns = `id, run_id, game_id, level_id, targets, touches, reverts, hints, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClear(row rowScanner) (LevelClear, error) {
	var c LevelClear
	var createdAt any
	err := row.Scan(&c.ID, &c.RunID, &c.GameID, &c.LevelID,
		&c.Targets, &c.Touches, &c.Reverts, &c.Hints, &c.DurationMs, &createdAt)
	if err != nil {
		return LevelClear{}, err
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return c, nil
}

// BestClear returns the best recorded clear of a level: fewest hints, then
// fewest touches, then fastest. Returns nil if the level was never cleared.
func (s *Store) BestClear(gameID, levelID string) (*LevelClear, error) {
	row := s.db.QueryRow(
		`SELECT `+clearColumns+`
		 FROM level_clears
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY hints ASC, touches ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
		gameID, levelID,
	)

	c, err := scanClear(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best clear: %w", err)
	}
	return &c, nil
}

// RecentClears retrieves the most recent level clears across all games.
func (s *Store) RecentClears(limit int) ([]LevelClear, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryClears(
		`SELECT `+clearColumns+`
		 FROM level_clears
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunClears retrieves the clears of one run in the order they were made.
func (s *Store) RunClears(runID string) ([]LevelClear, error) {
	return s.queryClears(
		`SELECT `+clearColumns+`
		 FROM level_clears
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
}

func (s *Store) queryClears(query string, args ...any) ([]LevelClear, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level clears: %w", err)
	}
	defer rows.Close()

	var clears []LevelClear
	for rows.Next() {
		c, err := scanClear(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		clears = append(clears, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return clears, nil
}
