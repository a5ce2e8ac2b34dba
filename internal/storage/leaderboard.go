package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LeaderboardEntry is one user's best time on a variant at one difficulty.
type LeaderboardEntry struct {
	ID            int64
	Variant       string
	Difficulty    string
	Username      string
	TimeRemaining float64 // seconds left on the clock when the run was won
	UpdatedAt     time.Time
}

// SubmitBestTime records a winning time for a user. The stored value only
// changes when the new time is better. Times from different difficulties
// never replace each other. Reports whether a row was written.
func (s *Store) SubmitBestTime(ctx context.Context, variant, difficulty, username string, timeRemaining float64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard (variant, difficulty, username, time_remaining, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(variant, difficulty, username) DO UPDATE
		   SET time_remaining = excluded.time_remaining,
		       updated_at = excluded.updated_at
		   WHERE excluded.time_remaining > leaderboard.time_remaining`,
		variant, orDefault(difficulty), username, timeRemaining, formatTime(time.Now()),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot submit best time: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// TopTimes retrieves the best times for a variant at one difficulty, most
// time left first.
func (s *Store) TopTimes(ctx context.Context, variant, difficulty string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, variant, difficulty, username, time_remaining, updated_at
		 FROM leaderboard
		 WHERE variant = ? AND difficulty = ?
		 ORDER BY time_remaining DESC, updated_at ASC, id ASC
		 LIMIT ?`,
		variant, orDefault(difficulty), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.ID, &e.Variant, &e.Difficulty, &e.Username, &e.TimeRemaining, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTime returns a user's best time on a variant at one difficulty. ok is
// false when the user has never won it there.
func (s *Store) BestTime(ctx context.Context, variant, difficulty, username string) (best float64, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT time_remaining FROM leaderboard WHERE variant = ? AND difficulty = ? AND username = ?",
		variant, orDefault(difficulty), username,
	).Scan(&best)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	return best, true, nil
}
