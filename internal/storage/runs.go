package storage

import (
	"context"
	"fmt"
	"time"
)

// Run outcomes.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID                 int64
	RunID              string
	Variant            string
	Difficulty         string
	Username           string
	Outcome            string
	Reason             string
	TimeRemaining      float64
	MaterialsCollected int
	TotalMaterials     int
	VitalityLeft       int
	FinishedAt         time.Time
}

// VariantStats contains aggregated run statistics for a variant at one
// difficulty.
type VariantStats struct {
	Variant    string
	Difficulty string
	Runs       int
	Wins       int
	BestTime   float64
	AvgOnWin   float64
	LastPlayed time.Time
}

// WinRate returns wins over runs in [0, 1].
func (v VariantStats) WinRate() float64 {
	if v.Runs == 0 {
		return 0
	}
	return float64(v.Wins) / float64(v.Runs)
}

// SaveRun records a finished run. Saving the same run id twice is a no-op
// and reports false.
func (s *Store) SaveRun(ctx context.Context, r RunRecord) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
		 (run_id, variant, difficulty, username, outcome, reason, time_remaining,
		  materials_collected, total_materials, vitality_left, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		r.RunID,
		r.Variant,
		orDefault(r.Difficulty),
		r.Username,
		r.Outcome,
		r.Reason,
		r.TimeRemaining,
		r.MaterialsCollected,
		r.TotalMaterials,
		r.VitalityLeft,
		formatTime(r.FinishedAt),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// RecentRuns retrieves the most recent runs across all variants.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, variant, difficulty, username, outcome, reason, time_remaining,
		        materials_collected, total_materials, vitality_left, finished_at
		 FROM runs
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var finishedAt any
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Variant,
			&r.Difficulty,
			&r.Username,
			&r.Outcome,
			&r.Reason,
			&r.TimeRemaining,
			&r.MaterialsCollected,
			&r.TotalMaterials,
			&r.VitalityLeft,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.FinishedAt = parseTime(finishedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// AllVariantStats retrieves statistics for every variant and difficulty that
// has been played, ordered by variant then difficulty.
func (s *Store) AllVariantStats(ctx context.Context) ([]VariantStats, error) {
	return s.queryStats(ctx, "", "")
}

// VariantStats retrieves statistics for one variant at one difficulty. A
// combination that was never played returns zero counts.
func (s *Store) VariantStats(ctx context.Context, variant, difficulty string) (*VariantStats, error) {
	difficulty = orDefault(difficulty)
	stats, err := s.queryStats(ctx, variant, difficulty)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &VariantStats{Variant: variant, Difficulty: difficulty}, nil
	}
	return &stats[0], nil
}

// queryStats groups runs by variant and difficulty. Empty filters match all.
func (s *Store) queryStats(ctx context.Context, variant, difficulty string) ([]VariantStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT variant,
		        difficulty,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        COALESCE(MAX(CASE WHEN outcome = 'won' THEN time_remaining END), 0),
		        COALESCE(AVG(CASE WHEN outcome = 'won' THEN time_remaining END), 0),
		        MAX(finished_at)
		 FROM runs
		 WHERE (? = '' OR variant = ?) AND (? = '' OR difficulty = ?)
		 GROUP BY variant, difficulty
		 ORDER BY variant, difficulty`,
		variant, variant, difficulty, difficulty,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	defer rows.Close()

	var stats []VariantStats
	for rows.Next() {
		var v VariantStats
		var lastPlayed any
		if err := rows.Scan(&v.Variant, &v.Difficulty, &v.Runs, &v.Wins, &v.BestTime, &v.AvgOnWin, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
