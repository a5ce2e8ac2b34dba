// Package leaderboard turns finished runs into storage writes.
package leaderboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/storage"
)

//go:generate go tool mockgen -destination=./mocks/runstore_mock.go -package=mocks . RunStore

// RunStore persists finished runs and best times. *storage.Store implements it.
type RunStore interface {
	SaveRun(ctx context.Context, r storage.RunRecord) (bool, error)
	SubmitBestTime(ctx context.Context, variant, difficulty, username string, timeRemaining float64) (bool, error)
}

var _ RunStore = (*storage.Store)(nil)

// Result describes what a report wrote.
type Result struct {
	RunID   string
	Won     bool
	Saved   bool // a run row was written
	NewBest bool // the user's best time improved
}

// Reporter writes each finished run at most once.
// Report may be called from several goroutines.
type Reporter struct {
	store    RunStore
	username string
	logger   *log.Logger

	mu       sync.Mutex
	reported map[string]struct{}
}

// NewReporter creates a reporter that records runs under username.
func NewReporter(store RunStore, username string, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{
		store:    store,
		username: username,
		logger:   logger,
		reported: make(map[string]struct{}),
	}
}

// Username returns the name runs are recorded under.
func (r *Reporter) Username() string { return r.username }

// claim marks runID as reported and reports whether this caller won the claim.
func (r *Reporter) claim(runID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, done := r.reported[runID]; done {
		return false
	}
	r.reported[runID] = struct{}{}
	return true
}

// Report records a finished run. Won runs also submit a best time.
// Unfinished snapshots and run ids already reported are skipped with a zero Result.
func (r *Reporter) Report(ctx context.Context, snap gamestate.Snapshot) (Result, error) {
	if !snap.Finished() || snap.RunID == "" || !r.claim(snap.RunID) {
		return Result{}, nil
	}

	rec := RunRecord(snap, r.username)
	res := Result{RunID: snap.RunID, Won: rec.Outcome == storage.OutcomeWon}

	saved, err := r.store.SaveRun(ctx, rec)
	if err != nil {
		return res, fmt.Errorf("report run %s: %w", snap.RunID, err)
	}
	res.Saved = saved

	if res.Won {
		best, err := r.store.SubmitBestTime(ctx, snap.Variant, rec.Difficulty, r.username, snap.TimeRemaining)
		if err != nil {
			return res, fmt.Errorf("report best time %s: %w", snap.RunID, err)
		}
		res.NewBest = best
	}

	r.logger.Info("run recorded",
		"run", snap.RunID,
		"variant", snap.Variant,
		"difficulty", rec.Difficulty,
		"user", r.username,
		"outcome", rec.Outcome,
		"reason", rec.Reason,
		"new_best", res.NewBest,
	)
	return res, nil
}

// RunRecord converts a finished snapshot into a storage row.
func RunRecord(snap gamestate.Snapshot, username string) storage.RunRecord {
	outcome := storage.OutcomeLost
	if snap.Phase == gamestate.PhaseWon {
		outcome = storage.OutcomeWon
	}
	difficulty := snap.Difficulty
	if difficulty == "" {
		difficulty = storage.DefaultDifficulty
	}
	return storage.RunRecord{
		RunID:              snap.RunID,
		Variant:            snap.Variant,
		Difficulty:         difficulty,
		Username:           username,
		Outcome:            outcome,
		Reason:             string(snap.Reason),
		TimeRemaining:      snap.TimeRemaining,
		MaterialsCollected: snap.MaterialsCollected,
		TotalMaterials:     snap.TotalMaterials,
		VitalityLeft:       snap.VitalityLevel,
		FinishedAt:         snap.EndedAt,
	}
}
