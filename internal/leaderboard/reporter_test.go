package leaderboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/deadline/internal/gamestate"
	"github.com/vovakirdan/deadline/internal/leaderboard"
	"github.com/vovakirdan/deadline/internal/leaderboard/mocks"
	"github.com/vovakirdan/deadline/internal/storage"
)

var epoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func finishedRun(t *testing.T, won bool) gamestate.Snapshot {
	t.Helper()
	return finishedRunWith(t, gamestate.HeartsRules(), won)
}

func finishedRunWith(t *testing.T, rules gamestate.Rules, won bool) gamestate.Snapshot {
	t.Helper()
	clock := gamestate.NewFakeClock(epoch)
	s := gamestate.New(rules, gamestate.WithClock(clock))
	s.StartGame()
	s.UpdateTime(30)
	if won {
		for _, def := range gamestate.DefaultTasks() {
			s.StartTask(def.ID)
			s.CompleteTask(def.ID)
		}
	}
	clock.Advance(time.Minute)
	s.EndGame(won)
	return s.Snapshot()
}

func TestReportWonRunSavesRunAndBestTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)
	snap := finishedRun(t, true)

	store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r storage.RunRecord) (bool, error) {
			if r.RunID != snap.RunID || r.Outcome != storage.OutcomeWon || r.Username != "ana" || r.Difficulty != "normal" {
				t.Errorf("unexpected record %+v", r)
			}
			if r.MaterialsCollected != 5 || r.TotalMaterials != 5 || r.VitalityLeft != 5 {
				t.Errorf("unexpected progress in %+v", r)
			}
			if !r.FinishedAt.Equal(epoch.Add(time.Minute)) {
				t.Errorf("FinishedAt = %v", r.FinishedAt)
			}
			return true, nil
		})
	store.EXPECT().SubmitBestTime(gomock.Any(), "deadline", "normal", "ana", 150.0).Return(true, nil)

	rep := leaderboard.NewReporter(store, "ana", nil)
	res, err := rep.Report(context.Background(), snap)
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if !res.Won || !res.Saved || !res.NewBest {
		t.Errorf("Report() = %+v", res)
	}
}

func TestReportKeepsDifficulty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)
	rules := gamestate.HeartsRules()
	rules.Difficulty = "hard"
	snap := finishedRunWith(t, rules, true)

	store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r storage.RunRecord) (bool, error) {
			if r.Difficulty != "hard" {
				t.Errorf("Difficulty = %q, want hard", r.Difficulty)
			}
			return true, nil
		})
	store.EXPECT().SubmitBestTime(gomock.Any(), "deadline", "hard", "ana", 150.0).Return(true, nil)

	rep := leaderboard.NewReporter(store, "ana", nil)
	if _, err := rep.Report(context.Background(), snap); err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
}

func TestReportLostRunSkipsBestTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)
	snap := finishedRun(t, false)

	store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r storage.RunRecord) (bool, error) {
			if r.Outcome != storage.OutcomeLost || r.Reason != "abandoned" {
				t.Errorf("unexpected record %+v", r)
			}
			return true, nil
		})

	rep := leaderboard.NewReporter(store, "ana", nil)
	res, err := rep.Report(context.Background(), snap)
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if res.Won || !res.Saved || res.NewBest {
		t.Errorf("Report() = %+v", res)
	}
}

func TestReportOncePerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)
	snap := finishedRun(t, true)

	store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	store.EXPECT().SubmitBestTime(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(1)

	rep := leaderboard.NewReporter(store, "ana", nil)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := rep.Report(context.Background(), snap); err != nil {
				t.Errorf("Report() failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestReportIgnoresUnfinishedRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)

	s := gamestate.New(gamestate.HeartsRules(), gamestate.WithClock(gamestate.NewFakeClock(epoch)))
	rep := leaderboard.NewReporter(store, "ana", nil)

	// Menu snapshot: no run id.
	if res, err := rep.Report(context.Background(), s.Snapshot()); err != nil || res.RunID != "" {
		t.Errorf("Report(menu) = %+v, %v", res, err)
	}

	s.StartGame()
	if res, err := rep.Report(context.Background(), s.Snapshot()); err != nil || res.RunID != "" {
		t.Errorf("Report(playing) = %+v, %v", res, err)
	}
}

func TestReportPropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRunStore(ctrl)
	snap := finishedRun(t, true)
	boom := errors.New("disk full")

	store.EXPECT().SaveRun(gomock.Any(), gomock.Any()).Return(false, boom)

	rep := leaderboard.NewReporter(store, "ana", nil)
	_, err := rep.Report(context.Background(), snap)
	if !errors.Is(err, boom) {
		t.Errorf("Report() error = %v, want %v", err, boom)
	}

	// The run was claimed, so a retry does not write twice.
	if res, err := rep.Report(context.Background(), snap); err != nil || res.Saved {
		t.Errorf("retry = %+v, %v", res, err)
	}
}

func TestReporterWithRealStore(t *testing.T) {
	db, err := storage.Open(t.TempDir() + "/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rep := leaderboard.NewReporter(db, "ana", nil)
	if _, err := rep.Report(ctx, finishedRun(t, true)); err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if _, err := rep.Report(ctx, finishedRun(t, false)); err != nil {
		t.Fatalf("Report() failed: %v", err)
	}

	best, ok, err := db.BestTime(ctx, "deadline", "normal", "ana")
	if err != nil || !ok || best != 150 {
		t.Errorf("BestTime() = %v, %v, %v", best, ok, err)
	}
	runs, err := db.RecentRuns(ctx, 10)
	if err != nil || len(runs) != 2 {
		t.Errorf("RecentRuns() = %d runs, %v", len(runs), err)
	}
}
