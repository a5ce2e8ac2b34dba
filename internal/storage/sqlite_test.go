package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SubmitBestTime(ctx, "deadline", "normal", "ana", 42); err != nil {
		t.Fatalf("SubmitBestTime() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestTime(ctx, "deadline", "normal", "ana")
	if err != nil || !ok || best != 42 {
		t.Errorf("BestTime() = %v, %v, %v; want 42, true, nil", best, ok, err)
	}
}

func TestSubmitBestTimeOnlyImproves(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	steps := []struct {
		time    float64
		written bool
		best    float64
	}{
		{100.5, true, 100.5},
		{80, false, 100.5},
		{100.5, false, 100.5},
		{120, true, 120},
	}
	for i, s := range steps {
		written, err := store.SubmitBestTime(ctx, "deadline", "normal", "ana", s.time)
		if err != nil {
			t.Fatalf("step %d: SubmitBestTime() failed: %v", i, err)
		}
		if written != s.written {
			t.Errorf("step %d: written = %v, want %v", i, written, s.written)
		}
		best, _, err := store.BestTime(ctx, "deadline", "normal", "ana")
		if err != nil {
			t.Fatalf("step %d: BestTime() failed: %v", i, err)
		}
		if best != s.best {
			t.Errorf("step %d: best = %v, want %v", i, best, s.best)
		}
	}

	entries, err := store.TopTimes(ctx, "deadline", "normal", 10)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected one row per user, got %d", len(entries))
	}
}

func TestTopTimesOrderingAndVariants(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for user, secs := range map[string]float64{"ana": 30, "ben": 95, "cy": 61} {
		if _, err := store.SubmitBestTime(ctx, "deadline", "normal", user, secs); err != nil {
			t.Fatalf("SubmitBestTime() failed: %v", err)
		}
	}
	if _, err := store.SubmitBestTime(ctx, "deadline_classic", "normal", "ana", 10); err != nil {
		t.Fatalf("SubmitBestTime() failed: %v", err)
	}

	entries, err := store.TopTimes(ctx, "deadline", "normal", 2)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "ben" || entries[1].Username != "cy" {
		t.Errorf("order = %s, %s; want ben, cy", entries[0].Username, entries[1].Username)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt was not parsed")
	}

	classic, err := store.TopTimes(ctx, "deadline_classic", "normal", 0)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].TimeRemaining != 10 {
		t.Errorf("classic entries = %+v", classic)
	}

	if _, ok, _ := store.BestTime(ctx, "deadline", "normal", "nobody"); ok {
		t.Error("BestTime() ok for unknown user")
	}
}

func TestBestTimesKeptPerDifficulty(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// An easy run starts with more time on the clock than a normal one.
	if _, err := store.SubmitBestTime(ctx, "deadline", "easy", "ana", 200); err != nil {
		t.Fatalf("SubmitBestTime(easy) failed: %v", err)
	}
	written, err := store.SubmitBestTime(ctx, "deadline", "normal", "ana", 90)
	if err != nil {
		t.Fatalf("SubmitBestTime(normal) failed: %v", err)
	}
	if !written {
		t.Error("a normal win was rejected because of an easy best")
	}

	for _, tc := range []struct {
		difficulty string
		want       float64
	}{
		{"easy", 200},
		{"normal", 90},
	} {
		best, ok, err := store.BestTime(ctx, "deadline", tc.difficulty, "ana")
		if err != nil || !ok || best != tc.want {
			t.Errorf("BestTime(%s) = %v, %v, %v; want %v", tc.difficulty, best, ok, err, tc.want)
		}
		entries, err := store.TopTimes(ctx, "deadline", tc.difficulty, 10)
		if err != nil {
			t.Fatalf("TopTimes(%s) failed: %v", tc.difficulty, err)
		}
		if len(entries) != 1 || entries[0].TimeRemaining != tc.want || entries[0].Difficulty != tc.difficulty {
			t.Errorf("TopTimes(%s) = %+v", tc.difficulty, entries)
		}
	}

	if _, ok, _ := store.BestTime(ctx, "deadline", "hard", "ana"); ok {
		t.Error("BestTime(hard) ok without a hard win")
	}
}

func TestOpenUpgradesLeaderboardWithoutDifficulty(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			username TEXT NOT NULL,
			time_remaining REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(variant, username)
		);
		CREATE INDEX idx_leaderboard_top ON leaderboard(variant, time_remaining DESC);
		CREATE TABLE runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			username TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			time_remaining REAL NOT NULL DEFAULT 0,
			materials_collected INTEGER NOT NULL DEFAULT 0,
			total_materials INTEGER NOT NULL DEFAULT 0,
			vitality_left INTEGER NOT NULL DEFAULT 0,
			finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO leaderboard (variant, username, time_remaining) VALUES ('deadline', 'ana', 77);
		INSERT INTO runs (run_id, variant, username, outcome) VALUES ('old', 'deadline', 'ana', 'won');
	`)
	if err != nil {
		t.Fatalf("seeding old schema failed: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestTime(ctx, "deadline", "normal", "ana")
	if err != nil || !ok || best != 77 {
		t.Errorf("BestTime() = %v, %v, %v; want 77 kept as normal", best, ok, err)
	}
	if _, err := store.SubmitBestTime(ctx, "deadline", "easy", "ana", 150); err != nil {
		t.Fatalf("SubmitBestTime(easy) failed: %v", err)
	}
	if best, _, _ := store.BestTime(ctx, "deadline", "normal", "ana"); best != 77 {
		t.Errorf("normal best = %v after an easy win, want 77", best)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil || len(runs) != 1 || runs[0].Difficulty != "normal" {
		t.Errorf("RecentRuns() = %+v, %v", runs, err)
	}
}

func TestSaveRunAndRecentRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	runs := []RunRecord{
		{RunID: "r1", Variant: "deadline", Username: "ana", Outcome: OutcomeLost, Reason: "time_up", TotalMaterials: 5, FinishedAt: base},
		{RunID: "r2", Variant: "deadline", Username: "ana", Outcome: OutcomeWon, TimeRemaining: 40, MaterialsCollected: 5, TotalMaterials: 5, VitalityLeft: 3, FinishedAt: base.Add(time.Minute)},
		{RunID: "r3", Variant: "deadline_classic", Username: "ben", Outcome: OutcomeLost, Reason: "depleted", MaterialsCollected: 2, TotalMaterials: 5, VitalityLeft: 100, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		saved, err := store.SaveRun(ctx, r)
		if err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.RunID, err)
		}
		if !saved {
			t.Errorf("SaveRun(%s) reported not saved", r.RunID)
		}
	}

	saved, err := store.SaveRun(ctx, runs[0])
	if err != nil {
		t.Fatalf("duplicate SaveRun() failed: %v", err)
	}
	if saved {
		t.Error("duplicate run id was saved twice")
	}

	recent, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(recent))
	}
	if recent[0].RunID != "r3" || recent[2].RunID != "r1" {
		t.Errorf("runs not newest first: %s ... %s", recent[0].RunID, recent[2].RunID)
	}
	if !recent[0].FinishedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("FinishedAt = %v, want %v", recent[0].FinishedAt, base.Add(2*time.Minute))
	}
	if recent[1].VitalityLeft != 3 || recent[1].TimeRemaining != 40 {
		t.Errorf("run r2 fields = %+v", recent[1])
	}
}

func TestVariantStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i, r := range []RunRecord{
		{Outcome: OutcomeWon, TimeRemaining: 40},
		{Outcome: OutcomeWon, TimeRemaining: 20},
		{Outcome: OutcomeLost, Reason: "room_closed"},
		{Outcome: OutcomeLost, Reason: "abandoned"},
	} {
		r.RunID = string(rune('a' + i))
		r.Variant = "deadline"
		r.Username = "ana"
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	hard := RunRecord{RunID: "h", Variant: "deadline", Difficulty: "hard", Username: "ana", Outcome: OutcomeWon, TimeRemaining: 90}
	if _, err := store.SaveRun(ctx, hard); err != nil {
		t.Fatalf("SaveRun(hard) failed: %v", err)
	}

	stats, err := store.VariantStats(ctx, "deadline", "normal")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 2 {
		t.Errorf("runs/wins = %d/%d, want 4/2", stats.Runs, stats.Wins)
	}
	if stats.BestTime != 40 || stats.AvgOnWin != 30 {
		t.Errorf("best/avg = %v/%v, want 40/30", stats.BestTime, stats.AvgOnWin)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, want 0.5", stats.WinRate())
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not parsed")
	}

	empty, err := store.VariantStats(ctx, "deadline_classic", "normal")
	if err != nil {
		t.Fatalf("VariantStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.WinRate() != 0 {
		t.Errorf("unplayed variant stats = %+v", empty)
	}

	all, err := store.AllVariantStats(ctx)
	if err != nil {
		t.Fatalf("AllVariantStats() failed: %v", err)
	}
	if len(all) != 2 || all[0].Difficulty != "hard" || all[0].Runs != 1 || all[1].Difficulty != "normal" {
		t.Errorf("AllVariantStats() = %+v", all)
	}
}

func TestClearScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SubmitBestTime(ctx, "deadline", "normal", "ana", 50)
	store.SubmitBestTime(ctx, "deadline_classic", "normal", "ana", 20)
	store.SaveRun(ctx, RunRecord{RunID: "x", Variant: "deadline", Username: "ana", Outcome: OutcomeWon})

	if err := store.ClearScores(ctx, "deadline"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if entries, _ := store.TopTimes(ctx, "deadline", "normal", 10); len(entries) != 0 {
		t.Errorf("expected empty leaderboard, got %d", len(entries))
	}
	if runs, _ := store.RecentRuns(ctx, 10); len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
	if entries, _ := store.TopTimes(ctx, "deadline_classic", "normal", 10); len(entries) != 1 {
		t.Errorf("other variant was cleared")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := parseTime("2025-01-02 03:04:05"); !got.Equal(want) {
		t.Errorf("parseTime(string) = %v", got)
	}
	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v", got)
	}
}
