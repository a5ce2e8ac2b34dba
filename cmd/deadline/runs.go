package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent runs and per-variant stats",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of recent runs to show")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	stats, err := store.AllVariantStats(ctx)
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(ctx, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Stats")
	fmt.Println()
	fmt.Printf("  %-18s  %-10s  %5s  %5s  %6s  %9s  %s\n", "Variant", "Difficulty", "Runs", "Wins", "Win %", "Best", "Last played")
	for _, s := range stats {
		fmt.Printf("  %-18s  %-10s  %5d  %5d  %5.0f%%  %9s  %s\n",
			s.Variant, s.Difficulty, s.Runs, s.Wins, s.WinRate()*100, clock(s.BestTime), s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-18s  %-10s  %-12s  %-9s  %-9s  %s\n", "Finished", "Variant", "Difficulty", "Player", "Outcome", "Time Left", "Progress")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-18s  %-10s  %-12s  %-9s  %-9s  %d/%d\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"), r.Variant, r.Difficulty, r.Username, outcome(r), clock(r.TimeRemaining),
			r.MaterialsCollected, r.TotalMaterials)
	}
	return nil
}

func outcome(r storage.RunRecord) string {
	if r.Outcome == storage.OutcomeWon || r.Reason == "" {
		return r.Outcome
	}
	return r.Reason
}
