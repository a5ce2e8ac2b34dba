package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/registry"
	"github.com/vovakirdan/deadline/internal/storage"
)

const topTimes = 10

var flagScoresDifficulty string

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show best times",
	Long: `Display the top 10 best times (time left on the clock when the player
escaped) for one variant, or for every variant when none is given.
Each difficulty keeps its own board; --difficulty picks which one.

Examples:
  deadline scores
  deadline scores deadline_classic
  deadline scores --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Difficulty board to show: easy, normal, hard")
}

func runScores(cmd *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagScoresDifficulty)
	if err != nil {
		return err
	}

	variants := registry.List()
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown variant %q (run 'deadline list' to see them)", args[0])
		}
		variants = []registry.GameInfo{{ID: args[0]}}
		for _, v := range registry.List() {
			if v.ID == args[0] {
				variants[0].Title = v.Title
			}
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for i, v := range variants {
		if i > 0 {
			fmt.Println()
		}
		entries, err := store.TopTimes(cmd.Context(), v.ID, string(preset), topTimes)
		if err != nil {
			return err
		}
		printTimes(v, preset, entries)
	}
	return nil
}

func printTimes(v registry.GameInfo, preset config.DifficultyPreset, entries []storage.LeaderboardEntry) {
	fmt.Printf("Best Times - %s (%s)\n", v.Title, preset)
	fmt.Println()
	if len(entries) == 0 {
		fmt.Println("No winning runs yet.")
		fmt.Printf("Play 'deadline play %s --difficulty %s' to set the first best time!\n", v.ID, preset)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "Rank", "Player", "Time Left", "Date")
	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "----", "------", "---------", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-9s  %s\n", i+1, e.Username, clock(e.TimeRemaining), e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func clock(seconds float64) string {
	s := max(int(seconds), 0)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
