package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/platform/tui"
	"github.com/vovakirdan/deadline/internal/registry"
)

var flagMenuDifficulty string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant interactively",
	Long: `Open the variant picker. From the menu you can choose a difficulty with
Left/Right, start a run with Enter and open the best times with Tab.
Going back from a game returns to the menu.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuDifficulty, "difficulty", "", "Initial difficulty preset: easy, normal, hard")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagMenuDifficulty)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(tui.Session{
		Store:    store,
		Username: flagName,
		Options: registry.Options{
			Difficulty: preset,
			Logger:     logger,
		},
		Runtime: runtimeConfig(),
	})
}
