package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/core"
	"github.com/vovakirdan/deadline/internal/leaderboard"
	"github.com/vovakirdan/deadline/internal/platform/tui"
	"github.com/vovakirdan/deadline/internal/registry"
	"github.com/vovakirdan/deadline/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: deadline).

Controls:
  WASD/Arrows  - Move
  Space        - Jump
  E            - Use a task station
  Enter        - Start / submit an answer
  Esc          - Leave a task
  R            - Restart after the run ends
  B            - Give up and go back
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty presets:
  easy   - 25% more time, slower distractions, more hearts / less stress per hit
  normal - values from the config file
  hard   - 25% less time, faster distractions, fewer hearts / more stress per hit

Examples:
  deadline play
  deadline play deadline_classic
  deadline play --difficulty hard
  deadline play --config ./my-room.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom variant config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant := config.VariantDeadline
	if len(args) == 1 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q (run 'deadline list' to see them)", variant)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(variant, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: preset,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	var reporter *leaderboard.Reporter
	if store != nil {
		reporter = leaderboard.NewReporter(store, flagName, logger)
	}

	return tui.Run(game, runtimeConfig(), reporter, logger)
}

// runtimeConfig sizes the screen to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the leaderboard database. The game still runs without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open leaderboard database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard database: %v\n", err)
		return nil
	}
	return store
}
