// deadline is a terminal study game: dodge distractions, finish your tasks
// and get out of the dorm room before the deadline.
//
// Usage:
//
//	deadline list               - List available variants
//	deadline play [variant]     - Play a variant (default: deadline)
//	deadline menu               - Pick a variant and browse best times
//	deadline serve              - Start the SSH server for remote play
//	deadline scores [variant]   - Show the best times
//	deadline runs               - Show recent runs and per-variant stats
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Database path (default: ~/.deadline/deadline.db)
//	--name <name>       - Leaderboard name (default: $USER)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Log destination for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the deadline variants.
	_ "github.com/vovakirdan/deadline/internal/games/deadline"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagName     string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Deadline - finish studying before the room closes in",
	Long: `Deadline is a terminal game set in a dorm room. Distractions chase you
while the clock runs down and the walls close in. Finish every study task
(or collect every material in the classic variant) and reach the door.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker with best times
  serve    - Start SSH server for remote play
  scores   - View best times
  runs     - View recent runs and stats

Examples:
  deadline play
  deadline play deadline_classic --difficulty hard
  deadline menu --name ana
  deadline serve --ssh :2222
  deadline scores deadline`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.deadline/deadline.db", "Path to the leaderboard database")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", defaultName(), "Name recorded on the leaderboard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.deadline/deadline.log", "Log file (serve logs to stderr unless set)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
}

func defaultName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
