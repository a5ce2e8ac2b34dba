package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline/internal/config"
	"github.com/vovakirdan/deadline/internal/platform/tui"
	"github.com/vovakirdan/deadline/internal/registry"
)

var (
	flagSSHAddr         string
	flagHostKey         string
	flagIdleTimeout     time.Duration
	flagServeConfig     string
	flagServeDifficulty string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deadline SSH server",
	Long: `Start an SSH server so players can connect and play remotely.

Each connection gets its own menu and its own game state. The SSH user
name is the name recorded on the shared leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, generates a key at ~/.deadline/host_key

Examples:
  deadline serve                           # Listen on :23234
  deadline serve --ssh :2222               # Listen on port 2222
  deadline serve --host-key ./my_host_key  # Use a specific host key
  deadline serve --db ./deadline.db        # Use a specific database

Players connect with:
  ssh <name>@localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Disconnect sessions idle for this long")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to a custom variant config YAML for every session")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Initial difficulty preset: easy, normal, hard")
}

func runServe(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagServeDifficulty)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Game: registry.Options{
			ConfigPath: flagServeConfig,
			Difficulty: preset,
		},
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting deadline SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe(cmd.Context())
}
