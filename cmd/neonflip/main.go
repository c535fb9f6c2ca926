// neonflip is a gravity-flip side-scroller for the terminal.
//
// Usage:
//
//	neonflip play            - Play in the terminal
//	neonflip sim             - Run a headless game with an autopilot
//	neonflip scores          - Show the local or global leaderboard
//	neonflip serve           - Start SSH server for remote play
//	neonflip config          - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.neonflip/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonflip/internal/config"
	"github.com/vovakirdan/neonflip/internal/scores"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonflip",
	Short: "Neon Flip - flip gravity, dodge the walls",
	Long: `Neon Flip is a terminal side-scroller. Your square falls toward the
floor or the ceiling; every flip reverses gravity. Slip through the gaps
between the walls to score.

Available commands:
  play     - Play in your terminal
  sim      - Run a headless game driven by an autopilot
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Environment (also read from .env):
  NEONFLIP_API_URL       Score API base URL
  NEONFLIP_API_TOKEN     Bearer token for score submission
  NEONFLIP_API_TIMEOUT   Request timeout (e.g. 5s)

Examples:
  neonflip play
  neonflip play --seed 42
  neonflip sim --ticks 5000
  neonflip scores --remote
  neonflip serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadEnv(".env")
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = timing.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonflip/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns a logger writing to --log-file, or to fallback when no
// file is given. The returned closer releases the file.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	w := fallback
	var closer io.Closer = nopCloser{}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "neonflip",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return logger, closer, nil
}

// loadGameConfig loads the game config and applies the --fps override.
func loadGameConfig() (config.NeonFlipConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	return cfg, nil
}

// remoteClient returns the score API client configured by the environment,
// or nil when no API URL is set.
func remoteClient() (*scores.Client, config.RemoteConfig, error) {
	rc, err := config.RemoteFromEnv()
	if err != nil {
		return nil, rc, err
	}
	if !rc.Enabled() {
		return nil, rc, nil
	}
	return scores.NewClient(rc.BaseURL, rc.Token, rc.Timeout), rc, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
