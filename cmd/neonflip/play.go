package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neonflip/internal/core"
	"github.com/vovakirdan/neonflip/internal/platform/tui"
	"github.com/vovakirdan/neonflip/internal/scores"
	"github.com/vovakirdan/neonflip/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start Neon Flip in the terminal.

Controls:
  Space/Up/W   - Flip gravity (starts the game from the title screen)
  P/Esc        - Pause / resume
  R/Enter      - Restart after game over
  B            - Back to menu
  Q/Ctrl+C     - Quit

Final scores are saved to the local database, and submitted to the score
API when NEONFLIP_API_URL and NEONFLIP_API_TOKEN are set.

Examples:
  neonflip play
  neonflip play --seed 42
  neonflip play --config ./my-neonflip.yaml --log-file neonflip.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Logs would corrupt the game screen; keep them only with --log-file
	logger, logCloser, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	rt := core.DefaultConfig()
	rt.TickRate = cfg.Timing.TickRate
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	remote, rc, err := remoteClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring score API settings: %v\n", err)
		remote = nil
	}

	username := os.Getenv("USER")
	if remote != nil {
		name, tokErr := remote.Username()
		switch {
		case tokErr == nil && name != "":
			username = name
		case errors.Is(tokErr, scores.ErrNoToken):
			// Leaderboard still works without a token
			fmt.Fprintln(os.Stderr, "Warning: NEONFLIP_API_TOKEN not set, scores will not be submitted")
		case tokErr != nil:
			fmt.Fprintf(os.Stderr, "Warning: score API token unusable, scores will not be submitted: %v\n", tokErr)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Deps{
		Config:        cfg,
		Runtime:       rt,
		Store:         store,
		Remote:        remote,
		Username:      username,
		SubmitTimeout: rc.Timeout,
		Logger:        logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
