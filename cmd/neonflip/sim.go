package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonflip/internal/games/neonflip"
	"github.com/vovakirdan/neonflip/internal/session"
	"github.com/vovakirdan/neonflip/internal/storage"
)

// maxSimTicks bounds a run when --ticks is 0, about 4.6 hours of play at 60 Hz.
const maxSimTicks = 1_000_000

var (
	flagSimTicks    int
	flagFlipMargin  float32
	flagWorldWidth  float32
	flagWorldHeight float32
	flagRealtime    bool
	flagSave        bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game with an autopilot",
	Long: `Run the simulation without a terminal UI. An autopilot flips gravity
to follow the next gap; the run ends at game over or after --ticks ticks.

By default ticks run back to back. With --realtime the session controller
drives ticks from its own timer at --fps.

Examples:
  neonflip sim
  neonflip sim --seed 7 --ticks 10000
  neonflip sim --realtime --fps 120
  neonflip sim --flip-margin 40 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 0, "Stop after this many ticks (0 = until game over, at most 1000000)")
	simCmd.Flags().Float32Var(&flagFlipMargin, "flip-margin", 20, "Autopilot dead zone around the gap center")
	simCmd.Flags().Float32Var(&flagWorldWidth, "width", 400, "World width in units")
	simCmd.Flags().Float32Var(&flagWorldHeight, "height", 800, "World height in units")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick on a timer instead of back to back")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the final score in the local database")
}

func runSim(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := neonflip.NewEngine(cfg, flagWorldWidth, flagWorldHeight, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := session.Options{TickRate: cfg.Timing.TickRate, Logger: logger}
	if flagSave {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", openErr)
			os.Exit(1)
		}
		defer store.Close()

		opts.ID = fmt.Sprintf("sim-%d", seed)
		opts.Submitter = store.Recorder(opts.ID, "autopilot")
	}

	ctrl := session.New(engine, opts)
	pilot := session.Autopilot{Gap: cfg.Obstacles.Gap, Margin: flagFlipMargin}

	var final neonflip.GameUpdate
	if flagRealtime {
		final = simRealtime(cmd.Context(), ctrl, pilot, tickLimit(flagSimTicks))
	} else {
		final = simFast(ctrl, pilot, tickLimit(flagSimTicks))
	}

	// Wait for the score to be recorded
	ctrl.Close()

	fmt.Printf("seed=%d ticks=%d score=%d state=%s\n", seed, final.Tick, final.Score, final.State)
	if sub, ok := ctrl.LastSubmission(); ok {
		if sub.Err != nil {
			fmt.Fprintf(os.Stderr, "Score not saved: %v\n", sub.Err)
		} else if sub.Result.NewHighScore {
			fmt.Println("New high score!")
		}
	}
}

// simFast steps the controller back to back.
func simFast(ctrl *session.Controller, pilot session.Autopilot, limit int) neonflip.GameUpdate {
	ctrl.Start()
	_, worldH := ctrl.World()

	u := ctrl.Snapshot()
	for !u.IsGameOver && u.Tick < limit {
		if pilot.ShouldFlip(u, worldH) {
			ctrl.Flip()
		}
		u = ctrl.Step()
	}
	return u
}

// simRealtime lets the controller tick itself and steers from its snapshot feed.
func simRealtime(parent context.Context, ctrl *session.Controller, pilot session.Autopilot, limit int) neonflip.GameUpdate {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	updates := ctrl.Subscribe(16)
	defer ctrl.Unsubscribe(updates)

	ctrl.Start()
	_, worldH := ctrl.World()

	go func() {
		// Frames can be dropped, so game over is also polled
		poll := time.NewTicker(100 * time.Millisecond)
		defer poll.Stop()

		for {
			select {
			case u, ok := <-updates:
				if !ok || u.IsGameOver || u.Tick >= limit {
					cancel()
					return
				}
				if pilot.ShouldFlip(u, worldH) {
					ctrl.Flip()
				}
			case <-poll.C:
				if ctrl.IsGameOver() {
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	//nolint:errcheck // Run only returns the context error
	ctrl.Run(ctx)
	return ctrl.Snapshot()
}

// tickLimit is the number of ticks a run may take for the --ticks value.
func tickLimit(ticks int) int {
	if ticks <= 0 || ticks > maxSimTicks {
		return maxSimTicks
	}
	return ticks
}
