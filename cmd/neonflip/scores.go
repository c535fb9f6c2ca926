package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonflip/internal/storage"
)

var (
	flagRemote bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top local scores, or the global leaderboard from the
score API with --remote.

Examples:
  neonflip scores
  neonflip scores --limit 25
  neonflip scores --remote
  neonflip scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRemote, "remote", false, "Show the global leaderboard from the score API")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of local scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all local scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	if flagRemote {
		runRemoteScores(cmd.Context())
		return
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("Local scores cleared.")
		return
	}

	entries, err := store.TopScores(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Neon Flip")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neonflip play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "------", "----")
	for i, entry := range entries {
		player := entry.Username
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-16s  %s\n", i+1, entry.Score, player, dateStr)
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func runRemoteScores(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, _, err := remoteClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if client == nil {
		fmt.Fprintln(os.Stderr, "Error: NEONFLIP_API_URL is not set")
		os.Exit(1)
	}

	entries, err := client.Leaderboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching leaderboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Global Leaderboard - Neon Flip")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Nobody has submitted a score yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for _, e := range entries {
		fmt.Printf("  %-4d  %-16s  %d\n", e.Rank, e.Username, e.HighScore)
	}
}
