package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/games/pathmaster"
	"github.com/vovakirdan/pathmaster/internal/registry"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

var (
	flagScoresLimit int
	flagRunsLimit   int
	flagClear       bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and run history",
	Long: `Display the top scores, the best run per board size and the most
recent runs. The game defaults to pathmaster; see 'pathmaster list'.

Examples:
  pathmaster scores
  pathmaster scores --limit 20 --runs 5
  pathmaster scores --all
  pathmaster scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of top scores to show")
	scoresCmd.Flags().IntVar(&flagRunsLimit, "runs", 10, "Number of recent runs to show (0 = none)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every recorded score instead of the top ones")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := pathmaster.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (see 'pathmaster list')", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "db", flagDBPath)
		fmt.Println("All scores and runs deleted.")
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - PathMaster")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pathmaster play' and reach End to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		if stats.RunsCount > 0 {
			fmt.Printf("Runs: %d  |  Wins: %d  |  Fastest win: %ds\n", stats.RunsCount, stats.WinsCount, stats.BestElapsed)
		}
	} else {
		logger.Warn("could not load stats", "error", err)
	}

	printBestRuns(store, gameID)
	printRecentRuns(store, gameID)
	return nil
}

// printBestRuns prints the best won run for each configured board size.
func printBestRuns(store *storage.Store, gameID string) {
	var best []*storage.Run
	for _, size := range appConfig.Grid.Sizes {
		run, err := store.BestRun(gameID, size)
		if err != nil {
			logger.Warn("could not load best run", "size", size, "error", err)
			continue
		}
		if run != nil {
			best = append(best, run)
		}
	}
	if len(best) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Best run per board:")
	fmt.Printf("  %-6s  %-6s  %-6s  %-6s  %s\n", "Board", "Score", "Steps", "Time", "Date")
	for _, r := range best {
		fmt.Printf("  %-6s  %-6d  %-6d  %-6s  %s\n",
			fmt.Sprintf("%dx%d", r.GridSize, r.GridSize), r.Score, r.Steps,
			fmt.Sprintf("%ds", r.ElapsedSecs), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printRecentRuns prints the latest runs, newest first.
func printRecentRuns(store *storage.Store, gameID string) {
	if flagRunsLimit <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		logger.Warn("could not load runs", "error", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-6s  %-6s  %-6s  %-6s  %-6s  %s\n", "Board", "Steps", "Sum", "Score", "Time", "Date")
	for _, r := range runs {
		fmt.Printf("  %-6s  %-6d  %-6d  %-6d  %-6s  %s\n",
			fmt.Sprintf("%dx%d", r.GridSize, r.GridSize), r.Steps, r.Sum, r.Score,
			fmt.Sprintf("%ds", r.ElapsedSecs), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
