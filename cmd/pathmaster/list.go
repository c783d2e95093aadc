package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/registry"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows a list of all games registered on the platform, with the number
of recorded games and the best score from the scores database.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	stats := map[string]*storage.GameStats{}
	if store := openStore(); store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		} else {
			logger.Warn("could not load stats", "error", err)
		}
		store.Close()
	}

	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", maxIDLen, "ID", "Title", "Games", "Best")
	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", maxIDLen, "--", "-----", "-----", "----")

	for _, g := range games {
		played, best := 0, 0
		if st, ok := stats[g.ID]; ok {
			played, best = st.GamesCount, st.HighScore
		}
		fmt.Printf("  %-*s  %-12s  %-6d  %d\n", maxIDLen, g.ID, g.Title, played, best)
	}

	fmt.Println()
	fmt.Println("Run 'pathmaster play' to play.")
}
