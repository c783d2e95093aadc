package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/config"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster"
	pmcore "github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `List the games saved with Ctrl+S, newest first.

The save directory comes from the config file (saves.dir).

Examples:
  pathmaster saves
  pathmaster play --load <file>`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a saved game",
	Long: `Print the board and statistics stored in a save file.

Visited fields are shown in parentheses, the current field in brackets.

Examples:
  pathmaster show ~/.pathmaster/saves/20240501-120000-<id>.game`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runSaves(_ *cobra.Command, _ []string) {
	store := saveStore()
	saves, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 {
		fmt.Printf("No saved games in %s.\n", store.Dir)
		fmt.Println()
		fmt.Println("Press Ctrl+S during a game to save it.")
		return
	}

	fmt.Printf("Saved games in %s:\n", store.Dir)
	fmt.Println()
	fmt.Printf("  %-16s  %-5s  %-5s  %-5s  %-8s  %s\n", "Saved", "Board", "Steps", "Score", "Status", "File")
	for _, s := range saves {
		st, err := pmcore.FromSnapshot(s.Snapshot)
		if err != nil {
			logger.Warn("skipping save", "path", s.Path, "error", err)
			continue
		}
		size := st.Grid().Size
		fmt.Printf("  %-16s  %-5s  %-5d  %-5d  %-8s  %s\n",
			s.SavedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", size, size),
			st.Steps(), st.CalculateScore(), st.Status(), filepath.Base(s.Path))
	}
}

func runShow(_ *cobra.Command, args []string) {
	path := config.ExpandPath(args[0])
	save, err := savefile.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := pmcore.FromSnapshot(save.Snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Save %s (%s)\n\n", save.ID, save.SavedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Print(pathmaster.FormatBoard(st))
	if st.IsFinished() {
		fmt.Println(pmcore.WinMessage(st.CalculateScore()))
	}
}
