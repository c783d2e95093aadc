package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/platform/tui"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a menu",
	Long: `Start PathMaster in interactive menu mode.

Pick a board size, start a new game, continue the latest save or browse
the scoreboard. After a game you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change board size
  Enter/Space     - Select
  Tab             - Scoreboard
  Q               - Quit

Examples:
  pathmaster menu
  pathmaster menu --fps 30
  pathmaster menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	saves := saveStore()
	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(menuConfig(), store, saves, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = result.Config

		if result.Quit {
			break
		}

		if result.Choice == tui.MenuScores {
			goBack, sbErr := tui.RunScoreboard(store, menuConfig(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if err := playFromMenu(result, store, saves, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}

// playFromMenu starts the game the menu asked for.
func playFromMenu(result tui.MenuResult, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig) error {
	var load []byte
	if result.Choice == tui.MenuContinue && result.Save != nil {
		data, err := savefile.Encode(*result.Save)
		if err != nil {
			return err
		}
		load = data
	}

	game := pathmaster.New()
	game.SetBoardSize(result.Size)

	// Fresh board for each game
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return tui.Run(game, cfg, tui.Options{
		Store:  store,
		Saves:  saves,
		Load:   load,
		Logger: tuiLogger(),
	})
}
