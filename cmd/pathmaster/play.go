package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/config"
	"github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster"
	pmcore "github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/platform/tui"
	"github.com/vovakirdan/pathmaster/internal/registry"
)

var (
	flagSize       int
	flagLoad       string
	flagPathColor  string
	flagBoardColor string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing PathMaster on a fresh board, or continue a saved game.

Controls:
  Arrows/WASD/HJKL  - Move to the neighboring field
  Mouse click       - Move to the clicked field
  Enter/Esc         - Close a message
  P                 - Pause
  R                 - Restart the same board
  N                 - New random board
  G                 - Cycle board size
  C / V             - Cycle path / board color
  Ctrl+S            - Save the game
  Ctrl+O            - Load the latest save
  Q/Ctrl+C          - Quit

Examples:
  pathmaster play
  pathmaster play --size 7
  pathmaster play --seed 42 --path-color pink --board-color sage
  pathmaster play --load ./my-run.game`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (0 = configured default)")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Continue a saved game from this file")
	playCmd.Flags().StringVar(&flagPathColor, "path-color", "", "Initial path color from the palette")
	playCmd.Flags().StringVar(&flagBoardColor, "board-color", "", "Initial board color from the palette")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagSize != 0 && flagSize < pmcore.MinGridSize {
		err := pmcore.ConfigError{Reason: pmcore.ErrInvalidGridSize, Detail: fmt.Sprintf("--size %d", flagSize)}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var load []byte
	if flagLoad != "" {
		data, err := readSave(flagLoad)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		load = data
	}

	pathmaster.SetStartSize(flagSize)
	pathmaster.SetStartColors(flagPathColor, flagBoardColor)

	if err := playGame(runtimeConfig(), load); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// readSave reads a save file and checks that it loads before the UI starts.
func readSave(path string) ([]byte, error) {
	path = config.ExpandPath(path)
	save, err := savefile.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}
	logger.Debug("save checked", "path", path, "id", save.ID)
	return savefile.Encode(save)
}

// playGame runs one game in the terminal.
func playGame(cfg core.RuntimeConfig, load []byte) error {
	game, err := registry.Create(pathmaster.GameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, cfg, tui.Options{
		Store:  store,
		Saves:  saveStore(),
		Load:   load,
		Logger: tuiLogger(),
	})
}
