// pathmaster is a terminal puzzle game: walk a numbered grid from Start to
// End without stepping on a field twice, keeping the average field value high.
//
// Usage:
//
//	pathmaster play            - Play a game
//	pathmaster menu            - Start menu with saves and scores
//	pathmaster list            - List available games
//	pathmaster scores          - Show high scores and run history
//	pathmaster saves           - List saved games
//	pathmaster show <file>     - Print a saved game
//	pathmaster generate        - Print a random board
//	pathmaster config          - Print the default configuration
//	pathmaster serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.pathmaster/scores.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn, error (default: warn)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pathmaster/internal/config"
	"github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/platform/tui"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// Set up by the root command before any subcommand runs.
var (
	appConfig config.PathMasterConfig
	logger    *log.Logger
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathmaster",
	Short: "PathMaster - walk the grid from Start to End",
	Long: `PathMaster is a terminal puzzle game played on a square grid of numbers.

Walk from Start to End one adjacent field at a time, never stepping on a
field twice. Every numbered field adds its value; your score is the sum
divided by the number of steps, so the best path is not the shortest one.

Available commands:
  play      - Play a game directly
  menu      - Start menu with saves and scores
  list      - Show all available games
  scores    - View high scores and run history
  saves     - List saved games
  show      - Print a saved game
  generate  - Print a random board
  config    - Print the default configuration
  serve     - Start SSH server for remote play

Examples:
  pathmaster play
  pathmaster play --size 7 --path-color aqua
  pathmaster play --load ~/.pathmaster/saves/20240501-120000-<id>.game
  pathmaster menu
  pathmaster serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pathmaster/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and loads the configuration.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(config.ExpandPath(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pathmaster",
		Level:           level,
	})

	cfg, err := config.LoadPathMaster(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg
	pathmaster.SetConfig(cfg)
	logger.Debug("config loaded", "sizes", cfg.Grid.Sizes, "saves", cfg.Saves.Dir)
	return nil
}

// tuiLogger returns the logger for full-screen commands.
// Without a log file, output would corrupt the alternate screen.
func tuiLogger() *log.Logger {
	if logFile == nil {
		return log.New(io.Discard)
	}
	return logger
}

// runtimeConfig builds the platform config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// saveStore returns the configured save directory.
func saveStore() *savefile.Store {
	return savefile.NewStore(appConfig.Saves.Dir, appConfig.Saves.Extension)
}

// menuConfig describes the start menu for the configured game.
func menuConfig() tui.MenuConfig {
	return tui.MenuConfig{
		GameID:      pathmaster.GameID,
		Title:       "PathMaster",
		Sizes:       appConfig.Grid.Sizes,
		DefaultSize: appConfig.Grid.DefaultSize,
	}
}
