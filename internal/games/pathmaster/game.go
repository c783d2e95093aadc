// Package pathmaster provides the PathMaster grid game for the platform.
// The rules live in the core subpackage; this package maps platform input
// to moves and draws the board.
package pathmaster

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/pathmaster/internal/config"
	platformcore "github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/registry"
)

// GameID is the registry identifier.
const GameID = "pathmaster"

// modalKind tells the renderer how to style a modal.
type modalKind int

const (
	modalError modalKind = iota
	modalWin
)

// modal is a dismissable message box drawn over the board.
type modal struct {
	kind  modalKind
	title string
	body  string
}

// Game implements the PathMaster game.
type Game struct {
	rng   *rand.Rand
	cfg   config.PathMasterConfig
	state *core.State
	size  int

	boardSize int // Per-instance size override, 0 means unset

	// Screen dimensions
	screenW int
	screenH int

	clock time.Duration // Wall time not yet counted as a whole second

	// Status
	paused     bool
	tooSmall   bool
	won        bool
	finalScore int
	modal      *modal

	// Palettes
	pathColors  []platformcore.Color
	boardColors []platformcore.Color
	pathIdx     int
	boardIdx    int

	layout layout
}

// Package-level variables for configuration set from the CLI.
var (
	activeConfig    = config.DefaultPathMasterConfig()
	startSize       int
	startPathColor  string
	startBoardColor string
)

// SetConfig replaces the configuration used by new games.
func SetConfig(cfg config.PathMasterConfig) {
	activeConfig = cfg
}

// SetStartSize sets the board size for new games. 0 means the configured default.
func SetStartSize(size int) {
	startSize = size
}

// SetStartColors selects the initial path and board colors by name.
// Empty or unknown names fall back to the first palette entry.
func SetStartColors(path, board string) {
	startPathColor = path
	startBoardColor = board
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a new PathMaster game using the package configuration.
func New() *Game {
	return NewWithConfig(activeConfig)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.PathMasterConfig) *Game {
	g := &Game{
		cfg:         cfg,
		pathColors:  cfg.PathColors(),
		boardColors: cfg.BoardColors(),
	}
	if len(g.pathColors) == 0 {
		g.pathColors = []platformcore.Color{platformcore.ColorYellow}
	}
	if len(g.boardColors) == 0 {
		g.boardColors = []platformcore.Color{platformcore.ColorDefault}
	}
	g.pathIdx = paletteIndex(g.pathColors, startPathColor)
	g.boardIdx = paletteIndex(g.boardColors, startBoardColor)
	return g
}

func paletteIndex(colors []platformcore.Color, name string) int {
	want, ok := platformcore.ParseColor(name)
	if !ok {
		return 0
	}
	for i, c := range colors {
		if c == want {
			return i
		}
	}
	return 0
}

// SetBoardSize sets the board size used by the next Reset for this game only.
func (g *Game) SetBoardSize(size int) {
	g.boardSize = size
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "PathMaster"
}

// Reset initializes the game with a fresh board.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.size = g.cfg.Grid.DefaultSize
	switch {
	case g.boardSize >= core.MinGridSize:
		g.size = g.boardSize
	case startSize >= core.MinGridSize:
		g.size = startSize
	}
	if g.size < core.MinGridSize {
		g.size = core.MinGridSize
	}

	g.newBoard()
}

// Resize adapts the layout to new screen dimensions without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.calculateLayout()
}

// newBoard generates a fresh grid at the current size and starts over on it.
func (g *Game) newBoard() {
	grid, err := core.Generate(g.size, g.rng)
	if err != nil {
		// Sizes are validated by config; fall back to the minimum board.
		g.size = core.MinGridSize
		grid = core.MustGenerate(g.size, g.rng)
	}
	g.state = core.NewState(grid)
	g.state.SetPathColor(g.pathColors[g.pathIdx].String())
	g.restart()
}

// restart begins the same board again.
func (g *Game) restart() {
	g.state.Reset()
	g.clock = 0
	g.paused = false
	g.won = false
	g.finalScore = 0
	g.modal = nil
	g.calculateLayout()
}

// Step advances the game by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	// Board commands work in every mode.
	switch {
	case in.Has(platformcore.ActionRestart):
		g.restart()
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionNewBoard):
		g.newBoard()
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionResize):
		g.size = g.cfg.NextSize(g.size)
		g.newBoard()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPathColor) {
		g.pathIdx = (g.pathIdx + 1) % len(g.pathColors)
		g.state.SetPathColor(g.pathColors[g.pathIdx].String())
	}
	if in.Has(platformcore.ActionBoardColor) {
		g.boardIdx = (g.boardIdx + 1) % len(g.boardColors)
	}

	if g.modal != nil {
		if in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionBack) || len(in.Clicks) > 0 {
			g.modal = nil
			return platformcore.StepResult{State: g.State()}
		}
	} else if in.Has(platformcore.ActionPause) && !g.state.IsFinished() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if g.modal == nil && !in.Empty() {
		g.handleMoves(in)
	}

	g.advanceClock(in.Delta)

	return platformcore.StepResult{State: g.State()}
}

// handleMoves applies direction keys in the order they were pressed, then
// clicks, stopping at the first rejection.
func (g *Game) handleMoves(in platformcore.InputFrame) {
	for _, a := range in.Presses {
		d, ok := moveDirs[a]
		if !ok {
			continue
		}
		if !g.apply(g.state.MoveDir(d)) {
			return
		}
	}

	for _, click := range in.Clicks {
		target, ok := g.CellAt(click.X, click.Y)
		if !ok {
			continue
		}
		if !g.apply(g.state.AttemptMove(target)) {
			return
		}
	}
}

// apply records the outcome of one move. It reports whether more moves may follow.
func (g *Game) apply(res core.MoveResult, err error) bool {
	if err != nil {
		title := "Invalid move"
		if !core.IsInvalidMove(err) {
			title = "Game over"
		}
		g.modal = &modal{kind: modalError, title: title, body: core.ErrorMessage(err)}
		return false
	}
	if res.Outcome == core.OutcomeWon {
		g.won = true
		g.finalScore = res.FinalScore
		g.modal = &modal{kind: modalWin, title: "You made it!", body: core.WinMessage(res.FinalScore)}
		return false
	}
	return true
}

// advanceClock adds the frame's wall time to the run and turns every whole
// second into one tick.
func (g *Game) advanceClock(dt time.Duration) {
	if g.state.IsFinished() || dt <= 0 {
		return
	}
	g.clock += dt
	for g.clock >= time.Second {
		g.clock -= time.Second
		g.state.Tick()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.state == nil {
		return platformcore.GameState{}
	}
	score := g.state.CalculateScore()
	if g.won {
		score = g.finalScore
	}
	return platformcore.GameState{
		Score:    score,
		GameOver: g.state.IsFinished(),
		Paused:   g.paused,
		Won:      g.won,
	}
}

// Summary reports the run for the run history.
func (g *Game) Summary() platformcore.RunSummary {
	return platformcore.RunSummary{
		GridSize:    g.state.Grid().Size,
		Steps:       g.state.Steps(),
		Sum:         g.state.Score(),
		Score:       g.State().Score,
		ElapsedSecs: g.state.Elapsed(),
		Won:         g.won,
	}
}

// Export serializes the current run as a save file.
func (g *Game) Export() ([]byte, error) {
	return savefile.Encode(savefile.New(g.state.Snapshot()))
}

// Import replaces the current run with a saved one.
// The running game is only replaced when the save decodes and validates.
func (g *Game) Import(data []byte) error {
	save, err := savefile.Decode(data)
	if err != nil {
		return err
	}
	st, err := core.FromSnapshot(save.Snapshot)
	if err != nil {
		return err
	}

	g.state = st
	g.size = st.Grid().Size
	g.clock = 0
	g.paused = false
	g.modal = nil
	g.won = st.IsFinished()
	g.finalScore = 0
	if g.won {
		g.finalScore = st.CalculateScore()
	}
	if name := st.PathColor(); name != "" {
		g.pathIdx = paletteIndex(g.pathColors, name)
	}
	g.state.SetPathColor(g.pathColors[g.pathIdx].String())
	g.calculateLayout()
	return nil
}

var moveDirs = map[platformcore.Action]core.Dir{
	platformcore.ActionUp:    core.DirUp,
	platformcore.ActionRight: core.DirRight,
	platformcore.ActionDown:  core.DirDown,
	platformcore.ActionLeft:  core.DirLeft,
}

// Run exposes the underlying state for read-only inspection.
func (g *Game) Run() *core.State {
	return g.state
}

// Ensure Game implements the optional platform interfaces.
var (
	_ registry.Persistable = (*Game)(nil)
	_ registry.Summarizer  = (*Game)(nil)
	_ registry.Resizable   = (*Game)(nil)
)
