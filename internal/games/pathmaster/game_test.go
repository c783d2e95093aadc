package pathmaster

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/pathmaster/internal/config"
	platformcore "github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
	"github.com/vovakirdan/pathmaster/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultPathMasterConfig())
	g.Reset(platformcore.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	})
	return g
}

// useGrid swaps in a known board.
func useGrid(t *testing.T, g *Game, rows ...string) {
	t.Helper()
	grid, err := core.NewGridFromRows(rows)
	if err != nil {
		t.Fatalf("NewGridFromRows failed: %v", err)
	}
	g.state = core.NewState(grid)
	g.size = grid.Size
	g.restart()
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func clickAt(g *Game, c core.Coord) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	x, y := g.CellOrigin(c)
	f.AddClick(x+2, y)
	return f
}

var testBoard = []string{
	"S3400",
	"00000",
	"00000",
	"00000",
	"0000E",
}

func TestResetBuildsDefaultBoard(t *testing.T) {
	g := newTestGame(t)

	if g.Run() == nil {
		t.Fatal("Reset should create a run")
	}
	if size := g.Run().Grid().Size; size != 5 {
		t.Errorf("board size = %d, want 5", size)
	}
	if g.tooSmall {
		t.Error("80x24 should fit a 5x5 board")
	}
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("initial state = %+v", st)
	}
}

func TestArrowKeysMove(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight))

	run := g.Run()
	if run.Position() != core.C(0, 2) || run.Score() != 7 || run.Steps() != 2 {
		t.Errorf("after two moves: %s at %v", run.StatusLine(), run.Position())
	}
	if g.State().Score != 3 {
		t.Errorf("State().Score = %d, want 3", g.State().Score)
	}
}

func TestClickSelectsCell(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	g.Step(clickAt(g, core.C(0, 1)))
	if g.Run().Position() != core.C(0, 1) {
		t.Fatalf("click did not move, position %v", g.Run().Position())
	}

	// The gap between cells belongs to no cell.
	x, y := g.CellOrigin(core.C(0, 2))
	gap := platformcore.NewInputFrame()
	gap.AddClick(x+cellW, y)
	g.Step(gap)
	if g.Run().Position() != core.C(0, 1) || g.modal != nil {
		t.Error("clicking a gap should do nothing")
	}
}

func TestCellAt(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	for _, c := range g.Run().Grid().AllCoords() {
		x, y := g.CellOrigin(c)
		for dx := 0; dx < cellW; dx++ {
			got, ok := g.CellAt(x+dx, y)
			if !ok || got != c {
				t.Errorf("CellAt(%d, %d) = %v, %v; want %v", x+dx, y, got, ok, c)
			}
		}
		if _, ok := g.CellAt(x, y+1); ok {
			t.Errorf("gap row below %v should not map to a cell", c)
		}
	}
	if _, ok := g.CellAt(0, 0); ok {
		t.Error("HUD position should not map to a cell")
	}
}

func TestInvalidMoveShowsModal(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight))

	g.Step(clickAt(g, core.C(1, 3)))
	if g.modal == nil || g.modal.body != "You can only move to adjacent fields!" {
		t.Fatalf("modal = %+v, want not-adjacent message", g.modal)
	}
	if g.Run().Steps() != 2 || g.Run().Score() != 7 {
		t.Error("rejected click changed the run")
	}

	// Moves are ignored while the modal is open.
	g.Step(frame(platformcore.ActionDown))
	if g.Run().Position() != core.C(0, 2) {
		t.Error("move applied while modal was open")
	}

	g.Step(frame(platformcore.ActionConfirm))
	if g.modal != nil {
		t.Error("Confirm should dismiss the modal")
	}

	g.Step(frame(platformcore.ActionLeft))
	if g.modal == nil || g.modal.body != "You have already visited that field!" {
		t.Errorf("modal = %+v, want already-visited message", g.modal)
	}
}

func TestOutOfBoundsKey(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	g.Step(frame(platformcore.ActionUp))
	if g.modal == nil || g.modal.body != "That field is outside the board!" {
		t.Errorf("modal = %+v, want out-of-bounds message", g.modal)
	}
}

func TestWinningRun(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, "S4", "9E")

	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionDown))

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state = %+v, want won", st)
	}
	if st.Score != 4 {
		t.Errorf("final score = %d, want 4", st.Score)
	}
	if g.modal == nil || g.modal.body != "Congratulations! Final score: 4" {
		t.Errorf("modal = %+v", g.modal)
	}

	sum := g.Summary()
	if sum.GridSize != 2 || sum.Steps != 1 || sum.Sum != 4 || sum.Score != 4 || !sum.Won {
		t.Errorf("Summary = %+v", sum)
	}

	g.Step(frame(platformcore.ActionConfirm))
	g.Step(frame(platformcore.ActionLeft))
	if g.modal == nil || g.modal.title != "Game over" {
		t.Errorf("move after win: modal = %+v", g.modal)
	}

	g.Step(frame(platformcore.ActionRestart))
	if g.State().GameOver || g.Run().Position() != core.C(0, 0) {
		t.Error("restart should begin the same board again")
	}
}

// idle returns an input-free frame that took d of wall time.
func idle(d time.Duration) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	f.Delta = d
	return f
}

func TestClockFollowsWallTime(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	// Uneven frames as a slow terminal would deliver them: 150 x 17ms = 2.55s.
	for i := 0; i < 150; i++ {
		g.Step(idle(17 * time.Millisecond))
	}
	if g.Run().Elapsed() != 2 {
		t.Errorf("Elapsed after 2.55s = %d, want 2", g.Run().Elapsed())
	}

	// The leftover 0.55s carries into the next second.
	g.Step(idle(450 * time.Millisecond))
	if g.Run().Elapsed() != 3 {
		t.Errorf("Elapsed after 3.0s = %d, want 3", g.Run().Elapsed())
	}

	// One long frame counts every second it covered.
	g.Step(idle(2500 * time.Millisecond))
	if g.Run().Elapsed() != 5 {
		t.Errorf("Elapsed after 5.5s = %d, want 5", g.Run().Elapsed())
	}

	// Frames without a known duration leave the clock alone.
	for i := 0; i < 200; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	if g.Run().Elapsed() != 5 {
		t.Errorf("clock moved without wall time: %d", g.Run().Elapsed())
	}
}

func TestClockStopsWhilePaused(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	g.Step(frame(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("State should report paused")
	}
	for i := 0; i < 120; i++ {
		g.Step(idle(50 * time.Millisecond))
	}
	if g.Run().Elapsed() != 0 {
		t.Errorf("clock ran while paused: %d", g.Run().Elapsed())
	}

	resume := frame(platformcore.ActionPause)
	resume.Delta = time.Second
	g.Step(resume)
	if g.State().Paused || g.Run().Elapsed() != 1 {
		t.Errorf("after resume: paused=%v elapsed=%d", g.State().Paused, g.Run().Elapsed())
	}
}

func TestClockStopsAfterWin(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, "SE", "12")

	g.Step(frame(platformcore.ActionRight))
	for i := 0; i < 10; i++ {
		g.Step(idle(time.Second))
	}
	if g.Run().Elapsed() != 0 {
		t.Errorf("Elapsed = %d after win, want 0", g.Run().Elapsed())
	}
}

func TestRepeatedKeysInOneFrame(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionDown))
	if g.Run().Position() != core.C(1, 2) {
		t.Errorf("Position = %v, want (1,2)", g.Run().Position())
	}
	if g.Run().Steps() != 3 || g.Run().Score() != 7 {
		t.Errorf("steps=%d score=%d, want 3 and 7", g.Run().Steps(), g.Run().Score())
	}
}

func TestRepeatedKeysStopAtRejection(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)

	// Right, Left steps back onto Start and ends the frame's moves.
	g.Step(frame(platformcore.ActionRight, platformcore.ActionLeft, platformcore.ActionDown))
	if g.Run().Position() != core.C(0, 1) {
		t.Errorf("Position = %v, want (0,1)", g.Run().Position())
	}
	if g.modal == nil || g.modal.kind != modalError {
		t.Error("rejected move should open the error modal")
	}
}

func TestBoardCommands(t *testing.T) {
	g := newTestGame(t)
	first := g.Run().Grid()

	g.Step(frame(platformcore.ActionResize))
	if g.Run().Grid().Size != 7 {
		t.Errorf("resize: size = %d, want 7", g.Run().Grid().Size)
	}
	g.Step(frame(platformcore.ActionResize))
	if g.Run().Grid().Size != 5 {
		t.Errorf("resize wraps: size = %d, want 5", g.Run().Grid().Size)
	}

	g.Step(frame(platformcore.ActionNewBoard))
	if g.Run().Grid().Equal(first) {
		t.Error("new board should differ from the first one")
	}

	g.Step(frame(platformcore.ActionPathColor))
	if g.Run().PathColor() != "pink" {
		t.Errorf("path color = %q, want pink", g.Run().PathColor())
	}
	g.Step(frame(platformcore.ActionBoardColor))
	if g.boardColors[g.boardIdx] != platformcore.ColorLavender {
		t.Errorf("board color = %v, want lavender", g.boardColors[g.boardIdx])
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithConfig(config.DefaultPathMasterConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.tooSmall {
		t.Fatal("30x10 should be too small")
	}
	g.Step(frame(platformcore.ActionRight))
	if g.Run().Steps() != 0 {
		t.Error("moves should be ignored while too small")
	}

	screen := platformcore.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small guard not rendered")
	}

	g.Resize(80, 24)
	if g.tooSmall {
		t.Error("Resize to 80x24 should clear the guard")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)
	g.Step(frame(platformcore.ActionRight))

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 3", "Start", "End", "[3]", "Statistics: Path Length: 1, Sum: 3, Score: 3, Time: 0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q:\n%s", want, out)
		}
	}

	x, y := g.CellOrigin(core.C(0, 1))
	if bg := screen.GetCell(x, y).Bg; bg != platformcore.ColorLemon {
		t.Errorf("visited cell background = %v, want lemon", bg)
	}
	x, y = g.CellOrigin(core.C(0, 0))
	if bg := screen.GetCell(x, y).Bg; bg != platformcore.ColorGreen {
		t.Errorf("start cell background = %v, want green", bg)
	}
}

func TestExportImport(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)
	g.Step(frame(platformcore.ActionPathColor))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionRight))

	data, err := g.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other := newTestGame(t)
	if err := other.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	run := other.Run()
	if !run.Grid().Equal(g.Run().Grid()) {
		t.Error("imported board differs")
	}
	if run.StatusLine() != g.Run().StatusLine() || run.Position() != core.C(0, 2) {
		t.Errorf("imported run = %s at %v", run.StatusLine(), run.Position())
	}
	if run.PathColor() != "pink" {
		t.Errorf("imported path color = %q", run.PathColor())
	}

	// Play continues from the saved position.
	other.Step(frame(platformcore.ActionDown))
	if other.Run().Position() != core.C(1, 2) {
		t.Errorf("move after import landed on %v", other.Run().Position())
	}
}

func TestImportCorruptLeavesRunUntouched(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, testBoard...)
	g.Step(frame(platformcore.ActionRight))
	before := g.Run().StatusLine()
	grid := g.Run().Grid()

	err := g.Import([]byte("version: 1\ngrid: nonsense\n"))
	if !errors.Is(err, core.ErrCorrupt) {
		t.Fatalf("Import error = %v, want ErrCorrupt", err)
	}
	if g.Run().StatusLine() != before || g.Run().Grid() != grid {
		t.Error("failed import changed the running game")
	}
}

func TestImportFinishedRun(t *testing.T) {
	g := newTestGame(t)
	useGrid(t, g, "S4", "9E")
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionDown))

	data, err := g.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other := newTestGame(t)
	if err := other.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	st := other.State()
	if !st.GameOver || !st.Won || st.Score != 4 {
		t.Errorf("imported finished state = %+v", st)
	}
}

func TestFormatBoard(t *testing.T) {
	grid, err := core.NewGridFromRows([]string{"S3", "1E"})
	if err != nil {
		t.Fatal(err)
	}
	st := core.NewState(grid)
	if _, err := st.AttemptMove(core.C(0, 1)); err != nil {
		t.Fatal(err)
	}

	out := FormatBoard(st)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("FormatBoard produced %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Start") || !strings.Contains(lines[0], "[3]") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.Contains(lines[1], "1") || !strings.Contains(lines[1], "End") {
		t.Errorf("second row = %q", lines[1])
	}
	if lines[3] != "Statistics: Path Length: 1, Sum: 3, Score: 3, Time: 0s" {
		t.Errorf("status line = %q", lines[3])
	}
}

func TestSetBoardSize(t *testing.T) {
	g := NewWithConfig(config.DefaultPathMasterConfig())
	g.SetBoardSize(7)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})

	if size := g.Run().Grid().Size; size != 7 {
		t.Errorf("board size = %d, want 7", size)
	}
	if err := g.Run().Grid().Validate(); err != nil {
		t.Errorf("generated board invalid: %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("game %q not registered", GameID)
	}

	found := false
	for _, info := range registry.List() {
		if info.ID == GameID {
			found = true
			if info.Title != "PathMaster" {
				t.Errorf("title = %q, expected PathMaster", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() does not include the game")
	}

	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := g.(*Game); !ok {
		t.Errorf("Create returned %T", g)
	}

	if _, err := registry.Create("snake"); err == nil {
		t.Error("expected error for unknown game")
	}
}
