package pathmaster

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

// Board geometry in terminal cells.
const (
	cellW        = 5 // Fits the "Start" label
	cellH        = 1
	gapX         = 1
	gapY         = 1
	hudHeight    = 3
	footerHeight = 4
	minScreenW   = 40
)

const controlsHint = " Arrows/WASD/click: move | R: restart | N: new | G: size | C/V: colors | P: pause | Q: quit"

// layout holds the board placement computed for the current screen.
type layout struct {
	board platformcore.Rect
}

// calculateLayout centers the board and decides whether it fits at all.
func (g *Game) calculateLayout() {
	if g.state == nil {
		return
	}
	size := g.state.Grid().Size
	boardW := size*(cellW+gapX) - gapX
	boardH := size*(cellH+gapY) - gapY

	neededW := platformcore.Max(boardW+2, minScreenW)
	neededH := hudHeight + boardH + footerHeight
	if g.screenW < neededW || g.screenH < neededH {
		g.tooSmall = true
		g.layout = layout{board: platformcore.NewRect(0, 0, boardW, boardH)}
		return
	}
	g.tooSmall = false

	// Center between the HUD and the footer
	area := g.screenH - hudHeight - footerHeight
	g.layout = layout{
		board: platformcore.CenteredRect(boardW, boardH, g.screenW, area).Offset(0, hudHeight),
	}
}

// CellAt maps a screen position to the board cell drawn there.
// Gaps between cells and positions off the board map to nothing.
func (g *Game) CellAt(x, y int) (core.Coord, bool) {
	if g.state == nil || g.tooSmall || !g.layout.board.Contains(x, y) {
		return core.Coord{}, false
	}
	dx := x - g.layout.board.X
	dy := y - g.layout.board.Y
	if dx%(cellW+gapX) >= cellW || dy%(cellH+gapY) >= cellH {
		return core.Coord{}, false
	}
	c := core.C(dy/(cellH+gapY), dx/(cellW+gapX))
	return c, g.state.Grid().InBounds(c)
}

// CellOrigin returns the screen position of a cell's top-left corner.
func (g *Game) CellOrigin(c core.Coord) (x, y int) {
	return g.layout.board.X + c.Col*(cellW+gapX), g.layout.board.Y + c.Row*(cellH+gapY)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.state == nil {
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, platformcore.ColorYellow, "Window too small", "Resize to continue", "")
		return
	}

	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.modal != nil && g.modal.kind == modalWin:
		g.renderOverlay(dst, platformcore.ColorGreen, g.modal.title, g.modal.body, "Enter: close | R: replay | N: new board")
	case g.modal != nil:
		g.renderOverlay(dst, platformcore.ColorRed, g.modal.title, g.modal.body, "Enter/Esc: close")
	case g.paused:
		g.renderOverlay(dst, platformcore.ColorCyan, "Paused", "Press P to continue", "")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " PathMaster"
	if g.state != nil {
		size := g.state.Grid().Size
		hud += fmt.Sprintf(" | %s | Board: %dx%d", g.state.ScoreLabel(), size, size)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	// Separator
	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderBoard draws every cell of the grid.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	grid := g.state.Grid()
	pathColor := g.pathColors[g.pathIdx]
	boardColor := g.boardColors[g.boardIdx]
	pos := g.state.Position()

	for _, c := range grid.AllCoords() {
		cell := grid.Get(c)
		label := cell.Label()
		fg, bg := platformcore.ColorWhite, boardColor
		if boardColor != platformcore.ColorDefault {
			fg = platformcore.ColorBlack
		}

		switch {
		case cell.Kind == core.CellStart:
			fg, bg = platformcore.ColorBlack, platformcore.ColorGreen
		case cell.Kind == core.CellEnd:
			fg, bg = platformcore.ColorBlack, platformcore.ColorRed
		case g.state.IsVisited(c):
			fg, bg = platformcore.ColorBlack, pathColor
		}
		if c == pos && cell.Kind == core.CellNumber {
			label = "[" + label + "]"
		}

		x, y := g.CellOrigin(c)
		dst.DrawTextStyled(x, y, center(label, cellW), fg, bg)
	}
}

// renderFooter draws the statistics line and the controls hint.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	statusY := g.layout.board.Bottom() + 1
	dst.DrawTextCenteredWithColor(statusY, g.state.StatusLine(), platformcore.ColorWhite)
	dst.DrawTextWithColor(0, dst.Height()-1, controlsHint, platformcore.ColorGray)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, titleColor platformcore.Color, title, body, hint string) {
	maxLen := 0
	for _, line := range []string{title, body, hint} {
		maxLen = platformcore.Max(maxLen, len([]rune(line)))
	}
	boxW := platformcore.Clamp(maxLen+4, 0, dst.Width())
	boxH := 7
	if hint == "" {
		boxH = 5
	}
	box := platformcore.CenteredRect(boxW, boxH, dst.Width(), dst.Height())

	dst.FillRect(box, ' ', platformcore.ColorDefault, platformcore.ColorDefault)
	dst.DrawBox(box)

	drawCentered(dst, box, box.Y+1, title, titleColor)
	drawCentered(dst, box, box.Y+3, body, platformcore.ColorWhite)
	if hint != "" {
		drawCentered(dst, box, box.Y+5, hint, platformcore.ColorGray)
	}
}

func drawCentered(dst *platformcore.Screen, box platformcore.Rect, y int, text string, color platformcore.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextWithColor(x, y, text, color)
}

// center pads text with spaces to width, keeping it centered.
func center(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}

// FormatBoard renders a run as plain text: one line per board row followed
// by the statistics line. Visited cells are shown in parentheses and the
// current cell in brackets.
func FormatBoard(st *core.State) string {
	grid := st.Grid()
	var sb strings.Builder
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			coord := core.C(r, c)
			cell := grid.Get(coord)
			label := cell.Label()
			if cell.Kind == core.CellNumber {
				switch {
				case coord == st.Position():
					label = "[" + label + "]"
				case st.IsVisited(coord):
					label = "(" + label + ")"
				}
			}
			sb.WriteString(center(label, cellW+2))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(st.StatusLine())
	sb.WriteByte('\n')
	return sb.String()
}
