package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/pathmaster/internal/core"
)

// terminalColors maps core.Color to terminal colors.
// ColorDefault is absent and leaves the terminal's own color in place.
var terminalColors = map[core.Color]lipgloss.Color{
	core.ColorRed:      lipgloss.Color("1"),
	core.ColorGreen:    lipgloss.Color("2"),
	core.ColorYellow:   lipgloss.Color("3"),
	core.ColorBlue:     lipgloss.Color("4"),
	core.ColorMagenta:  lipgloss.Color("5"),
	core.ColorCyan:     lipgloss.Color("6"),
	core.ColorWhite:    lipgloss.Color("7"),
	core.ColorBlack:    lipgloss.Color("0"),
	core.ColorGray:     lipgloss.Color("245"),
	core.ColorLemon:    lipgloss.Color("#FFF176"),
	core.ColorPink:     lipgloss.Color("#F06292"),
	core.ColorAqua:     lipgloss.Color("#80DEEA"),
	core.ColorLavender: lipgloss.Color("#B39DDB"),
	core.ColorPeach:    lipgloss.Color("#FFCC80"),
	core.ColorSage:     lipgloss.Color("#C5E1A5"),
}

// cellStyle builds the lipgloss style for a foreground/background pair.
func cellStyle(fg, bg core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := terminalColors[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := terminalColors[bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
