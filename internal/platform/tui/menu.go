package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

// MenuChoice identifies a menu entry.
type MenuChoice int

const (
	MenuNewGame MenuChoice = iota
	MenuContinue
	MenuBoardSize
	MenuScores
	MenuQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// MenuConfig describes what the start menu offers.
type MenuConfig struct {
	GameID      string
	Title       string
	Sizes       []int // Board sizes the size entry cycles through
	DefaultSize int
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	menu      MenuConfig
	items     []MenuItem
	cursor    int
	sizeIdx   int
	width     int
	height    int
	best      int
	latest    *savefile.Save
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects an entry
}

// NewMenuModel creates a new menu model.
// The continue entry is offered only when saves holds a valid save.
func NewMenuModel(menu MenuConfig, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		menu:      menu,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	for i, size := range menu.Sizes {
		if size == menu.DefaultSize {
			m.sizeIdx = i
		}
	}

	if store != nil {
		if best, err := store.HighScore(menu.GameID); err == nil {
			m.best = best
		}
	}

	m.items = append(m.items, MenuItem{Choice: MenuNewGame, Title: "New game"})
	if saves != nil {
		if latest, err := saves.Latest(); err == nil {
			m.latest = &latest
			m.items = append(m.items, MenuItem{Choice: MenuContinue, Title: "Continue last save"})
		}
	}
	if len(menu.Sizes) > 0 {
		m.items = append(m.items, MenuItem{Choice: MenuBoardSize, Title: "Board size"})
	}
	m.items = append(m.items,
		MenuItem{Choice: MenuScores, Title: "Scores"},
		MenuItem{Choice: MenuQuit, Title: "Quit"},
	)

	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		if m.items[m.cursor].Choice == MenuBoardSize {
			m.cycleSize(action == MenuActionRight)
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.Choice {
		case MenuBoardSize:
			m.cycleSize(true)
			return m, nil
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &item
		return m, tea.Quit // Exit menu to start the game

	case MenuActionScoreboard:
		m.selected = &MenuItem{Choice: MenuScores, Title: "Scores"}
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) cycleSize(forward bool) {
	n := len(m.menu.Sizes)
	if n == 0 {
		return
	}
	if forward {
		m.sizeIdx = (m.sizeIdx + 1) % n
	} else {
		m.sizeIdx = (m.sizeIdx - 1 + n) % n
	}
}

// Size returns the selected board size, 0 when the menu offers none.
func (m MenuModel) Size() int {
	if len(m.menu.Sizes) == 0 {
		return 0
	}
	return m.menu.Sizes[m.sizeIdx]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFF176"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	// Title
	title := strings.ToUpper(strings.Join(strings.Split(m.menu.Title, ""), " "))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n\n")

	subtitle := "Walk from Start to End"
	if m.best > 0 {
		subtitle = fmt.Sprintf("%s  |  Best score: %d", subtitle, m.best)
	}
	b.WriteString(centerText(dimStyle.Render(subtitle), m.width, len(subtitle)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := item.Title
		switch item.Choice {
		case MenuBoardSize:
			size := m.Size()
			label = fmt.Sprintf("%s: < %dx%d >", item.Title, size, size)
		case MenuContinue:
			if m.latest != nil {
				label = fmt.Sprintf("%s (%s)", item.Title, m.latest.SavedAt.Local().Format("Jan 02 15:04"))
			}
		}

		line := "  " + label
		rendered := line
		if i == m.cursor {
			line = "> " + label
			rendered = cursorStyle.Render(line)
		}
		b.WriteString(centerText(rendered, m.width, len(line)))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Size  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
// visible is the printable length of text, which may carry ANSI styling.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Size   int
	Save   *savefile.Save // Set for MenuContinue
	Config core.RuntimeConfig
	Quit   bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Size:   m.Size(),
		Config: m.Config(),
	}
	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result
	}
	result.Choice = m.Selected().Choice
	if result.Choice == MenuContinue {
		result.Save = m.latest
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(menu MenuConfig, store *storage.Store, saves *savefile.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(menu, store, saves, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}
