// Package tui provides the Bubble Tea integration for PathMaster.
// It runs the terminal UI loop locally and behind the SSH server.
package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pathmaster/internal/core"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/savefile"
	"github.com/vovakirdan/pathmaster/internal/registry"
	"github.com/vovakirdan/pathmaster/internal/storage"
)

// noticeSeconds is how long a status notice stays on screen.
const noticeSeconds = 3

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Options carries the optional collaborators of a game model.
type Options struct {
	Store    *storage.Store  // Score and run history; nil disables recording
	Saves    *savefile.Store // Save directory; nil disables ctrl+s and ctrl+o
	Load     []byte          // Encoded save imported right after start
	Logger   *log.Logger     // Nil discards log output
	Embedded bool            // M returns to the caller's menu
}

// loadMsg carries save data to import once the game is running.
type loadMsg struct {
	data   []byte
	source string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score and run were recorded for the current game over

	notice      string
	noticeTicks int

	lastTick time.Time // Timestamp of the previous TickMsg
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if len(m.opts.Load) > 0 {
		data := m.opts.Load
		cmds = append(cmds, func() tea.Msg {
			return loadMsg{data: data, source: "save"}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case loadMsg:
		m.importData(msg.data, msg.source)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveGame()
		return m, nil
	case "ctrl+o":
		m.loadLatest()
		return m, nil
	case "m":
		if m.opts.Embedded {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can relayout keep their run; others start over.
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks. The game clock follows the tick
// timestamps, so late ticks do not slow it down.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !now.IsZero() {
		if !m.lastTick.IsZero() && now.After(m.lastTick) {
			m.inputFrame.Delta = now.Sub(m.lastTick)
		}
		m.lastTick = now
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.recordGameOver()
	} else {
		m.scoreSaved = false
	}

	if m.noticeTicks > 0 {
		m.noticeTicks--
		if m.noticeTicks == 0 {
			m.notice = ""
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordGameOver stores the score and the run summary once per game over.
func (m *Model) recordGameOver() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	store := m.opts.Store
	if store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}

	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	run := storage.Run{
		RunID:       uuid.NewString(),
		GameID:      m.game.ID(),
		GridSize:    sum.GridSize,
		Steps:       sum.Steps,
		Sum:         sum.Sum,
		Score:       sum.Score,
		ElapsedSecs: sum.ElapsedSecs,
		Won:         sum.Won,
	}
	if _, err := store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("run recorded", "run", run.RunID, "score", run.Score, "steps", run.Steps)
}

// saveGame writes the current progress into the save directory.
func (m *Model) saveGame() {
	p, ok := m.game.(registry.Persistable)
	if !ok || m.opts.Saves == nil {
		m.setNotice("Saving is not available")
		return
	}

	data, err := p.Export()
	if err != nil {
		m.logger.Error("could not export game", "error", err)
		m.setNotice("Save failed: " + err.Error())
		return
	}
	path, err := m.opts.Saves.Put(data)
	if err != nil {
		m.logger.Error("could not write save", "error", err)
		m.setNotice("Save failed: " + err.Error())
		return
	}

	m.logger.Info("game saved", "path", path)
	m.setNotice("Saved " + filepath.Base(path))
}

// loadLatest imports the newest save from the save directory.
func (m *Model) loadLatest() {
	if _, ok := m.game.(registry.Persistable); !ok || m.opts.Saves == nil {
		m.setNotice("Loading is not available")
		return
	}

	latest, err := m.opts.Saves.Latest()
	if err != nil {
		if errors.Is(err, savefile.ErrNoSaves) {
			m.setNotice("No saved games")
			return
		}
		m.logger.Error("could not list saves", "error", err)
		m.setNotice("Load failed: " + err.Error())
		return
	}

	data, err := savefile.Encode(latest)
	if err != nil {
		m.setNotice("Load failed: " + err.Error())
		return
	}
	m.importData(data, filepath.Base(latest.Path))
}

// importData replaces the running game with saved progress.
// A loaded game that is already over is not recorded again.
func (m *Model) importData(data []byte, source string) {
	p, ok := m.game.(registry.Persistable)
	if !ok {
		m.setNotice("Loading is not available")
		return
	}

	if err := p.Import(data); err != nil {
		m.logger.Warn("could not load save", "source", source, "error", err)
		m.setNotice("Load failed: " + err.Error())
		return
	}

	m.gameState = m.game.State()
	m.scoreSaved = m.gameState.GameOver
	m.logger.Info("game loaded", "source", source)
	m.setNotice(fmt.Sprintf("Loaded %s", source))
}

// setNotice shows a message on the bottom line for a few seconds.
func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeTicks = noticeSeconds * m.config.TickRate
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 1 {
		m.screen.DrawTextWithColor(1, m.screen.Height()-2, m.notice, core.ColorYellow)
	}

	return RenderScreen(m.screen)
}

// Notice returns the status notice currently shown.
func (m Model) Notice() string {
	return m.notice
}

// GameState returns the state reported by the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Board cells are clickable
	)

	_, err := p.Run()
	return err
}
