package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/punch-escape/internal/core"
	"github.com/vovakirdan/punch-escape/internal/games/escape"
)

var screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"))

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game     *escape.Game
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	holds    *HoldTracker
	input    core.InputFrame
	fps      int
	last     time.Time
	now      func() time.Time
	state    core.GameState
	winW     int
	winH     int
	quitting bool
}

// NewModel creates a model for game, ticking at fps.
func NewModel(game *escape.Game, fps int) Model {
	rt := game.Runtime()
	h := help.New()
	h.ShowAll = false
	return Model{
		game:   game,
		screen: core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:   DefaultKeyMap(),
		help:   h,
		holds:  NewHoldTracker(),
		input:  core.NewInputFrame(),
		fps:    fps,
		now:    time.Now,
		state:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, screenshotKey):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if m.winW > 0 {
			return m.handleResize(tea.WindowSizeMsg{Width: m.winW, Height: m.winH})
		}
		return m, nil
	}

	a := m.keys.MapKey(msg)
	if a == core.ActionQuit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}
	m.holds.Press(a, m.now())
	m.input.Set(a)
	return m, nil
}

// handleResize keeps the run going on the new canvas. The bottom row is
// reserved for the help line.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.winW, m.winH = msg.Width, msg.Height
	w, h := msg.Width, msg.Height-m.helpRows()
	if w <= 0 || h <= 0 {
		return m, nil
	}
	m.screen.Resize(w, h)
	m.game.Resize(w, h)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, a := range m.holds.Expire(now) {
		m.input.Set(a)
	}

	dt := elapsed(m.last, now)
	m.last = now

	result := m.game.Advance(dt, m.input)
	m.state = result.State
	m.input.Clear()

	if result.Quit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}
	return m, tickCmd(m.fps)
}

func (m Model) helpRows() int {
	if m.help.ShowAll {
		return 4
	}
	return 1
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".escape", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("escape_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the current frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for game.
func Run(game *escape.Game, fps int) error {
	p := tea.NewProgram(
		NewModel(game, fps),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
