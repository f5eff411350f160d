package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/punch-escape/internal/core"
)

// KeyMap defines the key bindings for the runner.
type KeyMap struct {
	Jump    key.Binding
	Slide   key.Binding
	Boost   key.Binding
	Pause   key.Binding
	Confirm key.Binding
	Restart key.Binding
	Back    key.Binding
	Mute    key.Binding
	Debug   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Slide, k.Boost, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Slide, k.Boost},
		{k.Pause, k.Confirm, k.Restart, k.Back},
		{k.Mute, k.Debug, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Slide: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "slide"),
		),
		Boost: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "boost"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/continue"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "give up"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music"),
		),
		Debug: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "dev mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Terminals report key presses and auto-repeat, never releases. A held key
// is considered released once no repeat arrived within the gap. The first
// gap covers the keyboard's repeat delay, later ones its repeat rate.
const (
	holdFirstGap  = 550 * time.Millisecond
	holdRepeatGap = 160 * time.Millisecond
)

type hold struct {
	until time.Time
}

// HoldTracker synthesises release actions for held keys.
type HoldTracker struct {
	held map[core.Action]*hold
}

// releaseOf maps a press action to its release.
var releaseOf = map[core.Action]core.Action{
	core.ActionSlideStart: core.ActionSlideEnd,
	core.ActionBoostStart: core.ActionBoostEnd,
}

// NewHoldTracker creates an empty tracker.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{held: make(map[core.Action]*hold)}
}

// Press records a press of a holdable action at now. It returns false for
// an auto-repeat of a key that is already held.
func (t *HoldTracker) Press(a core.Action, now time.Time) bool {
	if _, ok := releaseOf[a]; !ok {
		return true
	}
	if h, ok := t.held[a]; ok && now.Before(h.until) {
		h.until = now.Add(holdRepeatGap)
		return false
	}
	t.held[a] = &hold{until: now.Add(holdFirstGap)}
	return true
}

// Expire returns release actions for every hold whose gap elapsed by now.
func (t *HoldTracker) Expire(now time.Time) []core.Action {
	var out []core.Action
	for _, a := range []core.Action{core.ActionSlideStart, core.ActionBoostStart} {
		h, ok := t.held[a]
		if !ok || now.Before(h.until) {
			continue
		}
		delete(t.held, a)
		out = append(out, releaseOf[a])
	}
	return out
}

// Held reports whether a is currently held.
func (t *HoldTracker) Held(a core.Action) bool {
	_, ok := t.held[a]
	return ok
}

// Reset forgets every hold.
func (t *HoldTracker) Reset() {
	clear(t.held)
}

// MapKey translates a key message to a game action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Slide):
		return core.ActionSlideStart
	case key.Matches(msg, k.Boost):
		return core.ActionBoostStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Mute):
		return core.ActionMute
	case key.Matches(msg, k.Debug):
		return core.ActionDebug
	}
	return core.ActionNone
}
