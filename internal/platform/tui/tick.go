// Package tui hosts the runner in a terminal through Bubble Tea, locally or
// over SSH. It owns the frame loop, key mapping and screen output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one frame.
type TickMsg time.Time

// maxElapsed bounds the wall time handed to the game after a stall, so a
// suspended terminal does not fast-forward queued timers.
const maxElapsed = 250 * time.Millisecond

// tickCmd schedules the next frame at the given rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsed returns the wall time between two frames, clamped to [0, maxElapsed].
func elapsed(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	return min(d, maxElapsed)
}
