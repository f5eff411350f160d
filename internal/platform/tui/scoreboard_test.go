package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/punch-escape/internal/games/escape"
	"github.com/vovakirdan/punch-escape/internal/storage"
)

type fakeRuns struct {
	best   escape.Best
	top    []storage.RunEntry
	recent []storage.RunEntry
	err    error
}

func (f *fakeRuns) LoadBest() (escape.Best, error) { return f.best, f.err }

func (f *fakeRuns) TopRuns(int) ([]storage.RunEntry, error) { return f.top, f.err }

func (f *fakeRuns) RecentRuns(int) ([]storage.RunEntry, error) { return f.recent, f.err }

func entry(id string, score int) storage.RunEntry {
	return storage.RunEntry{Run: escape.Run{ID: id, Score: score, Level: 2, Outcome: "over", Duration: 42 * time.Second}}
}

func TestScoreboardTabs(t *testing.T) {
	src := &fakeRuns{
		best:   escape.Best{Score: 900, Level: 4, Plays: 7},
		top:    []storage.RunEntry{entry("a", 900), entry("b", 300)},
		recent: []storage.RunEntry{entry("b", 300)},
	}
	m := NewScoreboardModel(src, 100, 30)

	if len(m.runs) != 2 {
		t.Fatalf("top tab has %d runs, expected 2", len(m.runs))
	}
	if !strings.Contains(m.View(), "Plays 7") {
		t.Error("view missing the best record line")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.tab != tabRecent || len(m.runs) != 1 {
		t.Errorf("after tab: tab=%d runs=%d, expected recent with 1 run", m.tab, len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.tab != tabTop {
		t.Errorf("tab did not wrap back to top runs")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(&fakeRuns{err: errors.New("locked")}, 80, 24)

	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty scoreboard message missing")
	}

	m = NewScoreboardModel(nil, 80, 24)
	if len(m.runs) != 0 {
		t.Error("nil source produced runs")
	}
}

func TestRunRow(t *testing.T) {
	r := entry("x", 1234)
	r.Gems, r.GemsTotal = 5, 9

	row := runRow(3, r)
	expected := []string{"3", "1234", "2", "5/9", "over", "42s", "-"}
	for i, v := range expected {
		if row[i] != v {
			t.Errorf("row[%d] = %q, expected %q", i, row[i], v)
		}
	}
}
