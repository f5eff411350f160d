package escape

import (
	"time"

	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

// lessonHost is what the tutorial needs from the game.
type lessonHost interface {
	clearField()
	spawnLesson(step config.TutorialStep)
	showLesson(index int, step config.TutorialStep)
	hideLesson()
	tutorialDone()
}

// Tutorial sequences the level-one lessons. Every deferred advance is a
// task on the game's queue, and all of them are cancelled when the run is
// torn down.
type Tutorial struct {
	cfg   config.TutorialConfig
	queue *core.TaskQueue
	host  lessonHost

	Active bool
	Step   int  // -1 during the free walk
	Paused bool // a pausing lesson freezes the track until its action
	done   bool // current step's action already accepted

	tokens []core.Token
}

func newTutorial(cfg config.TutorialConfig, q *core.TaskQueue, host lessonHost) *Tutorial {
	return &Tutorial{cfg: cfg, queue: q, host: host, Step: -1}
}

// Start begins the sequence after the free walk.
func (t *Tutorial) Start() {
	t.Cancel()
	t.Active = true
	t.Step = -1
	t.Paused = false
	t.done = false
	t.after(t.cfg.FreeWalk, t.next)
}

// Current returns the step being taught.
func (t *Tutorial) Current() (config.TutorialStep, bool) {
	if !t.Active || t.Step < 0 || t.Step >= len(t.cfg.Steps) {
		return config.TutorialStep{}, false
	}
	return t.cfg.Steps[t.Step], true
}

func (t *Tutorial) next() {
	t.Step++
	if t.Step >= len(t.cfg.Steps) {
		t.Active = false
		t.Paused = false
		t.host.tutorialDone()
		return
	}
	s := t.cfg.Steps[t.Step]
	t.done = false
	if s.Pause {
		t.Paused = true
		t.host.clearField()
	}
	t.host.spawnLesson(s)
	t.host.showLesson(t.Step, s)

	idx := t.Step
	switch s.Action {
	case config.TutorialAuto:
		t.after(s.Delay, func() {
			t.host.hideLesson()
			t.after(t.cfg.HideDelay, t.next)
		})
	case config.TutorialGem:
		t.after(s.Delay, func() {
			if t.Active && t.Step == idx && !t.done {
				t.done = true
				t.host.hideLesson()
				t.next()
			}
		})
	}
}

// OnAction offers a player action to the current lesson. It is accepted
// only if it matches the current step and only once per step.
func (t *Tutorial) OnAction(a config.TutorialAction) bool {
	if !t.Active || t.done || t.Step < 0 {
		return false
	}
	if t.cfg.Steps[t.Step].Action != a {
		return false
	}
	t.done = true
	t.Paused = false
	t.host.hideLesson()
	t.after(t.cfg.AdvanceDelay, t.next)
	return true
}

// Cancel drops every pending advance and deactivates the tutorial.
func (t *Tutorial) Cancel() {
	for _, tok := range t.tokens {
		t.queue.Cancel(tok)
	}
	t.tokens = t.tokens[:0]
	t.Active = false
	t.Paused = false
}

func (t *Tutorial) after(secs float64, fn func()) {
	t.tokens = append(t.tokens, t.queue.After(seconds(secs), fn))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
