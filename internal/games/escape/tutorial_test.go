package escape

import (
	"testing"
	"time"

	"github.com/vovakirdan/punch-escape/internal/config"
	"github.com/vovakirdan/punch-escape/internal/core"
)

type fakeLessonHost struct {
	cleared int
	spawned []string
	shown   []int
	hidden  int
	done    int
}

func (h *fakeLessonHost) clearField()                             { h.cleared++ }
func (h *fakeLessonHost) spawnLesson(s config.TutorialStep)       { h.spawned = append(h.spawned, s.Spawn) }
func (h *fakeLessonHost) showLesson(i int, _ config.TutorialStep) { h.shown = append(h.shown, i) }
func (h *fakeLessonHost) hideLesson()                             { h.hidden++ }
func (h *fakeLessonHost) tutorialDone()                           { h.done++ }

func newTestTutorial() (*Tutorial, *fakeLessonHost, *core.TaskQueue) {
	q := core.NewTaskQueue()
	h := &fakeLessonHost{}
	return newTutorial(defaultCfg().Tutorial, q, h), h, q
}

func secs(s float64) time.Duration { return seconds(s) }

func TestTutorialFreeWalkThenHearts(t *testing.T) {
	tut, h, q := newTestTutorial()
	tut.Start()
	if tut.Step != -1 || !tut.Active {
		t.Fatalf("after start step=%d active=%v, expected -1 true", tut.Step, tut.Active)
	}
	q.Advance(secs(1.59))
	if len(h.shown) != 0 {
		t.Fatal("first lesson shown during free walk")
	}
	q.Advance(secs(0.02))
	if tut.Step != 0 || len(h.shown) != 1 {
		t.Fatalf("step = %d, shown = %v, expected hearts lesson", tut.Step, h.shown)
	}
	if tut.Paused {
		t.Error("the auto lesson should not pause")
	}

	// hearts: 3.2s visible, then 150ms until the jump lesson
	q.Advance(secs(3.2))
	if h.hidden != 1 || tut.Step != 0 {
		t.Fatalf("after delay hidden=%d step=%d, expected hide before advance", h.hidden, tut.Step)
	}
	q.Advance(secs(0.15))
	if tut.Step != 1 || !tut.Paused || h.cleared != 1 {
		t.Errorf("jump lesson step=%d paused=%v cleared=%d", tut.Step, tut.Paused, h.cleared)
	}
	if h.spawned[len(h.spawned)-1] != "jumper" {
		t.Errorf("jump lesson spawned %q, expected jumper", h.spawned[len(h.spawned)-1])
	}
}

func TestTutorialActionAcceptedOnce(t *testing.T) {
	tut, _, q := newTestTutorial()
	tut.Start()
	q.Advance(secs(1.6 + 3.2 + 0.15 + 0.001))
	if tut.Step != 1 {
		t.Fatalf("step = %d, expected the jump lesson", tut.Step)
	}

	if tut.OnAction(config.TutorialSlide) {
		t.Error("slide accepted by the jump lesson")
	}
	if !tut.OnAction(config.TutorialJump) {
		t.Fatal("jump rejected by the jump lesson")
	}
	if tut.Paused {
		t.Error("accepted action should unpause")
	}
	if tut.OnAction(config.TutorialJump) {
		t.Error("second jump accepted for the same lesson")
	}

	q.Advance(secs(1.09))
	if tut.Step != 1 {
		t.Fatalf("advanced early to step %d", tut.Step)
	}
	q.Advance(secs(0.02))
	if tut.Step != 2 {
		t.Fatalf("step = %d, expected the slide lesson", tut.Step)
	}
	if tut.OnAction(config.TutorialJump) {
		t.Error("jump accepted by the slide lesson")
	}
}

func TestTutorialNothingAcceptedDuringFreeWalk(t *testing.T) {
	tut, _, _ := newTestTutorial()
	tut.Start()
	for _, a := range []config.TutorialAction{config.TutorialJump, config.TutorialAuto, config.TutorialGem} {
		if tut.OnAction(a) {
			t.Errorf("%s accepted before the first lesson", a)
		}
	}
}

func TestTutorialCompletes(t *testing.T) {
	tut, h, q := newTestTutorial()
	tut.Start()
	actions := map[config.TutorialAction]bool{}
	for i := 0; i < 2000 && h.done == 0; i++ {
		if st, ok := tut.Current(); ok && st.Action != config.TutorialAuto {
			actions[st.Action] = actions[st.Action] || tut.OnAction(st.Action)
		}
		q.Advance(secs(0.05))
	}
	if h.done != 1 || tut.Active {
		t.Fatalf("done = %d active = %v, expected finished once", h.done, tut.Active)
	}
	for _, a := range []config.TutorialAction{config.TutorialJump, config.TutorialSlide, config.TutorialDJump, config.TutorialGem} {
		if !actions[a] {
			t.Errorf("lesson %s never accepted", a)
		}
	}
	if len(h.shown) != len(defaultCfg().Tutorial.Steps) {
		t.Errorf("shown %d lessons, expected %d", len(h.shown), len(defaultCfg().Tutorial.Steps))
	}
}

func TestTutorialGemTimeout(t *testing.T) {
	tut, h, q := newTestTutorial()
	tut.Start()
	for i := 0; i < 2000 && tut.Step < 4; i++ {
		if st, ok := tut.Current(); ok && st.Action != config.TutorialAuto {
			tut.OnAction(st.Action)
		}
		q.Advance(secs(0.05))
	}
	if tut.Step != 4 {
		t.Fatalf("step = %d, expected the gem lesson", tut.Step)
	}
	q.Advance(secs(5.5))
	if h.done != 1 {
		t.Errorf("gem lesson did not time out (done=%d)", h.done)
	}
}

func TestTutorialCancel(t *testing.T) {
	tut, h, q := newTestTutorial()
	tut.Start()
	tut.Cancel()
	q.Advance(secs(30))
	if len(h.shown) != 0 || h.done != 0 || tut.Active {
		t.Errorf("cancelled tutorial kept running: shown=%v done=%d", h.shown, h.done)
	}
}
