package core

import (
	"reflect"
	"testing"
	"time"
)

func TestTaskQueueOrder(t *testing.T) {
	q := NewTaskQueue()
	var got []string

	q.After(30*time.Millisecond, func() { got = append(got, "c") })
	q.After(10*time.Millisecond, func() { got = append(got, "a") })
	q.After(10*time.Millisecond, func() { got = append(got, "b") })

	q.Advance(20 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("after 20ms got %v, expected [a b]", got)
	}

	q.Advance(10 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("after 30ms got %v, expected [a b c]", got)
	}
	if q.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, expected 30ms", q.Now())
	}
}

func TestTaskQueueCancel(t *testing.T) {
	q := NewTaskQueue()
	fired := false
	tok := q.After(time.Second, func() { fired = true })

	if !q.Scheduled(tok) {
		t.Fatal("task should be scheduled")
	}
	if !q.Cancel(tok) {
		t.Error("Cancel should report a pending task")
	}
	if q.Cancel(tok) {
		t.Error("second Cancel should report false")
	}
	q.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled task ran")
	}
	if q.Cancel(0) {
		t.Error("zero token must not cancel anything")
	}
}

func TestTaskQueueSelfRearm(t *testing.T) {
	q := NewTaskQueue()
	var times []time.Duration
	var step func()
	step = func() {
		times = append(times, q.Now())
		if len(times) < 4 {
			q.After(100*time.Millisecond, step)
		}
	}
	q.After(100*time.Millisecond, step)

	// One large advance runs the whole chain at the right virtual times.
	q.Advance(time.Second)
	expected := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 400 * time.Millisecond}
	if !reflect.DeepEqual(times, expected) {
		t.Errorf("fire times = %v, expected %v", times, expected)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", q.Pending())
	}
}

func TestTaskQueueCancelFromTask(t *testing.T) {
	q := NewTaskQueue()
	fired := false
	var later Token
	q.After(10*time.Millisecond, func() { q.Cancel(later) })
	later = q.After(20*time.Millisecond, func() { fired = true })

	q.Advance(time.Second)
	if fired {
		t.Error("task cancelled by an earlier task still ran")
	}
}

func TestTaskQueueClear(t *testing.T) {
	q := NewTaskQueue()
	q.After(time.Millisecond, func() { t.Error("cleared task ran") })
	q.Clear()
	q.Advance(time.Second)
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", q.Pending())
	}
}
