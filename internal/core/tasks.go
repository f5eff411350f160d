package core

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled task so it can be cancelled.
// The zero Token never refers to a task.
type Token uint64

// TaskQueue is a deferred-task queue running on a virtual clock. The owner
// advances the clock explicitly (once per frame in the game, by hand in tests)
// and due tasks run synchronously inside Advance, so no callback ever runs
// concurrently with the frame update.
type TaskQueue struct {
	now   time.Duration
	seq   uint64
	items taskHeap
	live  map[Token]*task
}

type task struct {
	at    time.Duration
	seq   uint64
	token Token
	fn    func()
	index int
}

// NewTaskQueue creates an empty queue with its clock at zero.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{live: make(map[Token]*task)}
}

// Now returns the current virtual time. While a task runs, Now is that
// task's fire time.
func (q *TaskQueue) Now() time.Duration {
	return q.now
}

// After schedules fn to run d after the current virtual time.
// Negative delays are treated as zero.
func (q *TaskQueue) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	q.seq++
	t := &task{at: q.now + d, seq: q.seq, token: Token(q.seq), fn: fn}
	heap.Push(&q.items, t)
	q.live[t.token] = t
	return t.token
}

// Cancel removes a pending task. It reports whether the task was still pending.
func (q *TaskQueue) Cancel(tok Token) bool {
	t, ok := q.live[tok]
	if !ok {
		return false
	}
	heap.Remove(&q.items, t.index)
	delete(q.live, tok)
	return true
}

// Advance moves the clock forward by d, running every task that falls due in
// (fire time, scheduling order). Tasks scheduled by a running task also run
// if they fall due inside the window.
func (q *TaskQueue) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	end := q.now + d
	for len(q.items) > 0 && q.items[0].at <= end {
		t := heap.Pop(&q.items).(*task)
		delete(q.live, t.token)
		q.now = t.at
		t.fn()
	}
	q.now = end
}

// Pending returns the number of scheduled tasks.
func (q *TaskQueue) Pending() int {
	return len(q.items)
}

// Scheduled reports whether tok refers to a pending task.
func (q *TaskQueue) Scheduled(tok Token) bool {
	_, ok := q.live[tok]
	return ok
}

// Clear drops every pending task without running it.
func (q *TaskQueue) Clear() {
	q.items = q.items[:0]
	for k := range q.live {
		delete(q.live, k)
	}
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
