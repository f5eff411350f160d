package audio

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/punch-escape/internal/core"
)

// Engine drives music and effects. Music is a self-rescheduling phrase
// player on the shared task queue: each step arms exactly one follow-up
// task, and the token of that task is the only handle needed to stop it.
// The engine is not safe for concurrent use; it runs on the game's thread.
type Engine struct {
	out    Output
	queue  *core.TaskQueue
	logger *log.Logger

	muted  bool
	want   bool // music requested (survives mute)
	mood   Mood
	phrase []int
	step   int
	cursor int
	timer  core.Token
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for swallowed output errors.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMuted starts the engine with music muted.
func WithMuted(m bool) Option {
	return func(e *Engine) { e.muted = m }
}

// NewEngine creates an engine rendering to out and scheduling on q.
func NewEngine(out Output, q *core.TaskQueue, opts ...Option) *Engine {
	if out == nil {
		out = Discard{}
	}
	e := &Engine{
		out:    out,
		queue:  q,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlayMusic stops any running phrase chain and starts mood at the current
// phrase cursor. While muted the mood is remembered and starts on unmute.
func (e *Engine) PlayMusic(m Mood) {
	spec, ok := moodTable[m]
	if !ok {
		spec, m = moodTable[MoodCalm], MoodCalm
	}
	e.StopMusic()
	e.want = true
	e.mood = m
	e.phrase = spec.phrases[e.cursor%len(spec.phrases)]
	e.cursor++
	if e.muted {
		return
	}
	e.startChain()
}

// StopMusic cancels the pending phrase step.
func (e *Engine) StopMusic() {
	e.want = false
	e.cancelChain()
}

// SetMuted mutes or unmutes music. Unmuting resumes the requested mood from
// the start of its current phrase; the phrase cursor is not touched.
func (e *Engine) SetMuted(m bool) {
	if e.muted == m {
		return
	}
	e.muted = m
	if m {
		e.cancelChain()
		return
	}
	if e.want && e.phrase != nil {
		e.startChain()
	}
}

// ToggleMute flips the music mute flag and returns the new value.
func (e *Engine) ToggleMute() bool {
	e.SetMuted(!e.muted)
	return e.muted
}

// Muted reports whether music is muted.
func (e *Engine) Muted() bool { return e.muted }

// Mood returns the last requested mood.
func (e *Engine) Mood() Mood { return e.mood }

// PhraseCursor returns the index of the next phrase to be chosen.
func (e *Engine) PhraseCursor() int { return e.cursor }

// Playing reports whether a phrase chain is scheduled.
func (e *Engine) Playing() bool { return e.queue.Scheduled(e.timer) }

// Effect plays a one-shot cue. Effects ignore mute.
func (e *Engine) Effect(s Sound) {
	for _, t := range effects[s] {
		e.emit(t)
	}
}

func (e *Engine) startChain() {
	e.step = 0
	e.next()
}

func (e *Engine) cancelChain() {
	e.queue.Cancel(e.timer)
	e.timer = 0
}

func (e *Engine) next() {
	if e.muted {
		return
	}
	spec := moodTable[e.mood]
	for _, t := range stepTones(spec, e.phrase, e.step) {
		e.emit(t)
	}
	e.step++
	if e.step < 2*len(e.phrase) {
		e.timer = e.queue.After(spec.tempo, e.next)
		return
	}
	mood := e.mood
	e.timer = e.queue.After(phraseRestart, func() { e.PlayMusic(mood) })
}

// emit sends one tone to the output. Output failures and panics are logged
// and dropped; sound never interrupts the game.
func (e *Engine) emit(t Tone) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("audio output panicked", "err", fmt.Sprint(r))
		}
	}()
	if err := e.out.PlayTone(t); err != nil {
		e.logger.Debug("audio output failed", "err", err)
	}
}
