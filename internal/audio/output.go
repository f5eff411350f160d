// Package audio implements the runner's procedural sound: a mood-driven
// music sequencer and one-shot effects, both rendered as synthesized tones
// through a pluggable Output.
package audio

import "time"

// Channel separates music from effects. Only music honours mute.
type Channel int

const (
	ChannelMusic Channel = iota
	ChannelEffects
)

// Waveform is the oscillator shape of a tone.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise // band-limited noise burst centred on Freq
)

// Envelope is the gain shape applied over a tone's duration.
type Envelope int

const (
	// EnvelopePluck ramps up in 15ms then decays exponentially.
	EnvelopePluck Envelope = iota
	// EnvelopeFlute has a soft 30ms attack, a slight sag at 60% and a
	// breathy pitch drift plus a quiet overtone.
	EnvelopeFlute
)

// Tone is one scheduled voice.
type Tone struct {
	Channel  Channel
	Wave     Waveform
	Envelope Envelope
	Freq     float64       // Hz; band centre for noise
	Duration time.Duration // audible length
	Delay    time.Duration // offset from now
	Volume   float64       // peak gain, 0..1
}

// Output renders tones. Implementations must not block for the length of
// the tone; they schedule it and return.
type Output interface {
	PlayTone(t Tone) error
}

// Discard is an Output that drops every tone.
type Discard struct{}

// PlayTone implements Output.
func (Discard) PlayTone(Tone) error { return nil }
