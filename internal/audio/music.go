package audio

import (
	"fmt"
	"time"
)

// Mood selects the scale, phrases and tempo of the music.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodTense   Mood = "tense"
	MoodDark    Mood = "dark"
	MoodIntense Mood = "intense"
	MoodEnd     Mood = "end"
)

// Moods lists every mood in escalating order.
var Moods = []Mood{MoodCalm, MoodTense, MoodDark, MoodIntense, MoodEnd}

// ParseMood validates a mood name.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if _, ok := moodTable[m]; !ok {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// Label is the human-readable description shown with a level intro.
func (m Mood) Label() string {
	return moodTable[m].label
}

// Tempo is the interval between phrase steps.
func (m Mood) Tempo() time.Duration {
	return moodTable[m].tempo
}

type moodSpec struct {
	scale   []float64
	phrases [][]int
	tempo   time.Duration
	label   string
}

// Pentatonic-flavoured scales, ten degrees each.
var moodTable = map[Mood]moodSpec{
	MoodCalm: {
		scale: []float64{293.66, 329.63, 369.99, 440, 493.88, 587.33, 659.25, 739.99, 880, 987.77},
		phrases: [][]int{
			{4, 6, 7, 6, 4, 2, 0, 2, 4, 2, 0, 4, 6, 4, 2, 0},
			{0, 2, 4, 2, 0, 4, 6, 7, 6, 4, 2, 4, 6, 4, 2, 0},
		},
		tempo: 500 * time.Millisecond,
		label: "Peaceful flute",
	},
	MoodTense: {
		scale: []float64{329.63, 392, 440, 493.88, 587.33, 659.25, 783.99, 880, 987.77, 1174.66},
		phrases: [][]int{
			{2, 4, 5, 7, 5, 4, 2, 0, 4, 5, 7, 5, 4, 2, 5, 4},
			{0, 2, 4, 5, 4, 2, 0, 4, 5, 7, 5, 4, 2, 0, 4, 2},
		},
		tempo: 400 * time.Millisecond,
		label: "Tense flute",
	},
	MoodDark: {
		scale: []float64{246.94, 277.18, 329.63, 369.99, 415.3, 493.88, 554.37, 659.25, 739.99, 830.61},
		phrases: [][]int{
			{3, 1, 0, 2, 4, 3, 1, 3, 5, 4, 3, 1, 0, 2, 4, 3},
			{5, 4, 3, 1, 0, 3, 5, 4, 3, 1, 3, 5, 7, 5, 3, 1},
		},
		tempo: 340 * time.Millisecond,
		label: "Dark & mysterious",
	},
	MoodIntense: {
		scale: []float64{329.63, 392, 466.16, 554.37, 622.25, 698.46, 830.61, 932.33, 1108.73, 1244.51},
		phrases: [][]int{
			{4, 6, 8, 9, 8, 6, 4, 6, 8, 9, 8, 6, 4, 3, 6, 8},
			{8, 9, 8, 6, 4, 6, 8, 6, 4, 3, 4, 6, 8, 9, 8, 6},
		},
		tempo: 220 * time.Millisecond,
		label: "Danger flute",
	},
	MoodEnd: {
		scale: []float64{261.63, 293.66, 329.63, 392, 440, 523.25, 587.33, 659.25, 783.99, 880},
		phrases: [][]int{
			{0, 2, 4, 6, 7, 6, 4, 2, 4, 6, 7, 6, 4, 2, 0, 2},
		},
		tempo: 560 * time.Millisecond,
		label: "Peaceful reprise",
	},
}

// phraseRestart is the pause after a phrase has played twice.
const phraseRestart = 260 * time.Millisecond

// stepTones returns the voices for one phrase step.
func stepTones(spec moodSpec, phrase []int, step int) []Tone {
	idx := phrase[step%len(phrase)]
	if idx >= len(spec.scale) {
		idx = len(spec.scale) - 1
	}
	freq := spec.scale[idx]
	tempo := spec.tempo

	tones := []Tone{flute(freq, scaleDur(tempo, 0.85), 0.15, 0)}
	if step%4 == 0 {
		tones = append(tones, flute(freq*0.5, scaleDur(tempo, 2.5), 0.06, 0))
	}
	if step%9 == 3 {
		hi := spec.scale[(idx+5)%len(spec.scale)] * 2
		tones = append(tones, flute(hi, scaleDur(tempo, 0.28), 0.03, scaleDur(tempo, 0.3)))
	}
	return tones
}

func flute(freq float64, dur time.Duration, vol float64, delay time.Duration) Tone {
	return Tone{
		Channel:  ChannelMusic,
		Wave:     WaveSine,
		Envelope: EnvelopeFlute,
		Freq:     freq,
		Duration: dur,
		Delay:    delay,
		Volume:   vol,
	}
}

func scaleDur(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
