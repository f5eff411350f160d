package audio

import "time"

// Sound is a one-shot gameplay cue.
type Sound int

const (
	SoundJump Sound = iota
	SoundDoubleJump
	SoundSlide
	SoundHit
	SoundPass
	SoundGem
	SoundRareGem
	SoundInvincibility
	SoundMagnet
	SoundLevelUp
	SoundDeath
	SoundWin
	SoundCountdown
	SoundGo
	SoundTutorialPing
	SoundDebugToggle
	SoundPowerOff
)

var soundNames = [...]string{
	"jump", "double-jump", "slide", "hit", "pass", "gem", "rare-gem",
	"invincibility", "magnet", "level-up", "death", "win", "countdown",
	"go", "tutorial-ping", "debug-toggle", "power-off",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func fx(freq float64, wave Waveform, dur time.Duration, vol float64, delay time.Duration) Tone {
	return Tone{Channel: ChannelEffects, Wave: wave, Envelope: EnvelopePluck, Freq: freq, Duration: dur, Volume: vol, Delay: delay}
}

func noise(dur time.Duration, vol, centre float64) Tone {
	return Tone{Channel: ChannelEffects, Wave: WaveNoise, Envelope: EnvelopePluck, Freq: centre, Duration: dur, Volume: vol}
}

// arpeggio plays freqs one after another, step apart.
func arpeggio(freqs []float64, dur time.Duration, vol float64, step time.Duration) []Tone {
	out := make([]Tone, len(freqs))
	for i, f := range freqs {
		out[i] = fx(f, WaveSine, dur, vol, time.Duration(i)*step)
	}
	return out
}

// effects maps every cue to its voices.
var effects = map[Sound][]Tone{
	SoundJump: {
		fx(440, WaveSine, ms(120), 0.22, 0),
		fx(587, WaveSine, ms(80), 0.14, ms(70)),
		noise(ms(50), 0.08, 1200),
	},
	SoundDoubleJump: {
		fx(660, WaveSine, ms(100), 0.26, 0),
		fx(880, WaveSine, ms(100), 0.2, ms(70)),
		fx(1047, WaveSine, ms(80), 0.16, ms(140)),
	},
	SoundSlide: {
		noise(ms(120), 0.22, 600),
		fx(200, WaveSine, ms(100), 0.08, 0),
	},
	SoundHit: {
		fx(150, WaveSquare, ms(180), 0.28, 0),
		fx(100, WaveSaw, ms(160), 0.22, ms(60)),
		fx(340, WaveSine, ms(70), 0.12, ms(150)),
		fx(260, WaveSine, ms(100), 0.1, ms(220)),
	},
	SoundPass: {
		noise(ms(50), 0.07, 500),
	},
	SoundGem: {
		fx(880, WaveSine, ms(70), 0.2, 0),
		fx(1047, WaveSine, ms(90), 0.16, ms(60)),
	},
	SoundRareGem:       arpeggio([]float64{784, 1047, 1319, 1568}, ms(280), 0.18, ms(90)),
	SoundInvincibility: arpeggio([]float64{523, 659, 784, 1047, 1319}, ms(220), 0.2, ms(80)),
	SoundMagnet: {
		fx(440, WaveTriangle, ms(120), 0.18, 0),
		fx(660, WaveTriangle, ms(100), 0.14, ms(80)),
		fx(880, WaveSine, ms(100), 0.12, ms(160)),
	},
	SoundLevelUp: arpeggio([]float64{392, 523, 659, 784, 1047}, ms(240), 0.22, ms(110)),
	SoundDeath: {
		fx(280, WaveSquare, ms(100), 0.25, 0),
		fx(180, WaveSquare, ms(150), 0.22, ms(100)),
		fx(100, WaveSaw, ms(280), 0.28, ms(220)),
	},
	SoundWin:       arpeggio([]float64{523, 659, 784, 1047, 784, 1047, 1319, 1047, 784, 1319}, ms(300), 0.22, ms(160)),
	SoundCountdown: {fx(440, WaveTriangle, ms(200), 0.28, 0)},
	SoundGo: {
		fx(660, WaveSine, ms(150), 0.3, 0),
		fx(880, WaveSine, ms(200), 0.25, ms(120)),
	},
	SoundTutorialPing: {fx(880, WaveSine, ms(100), 0.18, 0)},
	SoundDebugToggle: {
		fx(1568, WaveSquare, ms(60), 0.1, 0),
		fx(1319, WaveSquare, ms(60), 0.1, ms(70)),
	},
	SoundPowerOff: arpeggio([]float64{1047, 784, 523}, ms(140), 0.16, ms(90)),
}

// Voices returns a copy of the tones played for a cue.
func Voices(s Sound) []Tone {
	v := effects[s]
	out := make([]Tone, len(v))
	copy(out, v)
	return out
}
