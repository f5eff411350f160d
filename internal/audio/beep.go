package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// BeepOutput renders tones through the system speaker using a single mixer.
type BeepOutput struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volumes [2]float64 // per channel master volume
	closed  bool
}

// NewBeepOutput initialises the speaker. It fails when no audio device is
// available; callers fall back to Discard.
func NewBeepOutput(musicVolume, effectsVolume float64) (*BeepOutput, error) {
	b := &BeepOutput{
		rate:    defaultSampleRate,
		mixer:   &beep.Mixer{},
		volumes: [2]float64{musicVolume, effectsVolume},
	}
	if err := speaker.Init(b.rate, b.rate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	speaker.Play(b.mixer)
	return b, nil
}

// PlayTone implements Output.
func (b *BeepOutput) PlayTone(t Tone) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	s := b.streamer(t)
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close silences every pending voice.
func (b *BeepOutput) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.closed = true
}

func (b *BeepOutput) streamer(t Tone) beep.Streamer {
	vol := 1.0
	if int(t.Channel) < len(b.volumes) {
		vol = b.volumes[t.Channel]
	}
	return toneStreamer(t, b.rate, vol)
}

// toneStreamer builds the streamer for one tone: optional leading silence,
// the voice, and a master volume stage.
func toneStreamer(t Tone, rate beep.SampleRate, master float64) beep.Streamer {
	var s beep.Streamer = newVoice(t, rate)
	if t.Envelope == EnvelopeFlute && t.Wave != WaveNoise {
		over := t
		over.Freq = t.Freq * 2.01
		over.Volume = t.Volume * 0.09
		over.Duration = scaleDur(t.Duration, 0.6)
		over.Envelope = EnvelopePluck
		s = beep.Mix(s, newVoice(over, rate))
	}
	if t.Delay > 0 {
		s = beep.Seq(beep.Silence(rate.N(t.Delay)), s)
	}
	return newVolume(s, master)
}

// voice is an oscillator with its gain envelope baked in.
type voice struct {
	tone   Tone
	rate   beep.SampleRate
	total  int
	pos    int
	phase  float64
	lp, bp float64 // noise band-pass state
}

func newVoice(t Tone, rate beep.SampleRate) *voice {
	return &voice{tone: t, rate: rate, total: rate.N(t.Duration)}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for i := range samples {
		if v.pos >= v.total {
			return i, true
		}
		x := v.sample() * v.gain()
		samples[i][0] = x
		samples[i][1] = x
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

func (v *voice) sample() float64 {
	t := v.tone
	if t.Wave == WaveNoise {
		// state-variable band-pass around the centre frequency
		f := 2 * math.Sin(math.Pi*math.Min(t.Freq, float64(v.rate)/6)/float64(v.rate))
		in := rand.Float64()*2 - 1
		hp := in - v.lp - 0.7*v.bp
		v.bp += f * hp
		v.lp += f * v.bp
		return v.bp
	}

	freq := t.Freq
	if t.Envelope == EnvelopeFlute {
		// slight upward drift then settle, as a breath would
		p := float64(v.pos) / float64(v.total)
		switch {
		case p < 0.4:
			freq *= 1 + 0.005*p/0.4
		case p < 0.85:
			freq *= 1.005 - 0.008*(p-0.4)/0.45
		default:
			freq *= 0.997
		}
	}

	var x float64
	switch t.Wave {
	case WaveSquare:
		if v.phase < 0.5 {
			x = 1
		} else {
			x = -1
		}
	case WaveSaw:
		x = 2 * (v.phase - 0.5)
	case WaveTriangle:
		x = 4*math.Abs(v.phase-0.5) - 1
	default:
		x = math.Sin(2 * math.Pi * v.phase)
	}
	v.phase += freq / float64(v.rate)
	v.phase -= math.Floor(v.phase)
	return x
}

// gain returns the envelope value at the current position.
func (v *voice) gain() float64 {
	t := v.tone
	sec := float64(v.pos) / float64(v.rate)
	dur := t.Duration.Seconds()
	if dur <= 0 {
		return 0
	}
	const floor = 0.0001

	attack, hold, peak := 0.015, 0.0, t.Volume
	if t.Envelope == EnvelopeFlute {
		attack, hold, peak = 0.03, dur*0.6, t.Volume*0.85
	}
	switch {
	case sec < attack:
		return t.Volume * sec / attack
	case sec < hold:
		return t.Volume + (peak-t.Volume)*(sec-attack)/(hold-attack)
	}
	start := math.Max(attack, hold)
	if dur <= start {
		return peak
	}
	// exponential ramp from peak to floor over the remaining time
	r := (sec - start) / (dur - start)
	return peak * math.Pow(floor/math.Max(peak, floor), r)
}

// newVolume wraps s in a volume stage; zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
