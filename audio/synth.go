package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer of one wave shape that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over duration; the stream ends at duration even if s continues
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; zero or negative volume is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped oscillator voice
type note struct {
	wave    WaveType
	freq    float64
	dur     time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	var src beep.Streamer
	if n.wave == WaveSine {
		// Tone generator is exact for pure sines; it rejects frequencies above Nyquist
		if tone, err := generators.SineTone(rate, n.freq); err == nil {
			src = beep.Take(rate.N(n.dur), tone)
		}
	}
	if src == nil {
		src = NewOscillator(n.freq, n.dur, n.wave, rate)
	}
	gain := n.gain
	if gain == 0 {
		gain = 1
	}
	return newVolume(NewEnvelope(src, n.dur, n.attack, n.release, rate), gain)
}

// layer is a chord of notes played together; a cue is a sequence of layers
type layer []note

var cueLayers = [cueCount][]layer{
	CueShot: {
		{{wave: WaveSquare, freq: 660, dur: 40 * time.Millisecond, attack: 2 * time.Millisecond, release: 30 * time.Millisecond}},
	},
	CueHit: {
		{{wave: WaveSaw, freq: 110, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond}},
	},
	CueDeath: {
		{{wave: WaveNoise, dur: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.6}},
	},
	CueExplosion: {
		{
			{wave: WaveNoise, dur: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 350 * time.Millisecond, gain: 0.7},
			{wave: WaveSine, freq: 60, dur: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.5},
		},
	},
	CuePickup: {
		{{wave: WaveSine, freq: 1318.51, dur: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond}},
	},
	CueLevelUp: {
		{{wave: WaveSine, freq: 523.25, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond}},
		{{wave: WaveSine, freq: 659.25, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond}},
		{{wave: WaveSine, freq: 783.99, dur: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 120 * time.Millisecond}},
	},
	CueHeal: {
		{
			{wave: WaveSine, freq: 880, dur: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 250 * time.Millisecond, gain: 0.7},
			{wave: WaveSine, freq: 1760, dur: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.3},
		},
	},
	CueBoss: {
		{{wave: WaveSaw, freq: 55, dur: 600 * time.Millisecond, attack: 50 * time.Millisecond, release: 300 * time.Millisecond}},
	},
	CueRest: {
		{{wave: WaveSine, freq: 392, dur: 200 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond}},
		{{wave: WaveSine, freq: 261.63, dur: 300 * time.Millisecond, attack: 10 * time.Millisecond, release: 200 * time.Millisecond}},
	},
	CueGameOver: {
		{{wave: WaveSquare, freq: 392, dur: 200 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.6}},
		{{wave: WaveSquare, freq: 311.13, dur: 200 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.6}},
		{{wave: WaveSquare, freq: 196, dur: 500 * time.Millisecond, attack: 5 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.6}},
	},
}

// Build returns a finite streamer for c at the configured volume, nil for unknown cues
func Build(c Cue, cfg Config) beep.Streamer {
	if c < 0 || c >= cueCount {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)

	parts := make([]beep.Streamer, 0, len(cueLayers[c]))
	for _, l := range cueLayers[c] {
		voices := make([]beep.Streamer, len(l))
		for i, n := range l {
			voices[i] = n.streamer(rate)
		}
		if len(voices) == 1 {
			parts = append(parts, voices[0])
			continue
		}
		// Bound the chord by its longest voice
		longest := time.Duration(0)
		for _, n := range l {
			longest = max(longest, n.dur)
		}
		parts = append(parts, beep.Take(rate.N(longest), beep.Mix(voices...)))
	}
	return newVolume(beep.Seq(parts...), cfg.Volumes[c]*cfg.MasterVolume)
}

// Length is the cue's duration in samples at rate
func Length(c Cue, rate beep.SampleRate) int {
	if c < 0 || c >= cueCount {
		return 0
	}
	total := 0
	for _, l := range cueLayers[c] {
		longest := time.Duration(0)
		for _, n := range l {
			longest = max(longest, n.dur)
		}
		total += rate.N(longest)
	}
	return total
}
