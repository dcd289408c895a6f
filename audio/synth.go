package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// newVolume scales s linearly; zero or less is silent
// math.Log2(0) is -Inf so zero maps to Silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// PadGenerator is an endless ambient chord that slowly breathes
type PadGenerator struct {
	sr    beep.SampleRate
	pos   int
	freqs []float64
}

// NewPadGenerator creates a pad over an A minor add9 voicing
func NewPadGenerator(sr beep.SampleRate) *PadGenerator {
	return &PadGenerator{sr: sr, freqs: []float64{110, 164.81, 220, 261.63, 493.88}}
}

func (g *PadGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		for k, f := range g.freqs {
			// Each voice swells on its own slow cycle
			lfo := 0.6 + 0.4*math.Sin(2*math.Pi*t/(7+float64(k)*3))
			sample += lfo * math.Sin(2*math.Pi*f*t)
		}
		sample *= 0.12

		// Slight detune on the right channel widens the image
		right := sample * (0.9 + 0.1*math.Sin(2*math.Pi*0.13*t))
		samples[i][0] = sample
		samples[i][1] = right
		g.pos++
	}
	return len(samples), true
}

func (g *PadGenerator) Err() error {
	return nil
}

// decay fades a stream exponentially
type decay struct {
	streamer beep.Streamer
	sr       beep.SampleRate
	rate     float64
	gain     float64
	pos      int
}

func newDecay(s beep.Streamer, sr beep.SampleRate, rate, gain float64) *decay {
	return &decay{streamer: s, sr: sr, rate: rate, gain: gain}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := d.gain * math.Exp(-float64(d.pos)/float64(d.sr)*d.rate)
		samples[i][0] *= env
		samples[i][1] *= env
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// NoiseBurst is white noise with a fast exponential tail
type NoiseBurst struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewNoiseBurst creates a burst seeded deterministically
func NewNoiseBurst(sr beep.SampleRate, seed int64) *NoiseBurst {
	return &NoiseBurst{sr: sr, seed: seed}
}

func (g *NoiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 14)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		sample := 0.35 * envelope * noise
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurst) Err() error {
	return nil
}

// shatterPartials are the ringing glass frequencies and their decay rates
var shatterPartials = []struct{ freq, rate, gain float64 }{
	{2093, 9, 0.18},
	{3136, 12, 0.14},
	{4186, 16, 0.12},
	{5274, 20, 0.08},
}

// ShatterDuration is the length of the synthesized glass burst
const ShatterDuration = 700 * time.Millisecond

// NewShatterSound returns a finite synthesized glass break
func NewShatterSound(sr beep.SampleRate, seed int64) beep.Streamer {
	parts := []beep.Streamer{NewNoiseBurst(sr, seed)}
	for _, p := range shatterPartials {
		tone, err := generators.SineTone(sr, p.freq)
		if err != nil {
			// Partial above Nyquist for this rate
			continue
		}
		parts = append(parts, newDecay(tone, sr, p.rate, p.gain))
	}
	return beep.Take(sr.N(ShatterDuration), beep.Mix(parts...))
}
