package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/raycaster/parameter"
)

// ThudGenerator generates a short low thump with a falling pitch and exponential decay
// Streams exactly the configured number of samples, then reports drained
type ThudGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
	phase   float64
}

// NewThudGenerator creates a thud at base frequency freq lasting d
func NewThudGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ThudGenerator {
	return &ThudGenerator{
		sr:      sr,
		freq:    freq,
		samples: sr.N(d),
	}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		progress := float64(g.pos) / float64(g.samples)

		// Pitch falls to half over the cue, amplitude decays toward silence
		freq := g.freq * (1 - 0.5*progress)
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		amplitude := math.Exp(-5 * progress)

		// Short attack avoids a click on the first sample
		if attack := float64(g.pos) / (float64(g.sr) * 0.004); attack < 1 {
			amplitude *= attack
		}

		sample := amplitude * (0.8*math.Sin(g.phase) + 0.2*math.Sin(2*g.phase))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// newVolume scales a stream linearly
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// bumpSound layers a short sine click over the thud
func bumpSound() (beep.Streamer, error) {
	thud := NewThudGenerator(sampleRate, parameter.BumpSoundFrequency, parameter.BumpSoundDuration)
	sine, err := generators.SineTone(sampleRate, parameter.BumpClickFrequency)
	if err != nil {
		return nil, err
	}
	click := beep.Take(sampleRate.N(parameter.BumpClickDuration), sine)
	return beep.Mix(
		newVolume(thud, parameter.BumpSoundVolume),
		newVolume(click, parameter.BumpClickVolume),
	), nil
}
