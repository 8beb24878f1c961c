// Package audio plays short feedback cues through the system speaker.
// Every operation is safe without an audio device, the renderer runs silent.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/raycaster/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cue owns a mixer feeding the speaker and rate-limits the bump sound
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	gap         time.Duration
	last        time.Time
	now         func() time.Time
}

// NewCue creates an uninitialized cue player
func NewCue() *Cue {
	return &Cue{
		mixer: &beep.Mixer{},
		gap:   parameter.BumpSoundGap,
		now:   time.Now,
	}
}

// Init opens the speaker, repeated calls are no-ops
func (c *Cue) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Bump queues a thud unless one played within the gap
// Returns false when skipped or when audio is not initialized
func (c *Cue) Bump() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return false
	}
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < c.gap {
		return false
	}
	c.last = now

	sound, err := bumpSound()
	if err != nil {
		return false
	}
	speaker.Lock()
	c.mixer.Add(sound)
	speaker.Unlock()
	return true
}

// Close silences pending cues
// beep has no speaker shutdown that tolerates re-init, clearing the mixer is enough
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}
