package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 50 * time.Millisecond
)

// Bump Sound
const (
	BumpSoundDuration  = 90 * time.Millisecond
	BumpSoundFrequency = 70.0
	BumpSoundVolume    = 0.5

	// Contact click layered over the start of the thud
	BumpClickDuration  = 12 * time.Millisecond
	BumpClickFrequency = 880
	BumpClickVolume    = 0.15

	// BumpSoundGap rate-limits the cue while the player grinds along a wall
	BumpSoundGap = 250 * time.Millisecond
)
