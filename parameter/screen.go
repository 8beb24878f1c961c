package parameter

import "time"

// Screen resolution presets
// Base is 160x120, scaled by the resolution factor with the pixel scale shrinking to keep
// the window size constant
const (
	ScreenBaseWidth  = 160
	ScreenBaseHeight = 120

	// ScreenResolution is the default preset factor (1, 2 or 4)
	ScreenResolution = 2

	// PixelScaleBase divided by the resolution factor gives window pixels per buffer pixel
	PixelScaleBase = 4
)

// Frame pacing
const (
	// FrameRate targets 30 frames per second for terminal and stream presenters
	FrameRate   = 30
	FramePeriod = time.Second / FrameRate

	// WindowTPS is the ebiten update rate
	WindowTPS = 60
)
