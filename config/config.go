// Package config loads the renderer settings from TOML over built-in defaults
// and turns them into the collaborators the frame loop needs.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/raycaster/parameter"
)

// ErrInvalidConfig marks settings that cannot produce a renderer
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full settings tree
type Config struct {
	Screen ScreenConfig      `toml:"screen"`
	Camera CameraConfig      `toml:"camera"`
	Motion MotionConfig      `toml:"motion"`
	Render RenderConfig      `toml:"render"`
	Map    MapConfig         `toml:"map"`
	Audio  AudioConfig       `toml:"audio"`
	Serve  ServeConfig       `toml:"serve"`
	Keys   map[string]string `toml:"keys"`
}

// ScreenConfig sizes the pixel buffer
// Width and Height override the resolution preset when both are set
type ScreenConfig struct {
	Resolution int `toml:"resolution"`
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	PixelScale int `toml:"pixel_scale"`
	FrameRate  int `toml:"frame_rate"`
}

// CameraConfig holds projection and eye settings
// FOV is in degrees, MaxRange in cells
type CameraConfig struct {
	FOV       float64 `toml:"fov"`
	MaxRange  float64 `toml:"max_range"`
	MaxSteps  int     `toml:"max_steps"`
	Workers   int     `toml:"workers"`
	EyeHeight float64 `toml:"eye_height"` // fraction of the wall height
}

// MotionConfig tunes the integrator
// Speeds are cells per second and Radius a fraction of a cell, so maps of any cell size feel alike
// Rates are degrees per second
type MotionConfig struct {
	ForwardSpeed  float64       `toml:"forward_speed"`
	BackwardSpeed float64       `toml:"backward_speed"`
	StrafeSpeed   float64       `toml:"strafe_speed"`
	TurnRate      float64       `toml:"turn_rate"`
	LookRate      float64       `toml:"look_rate"`
	Radius        float64       `toml:"radius"`
	MaxDelta      time.Duration `toml:"max_delta"`
	KeyHold       time.Duration `toml:"key_hold"`
}

// RenderConfig holds colours as "#rrggbb" strings and lighting factors
type RenderConfig struct {
	Ceiling   string            `toml:"ceiling"`
	Floor     string            `toml:"floor"`
	Horizon   string            `toml:"horizon"`
	Gradient  bool              `toml:"gradient"`
	SideShade float64           `toml:"side_shade"`
	Falloff   float64           `toml:"falloff"`
	MinLight  float64           `toml:"min_light"`
	Palette   map[string]string `toml:"palette"` // surface id → colour
}

// MapConfig selects the map source: File, then Rows, then a generated maze, then the built-in arena
type MapConfig struct {
	File     string     `toml:"file"`
	Rows     []string   `toml:"rows"`
	CellSize float64    `toml:"cell_size"`
	Yaw      *int       `toml:"yaw"` // overrides the spawn heading
	Maze     MazeConfig `toml:"maze"`
}

// MazeConfig enables procedural maps when Width and Height are set
type MazeConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Braiding float64 `toml:"braiding"`
	Surfaces int     `toml:"surfaces"`
	Seed     int64   `toml:"seed"`
}

// AudioConfig toggles the collision cue
type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

// ServeConfig configures the stream server
type ServeConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxSessions    int      `toml:"max_sessions"`
}

// Default returns settings that render the built-in arena
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Resolution: parameter.ScreenResolution,
			FrameRate:  parameter.FrameRate,
		},
		Camera: CameraConfig{
			FOV:       parameter.FieldOfView,
			MaxRange:  parameter.MaxRayRange / parameter.CellSize,
			Workers:   parameter.RayWorkers,
			EyeHeight: parameter.EyeHeightRatio,
		},
		Motion: MotionConfig{
			ForwardSpeed:  parameter.PlayerForwardSpeed / parameter.CellSize,
			BackwardSpeed: parameter.PlayerBackwardSpeed / parameter.CellSize,
			StrafeSpeed:   parameter.PlayerStrafeSpeed / parameter.CellSize,
			TurnRate:      parameter.PlayerTurnRate,
			LookRate:      parameter.PlayerLookRate,
			Radius:        parameter.PlayerRadius / parameter.CellSize,
			MaxDelta:      parameter.MaxFrameDelta,
			KeyHold:       parameter.KeyHold,
		},
		Render: RenderConfig{
			Ceiling:   "#282c40",
			Floor:     "#483c30",
			Horizon:   "#101014",
			Gradient:  true,
			SideShade: 0.7,
			Falloff:   0.004,
			MinLight:  0.15,
		},
		Map: MapConfig{
			CellSize: parameter.CellSize,
		},
		Audio: AudioConfig{Enabled: true},
		Serve: ServeConfig{
			Addr:           parameter.StreamDefaultAddr,
			AllowedOrigins: []string{"*"},
			MaxSessions:    parameter.StreamMaxSessions,
		},
	}
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML file, an empty path returns the defaults
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config read: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the builders cannot repair
func (c Config) Validate() error {
	s := c.Screen
	if s.Width != 0 || s.Height != 0 {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, s.Width, s.Height)
		}
	} else {
		switch s.Resolution {
		case 1, 2, 4:
		default:
			return fmt.Errorf("%w: resolution %d not one of 1, 2, 4", ErrInvalidConfig, s.Resolution)
		}
	}
	if s.PixelScale < 0 {
		return fmt.Errorf("%w: pixel scale %d", ErrInvalidConfig, s.PixelScale)
	}
	if s.FrameRate <= 0 || s.FrameRate > 240 {
		return fmt.Errorf("%w: frame rate %d outside 1..240", ErrInvalidConfig, s.FrameRate)
	}
	if c.Map.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %.2f", ErrInvalidConfig, c.Map.CellSize)
	}
	if c.Camera.EyeHeight <= 0 || c.Camera.EyeHeight >= 1 {
		return fmt.Errorf("%w: eye height %.2f must lie inside (0,1)", ErrInvalidConfig, c.Camera.EyeHeight)
	}
	if c.Motion.Radius < 0 || c.Motion.Radius >= 0.5 {
		return fmt.Errorf("%w: radius %.2f must lie inside [0,0.5)", ErrInvalidConfig, c.Motion.Radius)
	}
	if c.Camera.MaxRange <= 0 {
		return fmt.Errorf("%w: max range %.2f", ErrInvalidConfig, c.Camera.MaxRange)
	}
	if c.Motion.KeyHold < 0 {
		return fmt.Errorf("%w: key hold %v", ErrInvalidConfig, c.Motion.KeyHold)
	}
	if c.Map.Maze.Braiding < 0 || c.Map.Maze.Braiding > 1 {
		return fmt.Errorf("%w: braiding %.2f outside [0,1]", ErrInvalidConfig, c.Map.Maze.Braiding)
	}
	if c.Serve.MaxSessions < 0 {
		return fmt.Errorf("%w: max sessions %d", ErrInvalidConfig, c.Serve.MaxSessions)
	}
	for _, hex := range []string{c.Render.Ceiling, c.Render.Floor, c.Render.Horizon} {
		if _, err := parseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the buffer dimensions and the window pixel scale
// Presets are 160x120 times the resolution factor, scaled by 4/resolution
func (c Config) Size() (width, height, scale int) {
	s := c.Screen
	if s.Width > 0 && s.Height > 0 {
		width, height = s.Width, s.Height
		scale = 1
	} else {
		width = parameter.ScreenBaseWidth * s.Resolution
		height = parameter.ScreenBaseHeight * s.Resolution
		scale = max(parameter.PixelScaleBase/max(s.Resolution, 1), 1)
	}
	if s.PixelScale > 0 {
		scale = s.PixelScale
	}
	return width, height, scale
}

// FramePeriod returns the tick interval
func (c Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.Screen.FrameRate)
}
