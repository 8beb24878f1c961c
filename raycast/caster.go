// Package raycast casts one ray per screen column through the grid and reports
// fisheye-corrected wall distances.
package raycast

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/raycaster/parameter"
	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/vmath"
	"github.com/lixenwraith/raycaster/world"
)

// ErrInvalidConfig marks an unusable caster configuration
var ErrInvalidConfig = errors.New("invalid raycast config")

// HitAxis identifies which family of grid lines a ray crossed to reach its wall
type HitAxis uint8

const (
	AxisX HitAxis = iota // vertical line x = k, a west or east face
	AxisY                // horizontal line y = k, a north or south face
)

func (a HitAxis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// RayHit is the result of one column's cast
// Distance is perpendicular (fisheye corrected), Raw is along the ray
// A miss has Hit=false and both distances at MaxRange
type RayHit struct {
	Distance float64
	Raw      float64
	Surface  world.Cell
	Axis     HitAxis
	Hit      bool
	Offset   float64 // column angle relative to yaw, degrees
	WallX    float64 // hit position along the face in [0,1)
	CellX    int
	CellY    int
}

// Config bounds a cast
type Config struct {
	FOV      float64 // horizontal field of view, degrees
	MaxRange float64 // world units
	MaxSteps int     // grid lines crossed before giving up, 0 derives from the grid
	Workers  int     // concurrent column ranges in CastAll, <=1 is serial
}

// DefaultConfig returns the camera parameters
func DefaultConfig() Config {
	return Config{
		FOV:      parameter.FieldOfView,
		MaxRange: parameter.MaxRayRange,
		Workers:  parameter.RayWorkers,
	}
}

// Validate rejects non-positive field of view or range
func (c Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %.2f outside (0,180)", ErrInvalidConfig, c.FOV)
	case c.MaxRange <= 0:
		return fmt.Errorf("%w: max range %.2f", ErrInvalidConfig, c.MaxRange)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: max steps %d", ErrInvalidConfig, c.MaxSteps)
	}
	return nil
}

// Caster holds the validated configuration and the trig table
// Stateless between calls, safe for concurrent use
type Caster struct {
	cfg  Config
	trig *vmath.TrigTable
}

// New validates cfg, a nil table uses vmath.DefaultTrig
func New(cfg Config, trig *vmath.TrigTable) (*Caster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trig == nil {
		trig = vmath.DefaultTrig
	}
	return &Caster{cfg: cfg, trig: trig}, nil
}

// Config returns the caster configuration
func (c *Caster) Config() Config { return c.cfg }

// Cast marches a single ray from (ox, oy) at angleDeg (0 = +Y, clockwise)
// Returns the euclidean distance in both Raw and Distance
func (c *Caster) Cast(g *world.Grid, ox, oy, angleDeg float64) RayHit {
	dx, dy := c.trig.SinDeg(angleDeg), c.trig.CosDeg(angleDeg)
	hit := march(g, ox, oy, dx, dy, c.cfg.MaxRange, c.maxSteps(g))
	hit.Distance = hit.Raw
	return hit
}

// ColumnOffset maps a column to its angle relative to yaw
// Column 0 is -FOV/2, the last column +FOV/2, a single column looks straight ahead
func (c *Caster) ColumnOffset(col, width int) float64 {
	if width <= 1 {
		return 0
	}
	return -c.cfg.FOV/2 + c.cfg.FOV*float64(col)/float64(width-1)
}

// CastColumn casts one screen column and corrects for fisheye distortion
func (c *Caster) CastColumn(g *world.Grid, s player.State, col, width int) RayHit {
	offset := c.ColumnOffset(col, width)
	hit := c.Cast(g, s.X(), s.Y(), float64(s.Yaw)+offset)
	hit.Offset = offset
	if hit.Hit {
		hit.Distance = hit.Raw * c.trig.CosDeg(offset)
	}
	return hit
}

// CastAll fills hits with one result per column, len(hits) is the screen width
// Output is identical for any worker count
func (c *Caster) CastAll(g *world.Grid, s player.State, hits []RayHit) {
	width := len(hits)
	workers := c.cfg.Workers
	if workers > width {
		workers = width
	}
	if workers <= 1 {
		for col := range hits {
			hits[col] = c.CastColumn(g, s, col, width)
		}
		return
	}

	chunk := (width + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < width; start += chunk {
		end := min(start+chunk, width)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for col := lo; col < hi; col++ {
				hits[col] = c.CastColumn(g, s, col, width)
			}
		}(start, end)
	}
	wg.Wait()
}

// Without an explicit limit a ray may cross every line of the grid once
func (c *Caster) maxSteps(g *world.Grid) int {
	if c.cfg.MaxSteps > 0 {
		return c.cfg.MaxSteps
	}
	return g.Width() + g.Height() + 2
}
