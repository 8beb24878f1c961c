// Package engine runs the per-frame pipeline: integrate motion, cast every column,
// then composite the pixel buffer.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/physics"
	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/raycast"
	"github.com/lixenwraith/raycaster/render"
	"github.com/lixenwraith/raycaster/vmath"
	"github.com/lixenwraith/raycaster/world"
)

// ErrInvalidLoop marks a loop configuration missing a collaborator or starting inside a wall
var ErrInvalidLoop = errors.New("invalid loop config")

// LoopConfig gathers everything a Loop owns
type LoopConfig struct {
	Grid    *world.Grid
	Start   player.State
	Trig    *vmath.TrigTable // nil uses vmath.DefaultTrig
	Raycast raycast.Config
	Motion  physics.Params
	Style   render.Style
	Palette *render.Palette // nil uses render.DefaultPalette
	Width   int
	Height  int
}

// Loop owns the player state, the column hits and the pixel buffer
// Not safe for concurrent use, one goroutine drives Step
type Loop struct {
	grid       *world.Grid
	trig       *vmath.TrigTable
	caster     *raycast.Caster
	compositor *render.Compositor
	motion     physics.Params

	state player.State
	hits  []raycast.RayHit
	buf   *render.PixelBuffer
	frame uint64
	last  physics.Result

	// OnCollide is called after a step whose movement was blocked on either axis
	OnCollide func(physics.Result)
}

// NewLoop validates the configuration up front so Step has no failure path
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidLoop)
	}
	if cfg.Trig == nil {
		cfg.Trig = vmath.DefaultTrig
	}
	if err := cfg.Motion.Validate(cfg.Grid.CellSize()); err != nil {
		return nil, err
	}
	if cfg.Grid.IsWallAt(cfg.Start.X(), cfg.Start.Y()) {
		return nil, fmt.Errorf("%w: start (%.2f,%.2f) inside a wall", ErrInvalidLoop, cfg.Start.X(), cfg.Start.Y())
	}

	caster, err := raycast.New(cfg.Raycast, cfg.Trig)
	if err != nil {
		return nil, err
	}
	compositor, err := render.NewCompositor(cfg.Style, cfg.Palette, cfg.Raycast.FOV, cfg.Grid.CellSize())
	if err != nil {
		return nil, err
	}
	buf, err := render.NewPixelBuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	return &Loop{
		grid:       cfg.Grid,
		trig:       cfg.Trig,
		caster:     caster,
		compositor: compositor,
		motion:     cfg.Motion,
		state:      cfg.Start,
		hits:       make([]raycast.RayHit, cfg.Width),
		buf:        buf,
	}, nil
}

// Step advances one frame and returns the refreshed buffer
// The buffer is reused across frames, presenters must finish with it before the next Step
func (l *Loop) Step(in input.Actions, dt time.Duration) *render.PixelBuffer {
	res := physics.Integrate(l.state, in, dt, l.grid, l.trig, l.motion)
	l.state = res.State
	l.last = res
	if res.Collided() && l.OnCollide != nil {
		l.OnCollide(res)
	}

	l.caster.CastAll(l.grid, l.state, l.hits)
	l.compositor.Compose(l.buf, l.hits, l.state)
	l.frame++
	return l.buf
}

// Render recomposes the current state without moving, for the first frame or a redraw
func (l *Loop) Render() *render.PixelBuffer {
	l.caster.CastAll(l.grid, l.state, l.hits)
	l.compositor.Compose(l.buf, l.hits, l.state)
	return l.buf
}

// State returns the player state after the last step
func (l *Loop) State() player.State { return l.state }

// Hits returns the column hits of the last frame, owned by the loop
func (l *Loop) Hits() []raycast.RayHit { return l.hits }

// Buffer returns the pixel buffer
func (l *Loop) Buffer() *render.PixelBuffer { return l.buf }

// Frame returns the number of completed steps
func (l *Loop) Frame() uint64 { return l.frame }

// LastResult returns the integrator outcome of the last step
func (l *Loop) LastResult() physics.Result { return l.last }

// Grid returns the map being rendered
func (l *Loop) Grid() *world.Grid { return l.grid }
