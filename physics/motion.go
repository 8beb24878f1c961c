// Package physics advances the player state one frame from an input snapshot,
// resolving wall collisions against the grid.
package physics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/parameter"
	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/vmath"
	"github.com/lixenwraith/raycaster/world"
)

// ErrInvalidParams marks unusable motion parameters
var ErrInvalidParams = errors.New("invalid motion params")

// Params tunes the integrator
// Speeds are world units per second, rates degrees per second
type Params struct {
	ForwardSpeed  float64
	BackwardSpeed float64
	StrafeSpeed   float64
	TurnRate      float64
	LookRate      float64
	Radius        float64       // collision half-extent around the player
	MaxDelta      time.Duration // frame delta ceiling, 0 disables
}

// DefaultParams returns symmetric movement scaled to parameter.CellSize
func DefaultParams() Params {
	return Params{
		ForwardSpeed:  parameter.PlayerForwardSpeed,
		BackwardSpeed: parameter.PlayerBackwardSpeed,
		StrafeSpeed:   parameter.PlayerStrafeSpeed,
		TurnRate:      parameter.PlayerTurnRate,
		LookRate:      parameter.PlayerLookRate,
		Radius:        parameter.PlayerRadius,
		MaxDelta:      parameter.MaxFrameDelta,
	}
}

// Validate rejects negative speeds or a radius that cannot fit inside a cell
func (p Params) Validate(cellSize float64) error {
	switch {
	case p.ForwardSpeed < 0, p.BackwardSpeed < 0, p.StrafeSpeed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalidParams)
	case p.TurnRate < 0, p.LookRate < 0:
		return fmt.Errorf("%w: negative rate", ErrInvalidParams)
	case p.Radius < 0:
		return fmt.Errorf("%w: negative radius", ErrInvalidParams)
	case cellSize > 0 && p.Radius >= cellSize/2:
		return fmt.Errorf("%w: radius %.2f must be below half the cell size %.2f", ErrInvalidParams, p.Radius, cellSize)
	case p.MaxDelta < 0:
		return fmt.Errorf("%w: negative max delta", ErrInvalidParams)
	}
	return nil
}

// Result is the outcome of one integration step
// CollideX/CollideY report an axis whose movement was discarded against a wall
type Result struct {
	State    player.State
	CollideX bool
	CollideY bool
	Moved    bool
}

// Collided reports whether either axis was blocked
func (r Result) Collided() bool { return r.CollideX || r.CollideY }

// Integrate advances s by dt under the active actions
// Pure: the input state is not modified and there is no failure path
func Integrate(s player.State, in input.Actions, dt time.Duration, g *world.Grid, trig *vmath.TrigTable, p Params) Result {
	if dt < 0 {
		dt = 0
	}
	if p.MaxDelta > 0 && dt > p.MaxDelta {
		dt = p.MaxDelta
	}
	sec := dt.Seconds()

	s.Yaw, s.YawCarry = turn(s.Yaw, s.YawCarry, in.Axis(input.TurnRight, input.TurnLeft), p.TurnRate*sec)
	s.Tilt, s.TiltCarry = look(s.Tilt, s.TiltCarry, in.Axis(input.LookUp, input.LookDown), p.LookRate*sec)

	delta := translation(s, in, sec, trig, p)
	res := Result{State: s}
	if delta.X() == 0 && delta.Y() == 0 {
		return res
	}

	// Sub-step long moves so a fast player cannot skip a whole cell
	maxStep := g.CellSize() / 4
	steps := int(math.Ceil(delta.Len() / maxStep))
	if steps < 1 {
		steps = 1
	}
	step := delta.Mul(1 / float64(steps))

	pos := s.Pos
	for i := 0; i < steps; i++ {
		var bx, by bool
		pos, bx, by = slide(pos, step, g, p.Radius)
		res.CollideX = res.CollideX || bx
		res.CollideY = res.CollideY || by
	}

	res.Moved = pos.X() != s.Pos.X() || pos.Y() != s.Pos.Y()
	res.State.Pos = pos
	return res
}

// turn applies whole degrees of rotation and carries the remainder
// The carry is dropped when no turn input is active so yaw never drifts
func turn(yaw vmath.Angle, carry float64, axis int, amount float64) (vmath.Angle, float64) {
	if axis == 0 {
		return yaw, 0
	}
	total := float64(axis)*amount + carry
	whole := math.Trunc(total)
	return yaw.Add(int(whole)), total - whole
}

func look(tilt vmath.Tilt, carry float64, axis int, amount float64) (vmath.Tilt, float64) {
	if axis == 0 {
		return tilt, 0
	}
	total := float64(axis)*amount + carry
	whole := math.Trunc(total)
	next := tilt.Add(int(whole))
	// Pinned at a limit: no carry pushes past it
	if next.Int() == vmath.MaxTilt || next.Int() == -vmath.MaxTilt {
		if (axis > 0) == (next.Int() > 0) {
			return next, 0
		}
	}
	return next, total - whole
}

// translation builds the candidate map-plane delta from the post-turn yaw
// Strafe right is yaw+90
func translation(s player.State, in input.Actions, sec float64, trig *vmath.TrigTable, p Params) mgl64.Vec3 {
	sin, cos := trig.Sin(s.Yaw), trig.Cos(s.Yaw)
	forward := mgl64.Vec3{sin, cos, 0}
	right := mgl64.Vec3{cos, -sin, 0}

	var delta mgl64.Vec3
	switch in.Axis(input.Forward, input.Backward) {
	case 1:
		delta = delta.Add(forward.Mul(p.ForwardSpeed * sec))
	case -1:
		delta = delta.Sub(forward.Mul(p.BackwardSpeed * sec))
	}
	if side := in.Axis(input.StrafeRight, input.StrafeLeft); side != 0 {
		delta = delta.Add(right.Mul(float64(side) * p.StrafeSpeed * sec))
	}
	return delta
}

// slide resolves X first against the current Y, then Y against the resolved X
// An axis is discarded when either the centre or the leading edge lands in a wall
func slide(pos, step mgl64.Vec3, g *world.Grid, radius float64) (mgl64.Vec3, bool, bool) {
	x, y := pos.X(), pos.Y()
	var bx, by bool

	if dx := step.X(); dx != 0 {
		nx := x + dx
		if blocked(g, nx, y, nx+math.Copysign(radius, dx), y) {
			bx = true
		} else {
			x = nx
		}
	}
	if dy := step.Y(); dy != 0 {
		ny := y + dy
		if blocked(g, x, ny, x, ny+math.Copysign(radius, dy)) {
			by = true
		} else {
			y = ny
		}
	}
	return mgl64.Vec3{x, y, pos.Z()}, bx, by
}

func blocked(g *world.Grid, cx, cy, ex, ey float64) bool {
	return g.IsWallAt(cx, cy) || g.IsWallAt(ex, ey)
}
