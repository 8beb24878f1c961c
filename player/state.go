package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycaster/vmath"
	"github.com/lixenwraith/raycaster/world"
)

// State is the camera the frame loop owns and the raycaster reads
// X,Y lie on the map plane, Z is eye height above the floor, all continuous world units
// Yaw 0 faces +Y, increasing clockwise: 90 faces +X
type State struct {
	Pos  mgl64.Vec3
	Yaw  vmath.Angle
	Tilt vmath.Tilt

	// Sub-degree turn and look remainders carried between frames, always in (-1, 1)
	YawCarry  float64
	TiltCarry float64
}

// NewState places a player with level gaze
func NewState(x, y, z float64, yaw vmath.Angle) State {
	return State{Pos: mgl64.Vec3{x, y, z}, Yaw: yaw}
}

// AtSpawn places a player at a spawn cell centre, eye at half the wall height
func AtSpawn(g *world.Grid, s world.Spawn) State {
	x, y := s.Position(g)
	return NewState(x, y, g.CellSize()/2, s.Yaw)
}

// X returns the map-plane x coordinate
func (s State) X() float64 { return s.Pos.X() }

// Y returns the map-plane y coordinate
func (s State) Y() float64 { return s.Pos.Y() }

// Z returns the eye height
func (s State) Z() float64 { return s.Pos.Z() }

// Direction returns the unit facing vector (sin yaw, cos yaw)
func (s State) Direction(trig *vmath.TrigTable) mgl64.Vec2 {
	return mgl64.Vec2{trig.Sin(s.Yaw), trig.Cos(s.Yaw)}
}

// Cell returns the grid cell containing the player
func (s State) Cell(g *world.Grid) (int, int) {
	return g.CellAt(s.X(), s.Y())
}
