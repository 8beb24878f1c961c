package parameter

import "time"

// Player movement, world units per second
const (
	PlayerForwardSpeed  = 2.5 * CellSize
	PlayerBackwardSpeed = 2.5 * CellSize
	PlayerStrafeSpeed   = 2 * CellSize
	PlayerRadius        = 0.2 * CellSize
)

// Player rotation, degrees per second
const (
	PlayerTurnRate = 120.0
	PlayerLookRate = 60.0
)

// MaxFrameDelta caps a frame step after stalls so the player cannot jump through walls
const MaxFrameDelta = 100 * time.Millisecond

// KeyHold keeps a terminal key active between its press and the first auto-repeat
const KeyHold = 120 * time.Millisecond
