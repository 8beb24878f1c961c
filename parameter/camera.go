package parameter

// World scale
const (
	// CellSize is world units per grid cell
	CellSize = 64.0

	// EyeHeightRatio places the eye at half the wall height
	EyeHeightRatio = 0.5
)

// Camera projection
const (
	// FieldOfView is the horizontal view angle in degrees
	FieldOfView = 60.0

	// MaxRayRange limits a cast to 32 cells
	MaxRayRange = 32 * CellSize

	// RayWorkers splits column casting, 1 is serial
	RayWorkers = 1
)
