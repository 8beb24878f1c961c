// Package world holds the static wall grid the caster and collision logic query.
//
// A Grid is built once per session and never mutated, so it is shared by value of
// pointer across the frame loop, the raycaster workers, and network sessions.
// Coordinates outside the grid read as solid wall, callers never bounds-check.
package world

import (
	"errors"
	"fmt"
	"math"
)

// Cell is a grid cell, 0 is empty and any other value is a wall surface id
type Cell uint8

const (
	// Empty marks a walkable, transparent cell
	Empty Cell = 0

	// BoundarySurface is reported for coordinates outside the grid
	BoundarySurface Cell = 1
)

// ErrInvalidMap reports unusable map dimensions or contents
var ErrInvalidMap = errors.New("invalid map")

// Grid is a fixed-size row-major wall map
type Grid struct {
	width    int
	height   int
	cellSize float64
	cells    []Cell
}

// NewGrid validates and wraps cells, which must hold exactly width*height entries
// The slice is copied so later caller edits cannot mutate the session map
func NewGrid(width, height int, cellSize float64, cells []Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidMap, width, height)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidMap, cellSize)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidMap, len(cells), width, height)
	}
	owned := make([]Cell, len(cells))
	copy(owned, cells)
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    owned,
	}, nil
}

// Width returns the grid width in cells
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *Grid) Height() int { return g.height }

// CellSize returns world units per cell edge
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether the cell coordinate lies inside the grid
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.width && cy >= 0 && cy < g.height
}

// IsWall reports whether a cell blocks movement and sight, out of range is wall
func (g *Grid) IsWall(cx, cy int) bool {
	if !g.InBounds(cx, cy) {
		return true
	}
	return g.cells[cy*g.width+cx] != Empty
}

// Surface returns the surface id of a cell, BoundarySurface outside the grid
func (g *Grid) Surface(cx, cy int) Cell {
	if !g.InBounds(cx, cy) {
		return BoundarySurface
	}
	return g.cells[cy*g.width+cx]
}

// CellAt quantizes a continuous world position to cell coordinates
func (g *Grid) CellAt(x, y float64) (int, int) {
	return int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))
}

// IsWallAt reports whether the cell containing a world position is a wall
func (g *Grid) IsWallAt(x, y float64) bool {
	cx, cy := g.CellAt(x, y)
	return g.IsWall(cx, cy)
}

// CellCenter returns the world position of a cell centre
func (g *Grid) CellCenter(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * g.cellSize, (float64(cy) + 0.5) * g.cellSize
}

// Rows renders the grid back to the ASCII map format
// Surface 1 is '#', 2..9 are digits, anything higher is '#'
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	line := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			switch {
			case c == Empty:
				line[x] = '.'
			case c >= 2 && c <= 9:
				line[x] = byte('0' + c)
			default:
				line[x] = '#'
			}
		}
		rows[y] = string(line)
	}
	return rows
}
