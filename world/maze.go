package world

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/raycaster/vmath"
)

// MazeConfig drives procedural map generation
type MazeConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, tree) to 1.0 (no dead ends)
	// Loops are only opened where they create neither plazas nor pillars
	Braiding float64

	// Surfaces is how many distinct wall surface ids to scatter, minimum 1
	Surfaces int

	CellSize float64
	Seed     int64 // 0 = time-based
}

type point struct{ x, y int }

var (
	jumpDirs  = [4]point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	orthoDirs = [4]point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// GenerateMaze carves a maze with the recursive backtracker and optional braiding
// Dimensions round down to odd (minimum 5) so corridors sit on odd cells inside a solid rim
// The same non-zero seed always yields the same grid and spawn
func GenerateMaze(cfg MazeConfig) (*Grid, Spawn, error) {
	w := oddAtLeast(cfg.Width, 5)
	h := oddAtLeast(cfg.Height, 5)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	surfaces := cfg.Surfaces
	if surfaces < 1 {
		surfaces = 1
	}
	if surfaces > 255 {
		surfaces = 255
	}

	m := &mazeGrid{w: w, h: h, wall: make([]bool, w*h)}
	for i := range m.wall {
		m.wall[i] = true
	}

	start := point{1, 1}
	m.carve(start, rng)
	if cfg.Braiding > 0 {
		m.braid(cfg.Braiding, rng)
	}

	cells := make([]Cell, w*h)
	for i, isWall := range m.wall {
		if isWall {
			cells[i] = Cell(1 + rng.Intn(surfaces))
		}
	}

	g, err := NewGrid(w, h, cfg.CellSize, cells)
	if err != nil {
		return nil, Spawn{}, err
	}
	return g, Spawn{X: start.x, Y: start.y, Yaw: m.openHeading(start), Set: true}, nil
}

type mazeGrid struct {
	w, h int
	wall []bool
}

func (m *mazeGrid) in(x, y int) bool { return x >= 0 && x < m.w && y >= 0 && y < m.h }

func (m *mazeGrid) isWall(x, y int) bool {
	if !m.in(x, y) {
		return true
	}
	return m.wall[y*m.w+x]
}

func (m *mazeGrid) set(x, y int, wall bool) { m.wall[y*m.w+x] = wall }

// carve builds a uniform spanning tree over odd cells
func (m *mazeGrid) carve(start point, rng *rand.Rand) {
	stack := []point{start}
	m.set(start.x, start.y, false)

	candidates := make([]point, 0, 4)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]
		for _, d := range jumpDirs {
			nx, ny := curr.x+d.x, curr.y+d.y
			// Leave the one-cell rim intact
			if nx > 0 && nx < m.w-1 && ny > 0 && ny < m.h-1 && m.isWall(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		m.set(curr.x+d.x/2, curr.y+d.y/2, false)
		next := point{curr.x + d.x, curr.y + d.y}
		m.set(next.x, next.y, false)
		stack = append(stack, next)
	}
}

// braid opens walls at dead ends with the given probability
func (m *mazeGrid) braid(probability float64, rng *rand.Rand) {
	candidates := make([]point, 0, 4)
	for y := 1; y < m.h-1; y += 2 {
		for x := 1; x < m.w-1; x += 2 {
			if m.isWall(x, y) {
				continue
			}

			exits := 0
			for _, d := range orthoDirs {
				if !m.isWall(x+d.x, y+d.y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, d := range jumpDirs {
				nx, ny := x+d.x, y+d.y
				wx, wy := x+d.x/2, y+d.y/2
				if nx <= 0 || nx >= m.w-1 || ny <= 0 || ny >= m.h-1 {
					continue
				}
				if !m.isWall(nx, ny) && m.isWall(wx, wy) && m.safeToOpen(wx, wy) {
					candidates = append(candidates, point{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				m.set(c.x, c.y, false)
			}
		}
	}
}

// safeToOpen rejects openings that would create a 2x2 open plaza or an isolated pillar
func (m *mazeGrid) safeToOpen(x, y int) bool {
	open := func(tx, ty int) bool { return !m.isWall(tx, ty) }

	if open(x-1, y-1) && open(x, y-1) && open(x-1, y) {
		return false
	}
	if open(x, y-1) && open(x+1, y-1) && open(x+1, y) {
		return false
	}
	if open(x-1, y) && open(x-1, y+1) && open(x, y+1) {
		return false
	}
	if open(x+1, y) && open(x, y+1) && open(x+1, y+1) {
		return false
	}

	for _, d := range orthoDirs {
		nx, ny := x+d.x, y+d.y
		if !m.in(nx, ny) || !m.isWall(nx, ny) {
			continue
		}
		links := 0
		for _, d2 := range orthoDirs {
			ax, ay := nx+d2.x, ny+d2.y
			if ax == x && ay == y {
				continue
			}
			if m.in(ax, ay) && m.isWall(ax, ay) {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

// openHeading faces the spawn down its first open corridor
// Yaw 0 is +Y, 90 is +X, 180 is -Y, 270 is -X
func (m *mazeGrid) openHeading(p point) vmath.Angle {
	headings := []struct {
		d   point
		yaw vmath.Angle
	}{
		{point{0, 1}, 0},
		{point{1, 0}, 90},
		{point{0, -1}, 180},
		{point{-1, 0}, 270},
	}
	for _, hd := range headings {
		if !m.isWall(p.x+hd.d.x, p.y+hd.d.y) {
			return hd.yaw
		}
	}
	return 0
}

func oddAtLeast(n, lo int) int {
	if n < lo {
		n = lo
	}
	if n%2 == 0 {
		n--
	}
	return n
}
