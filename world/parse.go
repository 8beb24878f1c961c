package world

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/raycaster/vmath"
)

// Spawn is where a player starts, in cell coordinates with a heading
type Spawn struct {
	X, Y int
	Yaw  vmath.Angle
	Set  bool // false when the map carried no explicit marker
}

// Position returns the spawn cell centre in world units
func (s Spawn) Position(g *Grid) (float64, float64) {
	return g.CellCenter(s.X, s.Y)
}

// ParseRows builds a grid from the ASCII map format
//
//	'.' or ' '  empty
//	'#'         wall, surface 1
//	'1'..'9'    wall with that surface id
//	'@'         empty, marks the spawn cell
//
// Ragged rows are padded with empty cells, the boundary is solid regardless
// Without an '@' the spawn is the first empty cell in row-major order
func ParseRows(rows []string, cellSize float64) (*Grid, Spawn, error) {
	height := len(rows)
	width := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > width {
			width = n
		}
	}
	if width == 0 || height == 0 {
		return nil, Spawn{}, fmt.Errorf("%w: empty map", ErrInvalidMap)
	}

	cells := make([]Cell, width*height)
	var spawn Spawn
	for y, r := range rows {
		for x, ch := range []rune(r) {
			switch {
			case ch == '.' || ch == ' ':
				// Empty
			case ch == '#':
				cells[y*width+x] = BoundarySurface
			case ch >= '1' && ch <= '9':
				cells[y*width+x] = Cell(ch - '0')
			case ch == '@':
				if spawn.Set {
					return nil, Spawn{}, fmt.Errorf("%w: second spawn marker at %d,%d", ErrInvalidMap, x, y)
				}
				spawn = Spawn{X: x, Y: y, Set: true}
			default:
				return nil, Spawn{}, fmt.Errorf("%w: unknown cell %q at %d,%d", ErrInvalidMap, ch, x, y)
			}
		}
	}

	g, err := NewGrid(width, height, cellSize, cells)
	if err != nil {
		return nil, Spawn{}, err
	}

	if !spawn.Set {
		found := false
		for i, c := range cells {
			if c == Empty {
				spawn = Spawn{X: i % width, Y: i / width}
				found = true
				break
			}
		}
		if !found {
			return nil, Spawn{}, fmt.Errorf("%w: no empty cell to spawn in", ErrInvalidMap)
		}
	}
	return g, spawn, nil
}

// LoadFile reads an ASCII map, blank trailing lines and '//' comment lines are skipped
func LoadFile(path string, cellSize float64) (*Grid, Spawn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Spawn{}, fmt.Errorf("map file: %w", err)
	}

	var rows []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, Spawn{}, fmt.Errorf("map file %s: %w", path, err)
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	g, spawn, err := ParseRows(rows, cellSize)
	if err != nil {
		return nil, Spawn{}, fmt.Errorf("map file %s: %w", path, err)
	}
	return g, spawn, nil
}
