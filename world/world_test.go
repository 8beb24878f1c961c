package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func ringRows() []string {
	return []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#...@....#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	}
}

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		cellSize float64
		cells    int
	}{
		{"zero width", 0, 4, 1, 0},
		{"zero height", 4, 0, 1, 0},
		{"negative", -1, 4, 1, 4},
		{"zero cell size", 2, 2, 0, 4},
		{"negative cell size", 2, 2, -3, 4},
		{"short cells", 2, 2, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.w, tt.h, tt.cellSize, make([]Cell, tt.cells))
			if !errors.Is(err, ErrInvalidMap) {
				t.Errorf("expected ErrInvalidMap, got %v", err)
			}
		})
	}
}

func TestGridOwnsCells(t *testing.T) {
	cells := make([]Cell, 4)
	g, err := NewGrid(2, 2, 1, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[0] = 5
	if g.IsWall(0, 0) {
		t.Error("grid should not alias caller cells")
	}
}

func TestOutOfRangeIsWall(t *testing.T) {
	g, err := NewGrid(3, 3, 1, make([]Cell, 9))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ x, y int }{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, -100}}
	for _, tt := range tests {
		if !g.IsWall(tt.x, tt.y) {
			t.Errorf("IsWall(%d,%d) = false outside grid", tt.x, tt.y)
		}
		if g.Surface(tt.x, tt.y) != BoundarySurface {
			t.Errorf("Surface(%d,%d) = %d", tt.x, tt.y, g.Surface(tt.x, tt.y))
		}
	}
	if g.IsWall(1, 1) {
		t.Error("interior empty cell reported as wall")
	}
}

func TestCellAt(t *testing.T) {
	g, err := NewGrid(4, 4, 64, make([]Cell, 16))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 0},
		{63.9, 64, 0, 1},
		{128, 200, 2, 3},
		{-0.5, 10, -1, 0},
	}
	for _, tt := range tests {
		cx, cy := g.CellAt(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("CellAt(%v,%v) = %d,%d want %d,%d", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestParseRows(t *testing.T) {
	g, spawn, err := ParseRows(ringRows(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 10 || g.Height() != 10 {
		t.Fatalf("size %dx%d", g.Width(), g.Height())
	}
	if !spawn.Set || spawn.X != 4 || spawn.Y != 4 {
		t.Errorf("spawn = %+v", spawn)
	}
	if g.IsWall(4, 4) {
		t.Error("spawn cell must be empty")
	}
	for i := 0; i < 10; i++ {
		if !g.IsWall(i, 0) || !g.IsWall(i, 9) || !g.IsWall(0, i) || !g.IsWall(9, i) {
			t.Fatalf("ring broken at %d", i)
		}
	}
}

func TestParseRowsSurfacesAndPadding(t *testing.T) {
	g, spawn, err := ParseRows([]string{"#23", "."}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.Surface(1, 0) != 2 || g.Surface(2, 0) != 3 || g.Surface(0, 0) != 1 {
		t.Errorf("surfaces = %d %d %d", g.Surface(0, 0), g.Surface(1, 0), g.Surface(2, 0))
	}
	if g.IsWall(2, 1) {
		t.Error("ragged row should pad with empty")
	}
	if spawn.Set || spawn.X != 0 || spawn.Y != 1 {
		t.Errorf("fallback spawn = %+v", spawn)
	}
	if got := g.Rows(); got[0] != "#23" || got[1] != "..." {
		t.Errorf("Rows() = %q", got)
	}
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"blank", []string{""}},
		{"unknown", []string{"#x#"}},
		{"two spawns", []string{"@@"}},
		{"all walls", []string{"##", "##"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseRows(tt.rows, 1); !errors.Is(err, ErrInvalidMap) {
				t.Errorf("expected ErrInvalidMap, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.map")
	data := "// arena\n#####\n#.@.#\n#####\n\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	g, spawn, err := LoadFile(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Height() != 3 || g.Width() != 5 {
		t.Errorf("size %dx%d", g.Width(), g.Height())
	}
	if spawn.X != 2 || spawn.Y != 1 {
		t.Errorf("spawn = %+v", spawn)
	}

	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing"), 1); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGenerateMazeDeterministic(t *testing.T) {
	cfg := MazeConfig{Width: 21, Height: 15, Braiding: 0.3, Surfaces: 4, CellSize: 1, Seed: 42}
	a, sa, err := GenerateMaze(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, sb, err := GenerateMaze(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sa != sb {
		t.Errorf("spawns differ: %+v %+v", sa, sb)
	}
	ra, rb := a.Rows(), b.Rows()
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("row %d differs:\n%s\n%s", i, ra[i], rb[i])
		}
	}
}

func TestGenerateMazeShape(t *testing.T) {
	g, spawn, err := GenerateMaze(MazeConfig{Width: 20, Height: 2, CellSize: 1, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 19 || g.Height() != 5 {
		t.Fatalf("size %dx%d, want 19x5", g.Width(), g.Height())
	}
	for x := 0; x < g.Width(); x++ {
		if !g.IsWall(x, 0) || !g.IsWall(x, g.Height()-1) {
			t.Fatalf("rim open at column %d", x)
		}
	}
	for y := 0; y < g.Height(); y++ {
		if !g.IsWall(0, y) || !g.IsWall(g.Width()-1, y) {
			t.Fatalf("rim open at row %d", y)
		}
	}
	if g.IsWall(spawn.X, spawn.Y) {
		t.Error("spawn inside wall")
	}

	// Spawn heading must face an open cell
	step := map[int][2]int{0: {0, 1}, 90: {1, 0}, 180: {0, -1}, 270: {-1, 0}}[spawn.Yaw.Int()]
	if g.IsWall(spawn.X+step[0], spawn.Y+step[1]) {
		t.Errorf("spawn yaw %d faces a wall", spawn.Yaw)
	}
}

func TestGenerateMazeConnected(t *testing.T) {
	g, spawn, err := GenerateMaze(MazeConfig{Width: 31, Height: 31, Braiding: 0.5, CellSize: 1, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}

	// Every odd room cell must be reachable from the spawn
	seen := map[[2]int]bool{{spawn.X, spawn.Y}: true}
	queue := [][2]int{{spawn.X, spawn.Y}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range orthoDirs {
			n := [2]int{c[0] + d.x, c[1] + d.y}
			if !seen[n] && !g.IsWall(n[0], n[1]) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	for y := 1; y < g.Height()-1; y += 2 {
		for x := 1; x < g.Width()-1; x += 2 {
			if !seen[[2]int{x, y}] {
				t.Fatalf("room %d,%d unreachable", x, y)
			}
		}
	}
}

func TestGenerateMazeBadCellSize(t *testing.T) {
	if _, _, err := GenerateMaze(MazeConfig{Width: 9, Height: 9, Seed: 1}); !errors.Is(err, ErrInvalidMap) {
		t.Errorf("expected ErrInvalidMap for zero cell size, got %v", err)
	}
}
