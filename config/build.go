package config

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/physics"
	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/raycast"
	"github.com/lixenwraith/raycaster/render"
	"github.com/lixenwraith/raycaster/vmath"
	"github.com/lixenwraith/raycaster/world"
)

//go:embed arena.map
var arenaMap string

// ArenaRows returns the built-in map used when no source is configured
func ArenaRows() []string {
	var rows []string
	for _, line := range strings.Split(strings.TrimRight(arenaMap, "\n"), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		rows = append(rows, strings.TrimRight(line, "\r"))
	}
	return rows
}

// BuildGrid resolves the map source and applies the spawn heading override
func (c Config) BuildGrid() (*world.Grid, world.Spawn, error) {
	m := c.Map
	var (
		g     *world.Grid
		spawn world.Spawn
		err   error
	)
	switch {
	case m.File != "":
		g, spawn, err = world.LoadFile(m.File, m.CellSize)
	case len(m.Rows) > 0:
		g, spawn, err = world.ParseRows(m.Rows, m.CellSize)
	case m.Maze.Width > 0 && m.Maze.Height > 0:
		g, spawn, err = world.GenerateMaze(world.MazeConfig{
			Width:    m.Maze.Width,
			Height:   m.Maze.Height,
			Braiding: m.Maze.Braiding,
			Surfaces: m.Maze.Surfaces,
			CellSize: m.CellSize,
			Seed:     m.Maze.Seed,
		})
	default:
		g, spawn, err = world.ParseRows(ArenaRows(), m.CellSize)
	}
	if err != nil {
		return nil, world.Spawn{}, fmt.Errorf("map: %w", err)
	}
	if m.Yaw != nil {
		spawn.Yaw = vmath.NormalizeAngle(*m.Yaw)
	}
	return g, spawn, nil
}

// BuildKeymap merges the [keys] table over the default bindings
func (c Config) BuildKeymap() (*input.Keymap, error) {
	override, err := input.KeymapFrom(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return input.Merge(input.DefaultKeymap(), override), nil
}

// BuildStyle converts the render section
func (c Config) BuildStyle() (render.Style, error) {
	r := c.Render
	ceiling, err := parseColor(r.Ceiling)
	if err != nil {
		return render.Style{}, err
	}
	floor, err := parseColor(r.Floor)
	if err != nil {
		return render.Style{}, err
	}
	horizon, err := parseColor(r.Horizon)
	if err != nil {
		return render.Style{}, err
	}
	return render.Style{
		Ceiling:   ceiling,
		Floor:     floor,
		Horizon:   horizon,
		Gradient:  r.Gradient,
		SideShade: r.SideShade,
		Falloff:   r.Falloff,
		MinLight:  r.MinLight,
	}, nil
}

// BuildPalette applies [render.palette] overrides to the default palette
func (c Config) BuildPalette() (*render.Palette, error) {
	p := render.DefaultPalette()
	for key, hex := range c.Render.Palette {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 || id > 255 {
			return nil, fmt.Errorf("%w: palette surface %q not in 1..255", ErrInvalidConfig, key)
		}
		col, err := parseColor(hex)
		if err != nil {
			return nil, err
		}
		p.Set(world.Cell(id), col)
	}
	return p, nil
}

// BuildMotion converts the motion section to world units
func (c Config) BuildMotion() physics.Params {
	m, cs := c.Motion, c.Map.CellSize
	return physics.Params{
		ForwardSpeed:  m.ForwardSpeed * cs,
		BackwardSpeed: m.BackwardSpeed * cs,
		StrafeSpeed:   m.StrafeSpeed * cs,
		TurnRate:      m.TurnRate,
		LookRate:      m.LookRate,
		Radius:        m.Radius * cs,
		MaxDelta:      m.MaxDelta,
	}
}

// BuildLoopConfig assembles everything engine.NewLoop validates
func (c Config) BuildLoopConfig() (engine.LoopConfig, error) {
	g, spawn, err := c.BuildGrid()
	if err != nil {
		return engine.LoopConfig{}, err
	}
	style, err := c.BuildStyle()
	if err != nil {
		return engine.LoopConfig{}, err
	}
	palette, err := c.BuildPalette()
	if err != nil {
		return engine.LoopConfig{}, err
	}

	start := player.AtSpawn(g, spawn)
	start.Pos[2] = c.Camera.EyeHeight * g.CellSize()

	w, h, _ := c.Size()
	return engine.LoopConfig{
		Grid:  g,
		Start: start,
		Trig:  vmath.DefaultTrig,
		Raycast: raycast.Config{
			FOV:      c.Camera.FOV,
			MaxRange: c.Camera.MaxRange * g.CellSize(),
			MaxSteps: c.Camera.MaxSteps,
			Workers:  c.Camera.Workers,
		},
		Motion:  c.BuildMotion(),
		Style:   style,
		Palette: palette,
		Width:   w,
		Height:  h,
	}, nil
}

// NewLoop builds and validates a frame loop in one call
func (c Config) NewLoop() (*engine.Loop, error) {
	lc, err := c.BuildLoopConfig()
	if err != nil {
		return nil, err
	}
	return engine.NewLoop(lc)
}

// parseColor accepts "#rgb", "#rrggbb" or the same without the hash
func parseColor(s string) (render.RGB, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return render.RGB{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, s, err)
	}
	r, g, b := c.RGB255()
	return render.RGB{R: r, G: g, B: b}, nil
}
