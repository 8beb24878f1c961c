package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/vmath"
)

var (
	minimapWall   = color.RGBA{R: 200, G: 200, B: 200, A: 220}
	minimapFloor  = color.RGBA{R: 20, G: 20, B: 20, A: 160}
	minimapPlayer = color.RGBA{R: 255, G: 60, B: 60, A: 255}
)

// minimapScale returns the pixel size of one grid cell, 0 when the map cannot fit
// The map may cover at most half of either screen dimension
func minimapScale(gridW, gridH, screenW, screenH int) int {
	if gridW <= 0 || gridH <= 0 {
		return 0
	}
	return min(screenW/2/gridW, screenH/2/gridH, 4)
}

// drawMinimap draws the grid in the top right corner with the player and heading
func drawMinimap(screen *ebiten.Image, loop *engine.Loop) {
	g := loop.Grid()
	b := screen.Bounds()
	scale := minimapScale(g.Width(), g.Height(), b.Dx(), b.Dy())
	if scale == 0 {
		return
	}
	px := float32(scale)
	ox := float32(b.Dx() - g.Width()*scale)

	// Row 0 is the southern edge, drawn at the bottom
	mapH := float32(g.Height() * scale)
	for cy := 0; cy < g.Height(); cy++ {
		for cx := 0; cx < g.Width(); cx++ {
			clr := minimapFloor
			if g.IsWall(cx, cy) {
				clr = minimapWall
			}
			x := ox + float32(cx)*px
			y := mapH - float32(cy+1)*px
			vector.DrawFilledRect(screen, x, y, px, px, clr, false)
		}
	}

	s := loop.State()
	cs := g.CellSize()
	x := ox + float32(s.X()/cs)*px
	y := mapH - float32(s.Y()/cs)*px
	dir := s.Direction(vmath.DefaultTrig)
	vector.StrokeLine(screen, x, y, x+float32(dir.X())*px*2, y-float32(dir.Y())*px*2, 1, minimapPlayer, false)
	vector.DrawFilledCircle(screen, x, y, px/2+0.5, minimapPlayer, true)
}
