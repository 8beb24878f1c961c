package raycast

import (
	"math"

	"github.com/lixenwraith/raycaster/world"
)

// Components below this magnitude are treated as parallel to the axis
const degenerate = 1e-12

// traverser walks grid cells along a ray in cell units using DDA
// t is the ray parameter in cells travelled along the unit direction
type traverser struct {
	cx, cy       int
	stepX, stepY int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64
}

func newTraverser(px, py, dx, dy float64) traverser {
	t := traverser{
		cx:    int(math.Floor(px)),
		cy:    int(math.Floor(py)),
		stepX: 1,
		stepY: 1,
	}

	if math.Abs(dx) < degenerate {
		t.tMaxX, t.tDeltaX = math.Inf(1), math.Inf(1)
	} else {
		t.tDeltaX = 1 / math.Abs(dx)
		if dx > 0 {
			t.tMaxX = (float64(t.cx) + 1 - px) * t.tDeltaX
		} else {
			t.stepX = -1
			t.tMaxX = (px - float64(t.cx)) * t.tDeltaX
		}
	}

	if math.Abs(dy) < degenerate {
		t.tMaxY, t.tDeltaY = math.Inf(1), math.Inf(1)
	} else {
		t.tDeltaY = 1 / math.Abs(dy)
		if dy > 0 {
			t.tMaxY = (float64(t.cy) + 1 - py) * t.tDeltaY
		} else {
			t.stepY = -1
			t.tMaxY = (py - float64(t.cy)) * t.tDeltaY
		}
	}
	return t
}

// next crosses the nearer grid line, returning its ray parameter and the axis crossed
func (t *traverser) next() (float64, HitAxis) {
	if t.tMaxX < t.tMaxY {
		d := t.tMaxX
		t.cx += t.stepX
		t.tMaxX += t.tDeltaX
		return d, AxisX
	}
	d := t.tMaxY
	t.cy += t.stepY
	t.tMaxY += t.tDeltaY
	return d, AxisY
}

// march runs the DDA from a world-space origin along a unit direction
func march(g *world.Grid, ox, oy, dx, dy, maxRange float64, maxSteps int) RayHit {
	cs := g.CellSize()
	px, py := ox/cs, oy/cs
	if math.Abs(dx) < degenerate {
		dx = 0
	}
	if math.Abs(dy) < degenerate {
		dy = 0
	}

	tr := newTraverser(px, py, dx, dy)
	if g.IsWall(tr.cx, tr.cy) {
		return RayHit{Hit: true, Surface: g.Surface(tr.cx, tr.cy), CellX: tr.cx, CellY: tr.cy}
	}

	limit := maxRange / cs
	for i := 0; i < maxSteps; i++ {
		d, axis := tr.next()
		if math.IsInf(d, 1) || d > limit {
			break
		}
		if !g.IsWall(tr.cx, tr.cy) {
			continue
		}

		var along float64
		if axis == AxisX {
			along = py + d*dy
		} else {
			along = px + d*dx
		}
		return RayHit{
			Hit:     true,
			Raw:     d * cs,
			Surface: g.Surface(tr.cx, tr.cy),
			Axis:    axis,
			WallX:   along - math.Floor(along),
			CellX:   tr.cx,
			CellY:   tr.cy,
		}
	}
	return RayHit{Raw: maxRange}
}
