package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/raycast"
)

// ErrInvalidProjection marks an unusable field of view or cell size
var ErrInvalidProjection = errors.New("invalid projection")

// Distances below this are treated as touching the wall
const minDistance = 1e-6

// Style controls fill colours and lighting of a frame
type Style struct {
	Ceiling   RGB
	Floor     RGB
	Horizon   RGB     // gradient target at the horizon line
	Gradient  bool    // fade ceiling and floor toward Horizon
	SideShade float64 // multiplier for walls hit on a y-line face
	Falloff   float64 // distance attenuation per world unit
	MinLight  float64 // attenuation floor
}

// DefaultStyle returns a dim ceiling over a warm floor with moderate fog
func DefaultStyle() Style {
	return Style{
		Ceiling:   RGB{40, 44, 64},
		Floor:     RGB{72, 60, 48},
		Horizon:   RGB{16, 16, 20},
		Gradient:  true,
		SideShade: 0.7,
		Falloff:   0.004,
		MinLight:  0.15,
	}
}

// Compositor projects per-column hits into wall slices and fills the rest
type Compositor struct {
	style    Style
	palette  *Palette
	fov      float64
	cellSize float64
	tanHalf  float64
}

// NewCompositor validates the projection inputs, a nil palette uses DefaultPalette
func NewCompositor(style Style, palette *Palette, fov, cellSize float64) (*Compositor, error) {
	if fov <= 0 || fov >= 180 {
		return nil, fmt.Errorf("%w: fov %.2f outside (0,180)", ErrInvalidProjection, fov)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %.2f", ErrInvalidProjection, cellSize)
	}
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Compositor{
		style:    style,
		palette:  palette,
		fov:      fov,
		cellSize: cellSize,
		tanHalf:  math.Tan(fov / 2 * math.Pi / 180),
	}, nil
}

// Style returns the active style
func (c *Compositor) Style() Style { return c.style }

// Focal is the projection plane distance in pixels for a buffer width
func (c *Compositor) Focal(width int) float64 {
	return float64(width) / 2 / c.tanHalf
}

// Horizon returns the eye-level row for a buffer, shifted by tilt
// Looking up moves the horizon down the screen
func (c *Compositor) Horizon(buf *PixelBuffer, s player.State) float64 {
	tilt := float64(s.Tilt.Int()) * math.Pi / 180
	return float64(buf.Height())/2 + c.Focal(buf.Width())*math.Tan(tilt)
}

// Slice returns the unclamped top and bottom rows of a wall at distance d
// The wall spans world heights [0, cellSize], the eye sits at s.Z()
func (c *Compositor) Slice(buf *PixelBuffer, s player.State, d float64) (float64, float64) {
	d = max(d, minDistance)
	focal := c.Focal(buf.Width())
	horizon := c.Horizon(buf, s)
	top := horizon - focal*(c.cellSize-s.Z())/d
	bottom := horizon + focal*s.Z()/d
	return top, bottom
}

// Shade returns the lit wall colour for a hit
func (c *Compositor) Shade(hit raycast.RayHit) RGB {
	col := c.palette.Color(hit.Surface)
	if hit.Axis == raycast.AxisY && c.style.SideShade > 0 {
		col = col.Scale(c.style.SideShade)
	}
	light := 1.0
	if c.style.Falloff > 0 {
		light = 1 / (1 + hit.Distance*c.style.Falloff)
	}
	return col.Scale(max(light, c.style.MinLight))
}

// Compose writes every pixel of buf from one hit per column
// Columns without a hit, or beyond len(hits), render ceiling and floor only
func (c *Compositor) Compose(buf *PixelBuffer, hits []raycast.RayHit, s player.State) {
	w, h := buf.Width(), buf.Height()
	horizon := c.Horizon(buf, s)
	split := clampRow(int(math.Round(horizon)), h)

	// Ceiling/floor rows are identical across columns, compute once
	fill := make([]RGB, h)
	for row := range fill {
		fill[row] = c.background(row, horizon, h)
	}

	for col := 0; col < w; col++ {
		top, bottom := split, split
		var wall RGB
		if col < len(hits) && hits[col].Hit {
			ft, fb := c.Slice(buf, s, hits[col].Distance)
			top = clampRow(int(math.Ceil(ft)), h)
			bottom = clampRow(int(math.Ceil(fb)), h)
			wall = c.Shade(hits[col])
		}

		for row := 0; row < top; row++ {
			buf.pix[row*w+col] = fill[row]
		}
		for row := top; row < bottom; row++ {
			buf.pix[row*w+col] = wall
		}
		for row := bottom; row < h; row++ {
			buf.pix[row*w+col] = fill[row]
		}
	}
}

// background is the ceiling colour above the horizon and floor below it
func (c *Compositor) background(row int, horizon float64, h int) RGB {
	y := float64(row) + 0.5
	if y < horizon {
		if !c.style.Gradient || horizon <= 0 {
			return c.style.Ceiling
		}
		return Lerp(c.style.Ceiling, c.style.Horizon, y/horizon)
	}
	if !c.style.Gradient || horizon >= float64(h) {
		return c.style.Floor
	}
	return Lerp(c.style.Horizon, c.style.Floor, (y-horizon)/(float64(h)-horizon))
}

func clampRow(r, h int) int {
	if r < 0 {
		return 0
	}
	if r > h {
		return h
	}
	return r
}
