package render

import "github.com/lixenwraith/raycaster/world"

// Palette maps wall surface ids to base colours
type Palette struct {
	colors   map[world.Cell]RGB
	fallback RGB
}

// NewPalette creates a palette returning fallback for unmapped surfaces
func NewPalette(fallback RGB) *Palette {
	return &Palette{colors: make(map[world.Cell]RGB), fallback: fallback}
}

// DefaultPalette covers the nine surface ids the ASCII map format can express
func DefaultPalette() *Palette {
	p := NewPalette(RGB{160, 160, 160})
	p.Set(1, RGB{180, 180, 190}) // stone
	p.Set(2, RGB{200, 60, 50})   // brick
	p.Set(3, RGB{60, 160, 80})   // moss
	p.Set(4, RGB{70, 110, 200})  // tile
	p.Set(5, RGB{210, 180, 60})  // sandstone
	p.Set(6, RGB{150, 90, 40})   // wood
	p.Set(7, RGB{150, 70, 170})  // crystal
	p.Set(8, RGB{60, 180, 180})  // copper
	p.Set(9, RGB{230, 230, 230}) // marble
	return p
}

// Set assigns a colour to a surface id
func (p *Palette) Set(id world.Cell, c RGB) { p.colors[id] = c }

// Color returns the colour for a surface id
func (p *Palette) Color(id world.Cell) RGB {
	if c, ok := p.colors[id]; ok {
		return c
	}
	return p.fallback
}
