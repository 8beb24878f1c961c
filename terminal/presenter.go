// Package terminal presents frames on a tcell screen using upper half blocks,
// two pixel rows per character cell, and turns key events into held actions.
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/raycaster/render"
)

// halfBlock paints its foreground over the upper half of a cell
const halfBlock = '▀'

// Presenter draws pixel buffers onto a tcell screen
// The buffer is scaled nearest-neighbour to fill the screen
type Presenter struct {
	mu     sync.Mutex
	screen tcell.Screen
	status string
}

// New opens the controlling terminal, Init must be called before Present
func New() (*Presenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, tests pass a simulation screen
func NewWithScreen(screen tcell.Screen) *Presenter {
	return &Presenter{screen: screen}
}

// Init enters the alternate screen and hides the cursor
func (p *Presenter) Init() error {
	if err := p.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	p.screen.HideCursor()
	p.screen.Clear()
	return nil
}

// Fini restores the terminal
func (p *Presenter) Fini() { p.screen.Fini() }

// Screen exposes the underlying screen for event polling
func (p *Presenter) Screen() tcell.Screen { return p.screen }

// SetStatus reserves the bottom row for a line of text, empty removes it
func (p *Presenter) SetStatus(text string) {
	p.mu.Lock()
	p.status = text
	p.mu.Unlock()
}

// Present scales buf to the screen and shows it
func (p *Presenter) Present(buf *render.PixelBuffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil frame", render.ErrInvalidBuffer)
	}
	p.mu.Lock()
	status := p.status
	p.mu.Unlock()

	cols, rows := p.screen.Size()
	if status != "" {
		rows--
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := sampleCell(buf, cols, rows, cx, cy)
			style := tcell.StyleDefault.
				Foreground(rgbColor(top)).
				Background(rgbColor(bottom))
			p.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	if status != "" {
		drawText(p.screen, 0, rows, cols, status, tcell.StyleDefault.Reverse(true))
	}
	p.screen.Show()
	return nil
}

// sampleCell picks the buffer pixels behind the upper and lower halves of a cell
// The cell grid covers cols x 2*rows virtual pixels
func sampleCell(buf *render.PixelBuffer, cols, rows, cx, cy int) (top, bottom render.RGB) {
	w, h := buf.Width(), buf.Height()
	sx := cx * w / cols
	virtual := 2 * rows
	top = buf.At(sx, (2*cy)*h/virtual)
	bottom = buf.At(sx, (2*cy+1)*h/virtual)
	return top, bottom
}

func rgbColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes text on one row, padding the rest of the row with spaces
// Wide runes take two columns
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
