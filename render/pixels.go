package render

import (
	"errors"
	"fmt"
)

// ErrInvalidBuffer marks a buffer with unusable dimensions
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// PixelBuffer is a row-major colour grid with the origin at the top-left
// Its length stays width*height for its lifetime
type PixelBuffer struct {
	pix    []RGB
	width  int
	height int
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBuffer, width, height)
	}
	return &PixelBuffer{
		pix:    make([]RGB, width*height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the column count
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the row count
func (b *PixelBuffer) Height() int { return b.height }

// Pix exposes the backing slice for presenters, row by row
func (b *PixelBuffer) Pix() []RGB { return b.pix }

// Index returns the slice offset of (col, row)
func (b *PixelBuffer) Index(col, row int) int { return row*b.width + col }

// inBounds returns true if in buffer bounds
func (b *PixelBuffer) inBounds(col, row int) bool {
	return col >= 0 && col < b.width && row >= 0 && row < b.height
}

// Set writes one pixel, out of bounds writes are dropped
func (b *PixelBuffer) Set(col, row int, c RGB) {
	if !b.inBounds(col, row) {
		return
	}
	b.pix[row*b.width+col] = c
}

// At reads one pixel, out of bounds reads are black
func (b *PixelBuffer) At(col, row int) RGB {
	if !b.inBounds(col, row) {
		return RGBBlack
	}
	return b.pix[row*b.width+col]
}

// Fill sets every pixel using exponential copy
func (b *PixelBuffer) Fill(c RGB) {
	b.pix[0] = c
	for filled := 1; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// RGBA packs the buffer as 4 bytes per pixel with opaque alpha
// dst is reused when large enough, the packed slice is returned
func (b *PixelBuffer) RGBA(dst []byte) []byte {
	n := len(b.pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range b.pix {
		o := i * 4
		dst[o] = p.R
		dst[o+1] = p.G
		dst[o+2] = p.B
		dst[o+3] = 0xff
	}
	return dst
}
