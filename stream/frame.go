package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lixenwraith/raycaster/render"
)

// FrameHeaderSize is the width and height prefix of a binary frame
const FrameHeaderSize = 4

// ErrBadFrame reports a binary frame whose length disagrees with its header
var ErrBadFrame = errors.New("malformed frame")

// EncodeFrame packs [u16 width][u16 height][RGBA...] big-endian, reusing dst when large enough
func EncodeFrame(dst []byte, buf *render.PixelBuffer) []byte {
	n := FrameHeaderSize + buf.Width()*buf.Height()*4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	binary.BigEndian.PutUint16(dst[0:2], uint16(buf.Width()))
	binary.BigEndian.PutUint16(dst[2:4], uint16(buf.Height()))
	buf.RGBA(dst[FrameHeaderSize:FrameHeaderSize])
	return dst
}

// DecodeFrame splits a binary frame into its dimensions and pixel bytes
func DecodeFrame(data []byte) (width, height int, rgba []byte, err error) {
	if len(data) < FrameHeaderSize {
		return 0, 0, nil, fmt.Errorf("%w: %d bytes", ErrBadFrame, len(data))
	}
	width = int(binary.BigEndian.Uint16(data[0:2]))
	height = int(binary.BigEndian.Uint16(data[2:4]))
	rgba = data[FrameHeaderSize:]
	if len(rgba) != width*height*4 {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d with %d pixel bytes", ErrBadFrame, width, height, len(rgba))
	}
	return width, height, rgba, nil
}
