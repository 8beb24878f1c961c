package render

import (
	"errors"
	"testing"

	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/raycast"
)

var sentinel = RGB{255, 0, 255}

func TestRGBOps(t *testing.T) {
	c := RGB{100, 200, 50}
	if got := c.Scale(0.5); got != (RGB{50, 100, 25}) {
		t.Errorf("Scale(0.5) = %v", got)
	}
	if got := c.Scale(2); got != (RGB{200, 255, 100}) {
		t.Errorf("Scale(2) should saturate, got %v", got)
	}
	if got := c.Blend(RGBWhite, 0); got != c {
		t.Errorf("Blend alpha 0 = %v", got)
	}
	if got := c.Blend(RGBWhite, 1); got != RGBWhite {
		t.Errorf("Blend alpha 1 = %v", got)
	}
	if got := Lerp(RGBBlack, RGB{200, 100, 50}, 0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Lerp = %v", got)
	}
	if got := (RGB{255, 255, 255}).Grayscale(); got != RGBWhite {
		t.Errorf("Grayscale white = %v", got)
	}
}

func TestPixelBuffer(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-4, 4}} {
		if _, err := NewPixelBuffer(dims[0], dims[1]); !errors.Is(err, ErrInvalidBuffer) {
			t.Errorf("NewPixelBuffer(%v) err = %v", dims, err)
		}
	}

	b, err := NewPixelBuffer(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Pix()) != 12 || b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("shape %dx%d len %d", b.Width(), b.Height(), len(b.Pix()))
	}
	if b.Index(3, 2) != 11 || b.Index(1, 1) != 5 {
		t.Errorf("Index wrong")
	}

	b.Set(1, 1, sentinel)
	b.Set(4, 0, sentinel)
	b.Set(0, -1, sentinel)
	if b.At(1, 1) != sentinel || b.Pix()[5] != sentinel {
		t.Errorf("Set/At mismatch")
	}
	if b.At(4, 0) != RGBBlack {
		t.Errorf("out of bounds read should be black")
	}

	b.Fill(RGB{1, 2, 3})
	for i, p := range b.Pix() {
		if p != (RGB{1, 2, 3}) {
			t.Fatalf("pixel %d = %v after Fill", i, p)
		}
	}

	packed := b.RGBA(nil)
	if len(packed) != 48 || packed[0] != 1 || packed[1] != 2 || packed[2] != 3 || packed[3] != 0xff {
		t.Errorf("RGBA = %v", packed[:4])
	}
	reuse := make([]byte, 0, 64)
	if got := b.RGBA(reuse); &got[0] != &reuse[:1][0] {
		t.Error("RGBA should reuse a large enough destination")
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Color(2) == p.Color(3) {
		t.Error("distinct surfaces should get distinct colours")
	}
	if p.Color(200) != (RGB{160, 160, 160}) {
		t.Errorf("fallback = %v", p.Color(200))
	}
}

func TestNewCompositorValidation(t *testing.T) {
	tests := []struct {
		name    string
		fov, cs float64
	}{
		{"zero fov", 0, 10},
		{"wide fov", 180, 10},
		{"zero cell", 60, 0},
		{"negative cell", 60, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCompositor(DefaultStyle(), nil, tt.fov, tt.cs); !errors.Is(err, ErrInvalidProjection) {
				t.Errorf("expected ErrInvalidProjection, got %v", err)
			}
		})
	}
}

func flatStyle() Style {
	return Style{
		Ceiling:   RGB{10, 10, 10},
		Floor:     RGB{20, 20, 20},
		SideShade: 0.5,
		MinLight:  1,
	}
}

func TestComposeOverwritesEveryPixel(t *testing.T) {
	c, err := NewCompositor(DefaultStyle(), nil, 60, 10)
	if err != nil {
		t.Fatal(err)
	}
	buf, _ := NewPixelBuffer(32, 24)
	s := player.NewState(50, 50, 5, 0)

	hits := make([]raycast.RayHit, 32)
	for i := range hits {
		switch i % 3 {
		case 0:
			hits[i] = raycast.RayHit{Hit: true, Distance: float64(i + 1), Surface: 2, Axis: raycast.AxisX}
		case 1:
			hits[i] = raycast.RayHit{Hit: true, Distance: 0, Surface: 4, Axis: raycast.AxisY}
		default:
			hits[i] = raycast.RayHit{Hit: false, Distance: 1000}
		}
	}

	for _, tilt := range []int{-45, 0, 45} {
		s.Tilt = s.Tilt.Add(tilt - s.Tilt.Int())
		buf.Fill(sentinel)
		c.Compose(buf, hits, s)
		if len(buf.Pix()) != 32*24 {
			t.Fatalf("buffer resized to %d", len(buf.Pix()))
		}
		for i, p := range buf.Pix() {
			if p == sentinel {
				t.Fatalf("tilt %d: pixel %d (col %d row %d) not written", tilt, i, i%32, i/32)
			}
		}
	}
}

func TestComposeColumnLayout(t *testing.T) {
	c, err := NewCompositor(flatStyle(), nil, 90, 10)
	if err != nil {
		t.Fatal(err)
	}
	buf, _ := NewPixelBuffer(100, 100)
	s := player.NewState(0, 0, 5, 0)

	// focal is 50 px, a wall 10 units away spans rows 25..75
	hits := []raycast.RayHit{
		{Hit: true, Distance: 10, Surface: 1, Axis: raycast.AxisX},
		{Hit: true, Distance: 10, Surface: 1, Axis: raycast.AxisY},
		{Hit: false, Distance: 1000},
	}
	c.Compose(buf, hits, s)

	wallX := c.Shade(hits[0])
	wallY := c.Shade(hits[1])
	if wallY != wallX.Scale(0.5) {
		t.Errorf("side shade: x %v y %v", wallX, wallY)
	}
	for row := 30; row < 70; row++ {
		if buf.At(0, row) != wallX || buf.At(1, row) != wallY {
			t.Fatalf("row %d not wall: %v %v", row, buf.At(0, row), buf.At(1, row))
		}
	}
	for _, row := range []int{0, 10, 20} {
		if buf.At(0, row) != flatStyle().Ceiling {
			t.Errorf("row %d = %v, want ceiling", row, buf.At(0, row))
		}
	}
	for _, row := range []int{80, 90, 99} {
		if buf.At(0, row) != flatStyle().Floor {
			t.Errorf("row %d = %v, want floor", row, buf.At(0, row))
		}
	}

	// No-hit and missing columns split at the horizon
	for _, col := range []int{2, 3, 99} {
		if buf.At(col, 49) != flatStyle().Ceiling || buf.At(col, 50) != flatStyle().Floor {
			t.Errorf("col %d horizon split: %v / %v", col, buf.At(col, 49), buf.At(col, 50))
		}
	}
}

func TestSliceEyeHeight(t *testing.T) {
	c, _ := NewCompositor(flatStyle(), nil, 60, 10)
	buf, _ := NewPixelBuffer(64, 48)

	top, bottom := c.Slice(buf, player.NewState(0, 0, 5, 0), 20)
	mid := (top + bottom) / 2
	if mid < 23.999 || mid > 24.001 {
		t.Errorf("centred eye slice midpoint = %v, want 24", mid)
	}

	// A lower eye sees more of the wall above the horizon
	lt, lb := c.Slice(buf, player.NewState(0, 0, 2, 0), 20)
	if 24-lt <= lb-24 {
		t.Errorf("low eye slice %v..%v not skewed upward", lt, lb)
	}
	if (lb-lt)-(bottom-top) > 1e-9 || (bottom-top)-(lb-lt) > 1e-9 {
		t.Errorf("eye height changed slice height")
	}
}

func TestHorizonTilt(t *testing.T) {
	c, _ := NewCompositor(flatStyle(), nil, 60, 10)
	buf, _ := NewPixelBuffer(64, 48)
	s := player.NewState(0, 0, 5, 0)
	if h := c.Horizon(buf, s); h != 24 {
		t.Errorf("level horizon = %v", h)
	}
	s.Tilt = s.Tilt.Add(20)
	if h := c.Horizon(buf, s); h <= 24 {
		t.Errorf("looking up should move horizon down, got %v", h)
	}
	s.Tilt = s.Tilt.Add(-40)
	if h := c.Horizon(buf, s); h >= 24 {
		t.Errorf("looking down should move horizon up, got %v", h)
	}
}

func TestShadeFalloff(t *testing.T) {
	style := flatStyle()
	style.Falloff = 0.1
	style.MinLight = 0.2
	c, _ := NewCompositor(style, nil, 60, 10)

	near := c.Shade(raycast.RayHit{Hit: true, Distance: 1, Surface: 9})
	far := c.Shade(raycast.RayHit{Hit: true, Distance: 30, Surface: 9})
	floor := c.Shade(raycast.RayHit{Hit: true, Distance: 1e6, Surface: 9})
	if far.R >= near.R {
		t.Errorf("far %v not darker than near %v", far, near)
	}
	if want := DefaultPalette().Color(9).Scale(0.2); floor != want {
		t.Errorf("min light = %v, want %v", floor, want)
	}
}
