package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/render"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"lower rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "w"},
		{"upper rune keeps case", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), "W"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " "},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "pgdn"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyName(tt.ev); got != tt.want {
				t.Errorf("KeyName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSampleCell(t *testing.T) {
	buf, err := render.NewPixelBuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			buf.Set(col, row, render.RGB{R: uint8(col), G: uint8(row)})
		}
	}

	// Same size: each cell covers two buffer rows
	top, bottom := sampleCell(buf, 4, 2, 3, 1)
	if top != (render.RGB{R: 3, G: 2}) || bottom != (render.RGB{R: 3, G: 3}) {
		t.Errorf("1:1 sample = %v %v", top, bottom)
	}

	// Double width: columns repeat
	top, _ = sampleCell(buf, 8, 2, 5, 0)
	if top.R != 2 {
		t.Errorf("upscaled column = %d, want 2", top.R)
	}

	// Half height: one cell spans the whole buffer
	top, bottom = sampleCell(buf, 4, 1, 0, 0)
	if top.G != 0 || bottom.G != 2 {
		t.Errorf("downscaled rows = %d %d, want 0 2", top.G, bottom.G)
	}
}

func newSimPresenter(t *testing.T, cols, rows int) (*Presenter, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	p := NewWithScreen(sim)
	if err := p.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Fini)
	sim.SetSize(cols, rows)
	return p, sim
}

func TestPresentHalfBlocks(t *testing.T) {
	p, sim := newSimPresenter(t, 2, 1)

	buf, err := render.NewPixelBuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	upper := render.RGB{R: 200, G: 10, B: 10}
	lower := render.RGB{R: 10, G: 10, B: 200}
	for col := 0; col < 2; col++ {
		buf.Set(col, 0, upper)
		buf.Set(col, 1, lower)
	}
	if err := p.Present(buf); err != nil {
		t.Fatal(err)
	}

	want := tcell.StyleDefault.Foreground(rgbColor(upper)).Background(rgbColor(lower))
	for x := 0; x < 2; x++ {
		r, _, style, _ := sim.GetContent(x, 0)
		if r != halfBlock {
			t.Errorf("cell %d rune = %q", x, r)
		}
		if style != want {
			t.Errorf("cell %d style mismatch", x)
		}
	}
}

func TestPresentStatusLine(t *testing.T) {
	p, sim := newSimPresenter(t, 6, 3)
	p.SetStatus("yaw 90")

	buf, err := render.NewPixelBuffer(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Present(buf); err != nil {
		t.Fatal(err)
	}
	for x, want := range "yaw 90" {
		if r, _, _, _ := sim.GetContent(x, 2); r != want {
			t.Errorf("status col %d = %q, want %q", x, r, want)
		}
	}
	if r, _, _, _ := sim.GetContent(0, 1); r != halfBlock {
		t.Errorf("frame row above status = %q", r)
	}
}

func TestPresentNilBuffer(t *testing.T) {
	p, _ := newSimPresenter(t, 4, 2)
	if err := p.Present(nil); !errors.Is(err, render.ErrInvalidBuffer) {
		t.Errorf("expected ErrInvalidBuffer, got %v", err)
	}
}

func TestSourceHoldAndQuit(t *testing.T) {
	src := NewSource(input.DefaultKeymap(), 100*time.Millisecond)
	base := time.Unix(1000, 0)
	now := base
	src.now = func() time.Time { return now }

	if !src.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) {
		t.Fatal("movement key stopped the source")
	}
	src.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	actions, ok := src.Poll()
	if !ok || !actions.Has(input.Forward) || !actions.Has(input.TurnLeft) {
		t.Errorf("poll = %v %v, want forward and turn_left", actions, ok)
	}

	now = base.Add(150 * time.Millisecond)
	if actions, _ := src.Poll(); actions != 0 {
		t.Errorf("held past window: %v", actions)
	}

	if src.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not stop the source")
	}
	if _, ok := src.Poll(); ok {
		t.Error("poll still ok after quit")
	}
}

func TestSourceResizeDropsKeys(t *testing.T) {
	src := NewSource(input.DefaultKeymap(), time.Second)
	var cols, rows int
	src.OnResize = func(c, r int) { cols, rows = c, r }

	src.Handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	src.Handle(tcell.NewEventResize(120, 40))

	if cols != 120 || rows != 40 {
		t.Errorf("resize callback got %dx%d", cols, rows)
	}
	if actions, ok := src.Poll(); !ok || actions != 0 {
		t.Errorf("poll after resize = %v %v", actions, ok)
	}
}

func TestSourceStop(t *testing.T) {
	src := NewSource(input.DefaultKeymap(), 0)
	src.Stop()
	if _, ok := src.Poll(); ok {
		t.Error("poll ok after Stop")
	}
}

func TestSourceToggle(t *testing.T) {
	src := NewSource(input.DefaultKeymap(), time.Second)
	flips := 0
	src.Toggles = map[string]func(){"w": func() { flips++ }}

	src.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	src.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if flips != 2 {
		t.Errorf("toggle ran %d times", flips)
	}
	if actions, _ := src.Poll(); actions.Has(input.Forward) {
		t.Error("toggle key also latched its action")
	}
}
