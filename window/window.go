// Package window runs the engine inside an ebiten window, polling held keys
// each tick and blitting the pixel buffer straight to the screen image.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/parameter"
)

// Toggle keys, kept off the default keymap
const (
	hudKey     = ebiten.KeyF1
	minimapKey = ebiten.KeyF2
	pauseKey   = ebiten.KeyP
)

// Game implements ebiten.Game over an engine.Loop
// ebiten calls Update at a fixed tick rate, so each step uses a constant delta
type Game struct {
	loop   *engine.Loop
	keymap *input.Keymap
	moves  []binding
	quit   []ebiten.Key
	dt     time.Duration
	rgba   []byte

	showHUD     bool
	showMinimap bool
	paused      bool
}

// NewGame binds the keymap to ebiten keys, tps <= 0 uses parameter.WindowTPS
func NewGame(loop *engine.Loop, km *input.Keymap, tps int) *Game {
	if tps <= 0 {
		tps = parameter.WindowTPS
	}
	moves, quit := bindings(km)
	return &Game{
		loop:    loop,
		keymap:  km,
		moves:   moves,
		quit:    quit,
		dt:      time.Second / time.Duration(tps),
		showHUD: true,
	}
}

// Update advances one tick, quit keys end the run with ebiten.Termination
func (g *Game) Update() error {
	for _, k := range g.quit {
		if inpututil.IsKeyJustPressed(k) {
			return ebiten.Termination
		}
	}
	if inpututil.IsKeyJustPressed(hudKey) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(minimapKey) {
		g.showMinimap = !g.showMinimap
	}
	if inpututil.IsKeyJustPressed(pauseKey) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	g.loop.Step(resolve(g.keymap, g.moves, ebiten.IsKeyPressed), g.dt)
	return nil
}

// Draw copies the latest frame and overlays
func (g *Game) Draw(screen *ebiten.Image) {
	g.rgba = g.loop.Buffer().RGBA(g.rgba)
	screen.WritePixels(g.rgba)

	if g.showMinimap {
		drawMinimap(screen, g.loop)
	}
	if g.showHUD {
		s := g.loop.State()
		text := fmt.Sprintf("x %.0f y %.0f yaw %d tilt %d\n%.0f fps",
			s.X(), s.Y(), s.Yaw.Int(), s.Tilt.Int(), ebiten.ActualFPS())
		if g.paused {
			text += "\npaused"
		}
		ebitenutil.DebugPrint(screen, text)
	}
}

// Layout keeps the logical screen at the buffer size, ebiten scales it to the window
func (g *Game) Layout(_, _ int) (int, int) {
	buf := g.loop.Buffer()
	return buf.Width(), buf.Height()
}

// Run opens a window scale times the buffer size and blocks until it closes
func Run(g *Game, title string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	buf := g.loop.Buffer()
	ebiten.SetWindowSize(buf.Width()*scale, buf.Height()*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(int(time.Second / g.dt))

	g.loop.Render()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
