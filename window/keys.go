package window

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/raycaster/input"
)

// ebitenKeys maps input.Keymap names to ebiten keys
// Letters are case-insensitive on a keyboard, so only lower case names resolve
var ebitenKeys = map[string]ebiten.Key{
	"a": ebiten.KeyA, "b": ebiten.KeyB, "c": ebiten.KeyC, "d": ebiten.KeyD,
	"e": ebiten.KeyE, "f": ebiten.KeyF, "g": ebiten.KeyG, "h": ebiten.KeyH,
	"i": ebiten.KeyI, "j": ebiten.KeyJ, "k": ebiten.KeyK, "l": ebiten.KeyL,
	"m": ebiten.KeyM, "n": ebiten.KeyN, "o": ebiten.KeyO, "p": ebiten.KeyP,
	"q": ebiten.KeyQ, "r": ebiten.KeyR, "s": ebiten.KeyS, "t": ebiten.KeyT,
	"u": ebiten.KeyU, "v": ebiten.KeyV, "w": ebiten.KeyW, "x": ebiten.KeyX,
	"y": ebiten.KeyY, "z": ebiten.KeyZ,

	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"pgup":  ebiten.KeyPageUp,
	"pgdn":  ebiten.KeyPageDown,
	"home":  ebiten.KeyHome,
	"end":   ebiten.KeyEnd,
	"esc":   ebiten.KeyEscape,
	"enter": ebiten.KeyEnter,
	"tab":   ebiten.KeyTab,
	" ":     ebiten.KeySpace,
}

// KeyFor returns the ebiten key behind a keymap name
func KeyFor(name string) (ebiten.Key, bool) {
	k, ok := ebitenKeys[name]
	return k, ok
}

type binding struct {
	name string
	key  ebiten.Key
}

// bindings resolves every keymap entry that has a physical key
// Quit keys are returned separately, names without an ebiten key are skipped
func bindings(km *input.Keymap) (moves []binding, quit []ebiten.Key) {
	for _, name := range km.Keys() {
		k, ok := KeyFor(name)
		if !ok {
			continue
		}
		if km.IsQuit(name) {
			quit = append(quit, k)
			continue
		}
		moves = append(moves, binding{name: name, key: k})
	}
	sort.Slice(quit, func(i, j int) bool { return quit[i] < quit[j] })
	return moves, quit
}

// resolve collects the held keys through the keymap
func resolve(km *input.Keymap, moves []binding, pressed func(ebiten.Key) bool) input.Actions {
	var names []string
	for _, b := range moves {
		if pressed(b.key) {
			names = append(names, b.name)
		}
	}
	return km.Resolve(names)
}
