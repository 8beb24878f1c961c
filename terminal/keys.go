package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// specialKeys maps non-rune keys to keymap names
var specialKeys = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdn",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyEscape: "esc",
	tcell.KeyEnter:  "enter",
	tcell.KeyTab:    "tab",
	tcell.KeyCtrlC:  "ctrl+c",
}

// KeyName converts a key event to the name used by input.Keymap
// Printable keys keep their case, unknown keys return ""
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return specialKeys[ev.Key()]
}
