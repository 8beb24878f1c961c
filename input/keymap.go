package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Binding names outside the action set
const (
	bindQuit = "quit"
	bindNone = "none"
)

// Keymap binds device-independent key names to actions
// Key names are lowercase: single characters ("w"), or named keys
// ("up", "down", "left", "right", "pgup", "pgdn", "space", "esc", ...)
type Keymap struct {
	actions map[string]Action
	quit    map[string]bool
	unbind  map[string]bool // only meaningful on override maps
}

// NewKeymap returns an empty keymap
func NewKeymap() *Keymap {
	return &Keymap{
		actions: make(map[string]Action),
		quit:    make(map[string]bool),
		unbind:  make(map[string]bool),
	}
}

// DefaultKeymap is WASD movement with Q/E strafing, arrows mirroring it, R/F and
// PgUp/PgDn for look
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	km.Bind("w", Forward)
	km.Bind("s", Backward)
	km.Bind("a", TurnLeft)
	km.Bind("d", TurnRight)
	km.Bind("q", StrafeLeft)
	km.Bind("e", StrafeRight)
	km.Bind("r", LookUp)
	km.Bind("f", LookDown)
	km.Bind("up", Forward)
	km.Bind("down", Backward)
	km.Bind("left", TurnLeft)
	km.Bind("right", TurnRight)
	km.Bind("pgup", LookUp)
	km.Bind("pgdn", LookDown)
	km.BindQuit("esc")
	km.BindQuit("ctrl+c")
	return km
}

// Bind maps a key name to an action, replacing any previous binding
func (km *Keymap) Bind(key string, a Action) {
	key = normalizeKey(key)
	delete(km.quit, key)
	delete(km.unbind, key)
	km.actions[key] = a
}

// BindQuit marks a key name as the stop signal
func (km *Keymap) BindQuit(key string) {
	key = normalizeKey(key)
	delete(km.actions, key)
	delete(km.unbind, key)
	km.quit[key] = true
}

// Unbind removes a key name, recorded so Merge can delete it from a base map
func (km *Keymap) Unbind(key string) {
	key = normalizeKey(key)
	delete(km.actions, key)
	delete(km.quit, key)
	km.unbind[key] = true
}

// Lookup returns the action bound to a key name
func (km *Keymap) Lookup(key string) (Action, bool) {
	a, ok := km.actions[normalizeKey(key)]
	return a, ok
}

// IsQuit reports whether a key name is bound to quit
func (km *Keymap) IsQuit(key string) bool {
	return km.quit[normalizeKey(key)]
}

// Resolve folds currently pressed key names into one snapshot, unbound names are ignored
func (km *Keymap) Resolve(pressed []string) Actions {
	var s Actions
	for _, k := range pressed {
		if a, ok := km.actions[normalizeKey(k)]; ok {
			s = s.With(a)
		}
	}
	return s
}

// Keys returns every bound key name in sorted order, quit keys included
// Used by adapters that poll held state per key
func (km *Keymap) Keys() []string {
	keys := make([]string, 0, len(km.actions)+len(km.quit))
	for k := range km.actions {
		keys = append(keys, k)
	}
	for k := range km.quit {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy
func (km *Keymap) Clone() *Keymap {
	c := NewKeymap()
	for k, v := range km.actions {
		c.actions[k] = v
	}
	for k := range km.quit {
		c.quit[k] = true
	}
	for k := range km.unbind {
		c.unbind[k] = true
	}
	return c
}

// Merge returns base overridden by override; "none" entries in override delete keys
func Merge(base, override *Keymap) *Keymap {
	result := base.Clone()
	result.unbind = make(map[string]bool)
	if override == nil {
		return result
	}
	for k := range override.unbind {
		delete(result.actions, k)
		delete(result.quit, k)
	}
	for k, v := range override.actions {
		result.Bind(k, v)
	}
	for k := range override.quit {
		result.BindQuit(k)
	}
	result.unbind = make(map[string]bool)
	return result
}

// LoadKeymap parses TOML bindings into a sparse override keymap
//
//	[keys]
//	w = "forward"
//	x = "none"
//	esc = "quit"
//
// Returns error on unknown action names or parse failure
func LoadKeymap(data []byte) (*Keymap, error) {
	var doc struct {
		Keys map[string]string `toml:"keys"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return KeymapFrom(doc.Keys)
}

// KeymapFrom builds an override keymap from name → action-name pairs
func KeymapFrom(bindings map[string]string) (*Keymap, error) {
	km := NewKeymap()
	for key, name := range bindings {
		if normalizeKey(key) == "" {
			return nil, fmt.Errorf("[keys] empty key name")
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case bindQuit:
			km.BindQuit(key)
		case bindNone:
			km.Unbind(key)
		default:
			a, err := ParseAction(name)
			if err != nil {
				return nil, fmt.Errorf("[keys] key %q: %w", key, err)
			}
			km.Bind(key, a)
		}
	}
	return km, nil
}

// Key names are case-insensitive except for single characters, so "W" (shifted) stays distinct
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len([]rune(key)) == 1 {
		return key
	}
	switch strings.ToLower(key) {
	case "space":
		return " "
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	case "escape":
		return "esc"
	}
	return strings.ToLower(key)
}
