package terminal

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/raycaster/input"
)

// Source turns tcell key events into action snapshots
// Terminals report presses only, so held keys are emulated with an input.Latch
type Source struct {
	keymap *input.Keymap
	latch  *input.Latch
	now    func() time.Time

	quit atomic.Bool

	// OnResize runs on the event goroutine after the terminal changes size
	OnResize func(cols, rows int)

	// Toggles are checked before the keymap, a matching key runs its callback instead of latching
	Toggles map[string]func()
}

// NewSource creates a source over a keymap, hold is passed to input.NewLatch
func NewSource(km *input.Keymap, hold time.Duration) *Source {
	return &Source{
		keymap: km,
		latch:  input.NewLatch(km, hold),
		now:    time.Now,
	}
}

// Listen reads events until the screen is finalized or a quit key arrives
// Intended to run on its own goroutine
func (s *Source) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil || !s.Handle(ev) {
			return
		}
	}
}

// Handle applies one event, returns false once a quit key has been seen
func (s *Source) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := KeyName(ev)
		if name == "" {
			return !s.quit.Load()
		}
		if fn, ok := s.Toggles[name]; ok {
			fn()
			return !s.quit.Load()
		}
		if s.keymap.IsQuit(name) {
			s.quit.Store(true)
			return false
		}
		s.latch.Press(name, s.now())
	case *tcell.EventResize:
		// Focus is usually lost with a resize, drop held keys
		s.latch.Reset()
		if s.OnResize != nil {
			cols, rows := ev.Size()
			s.OnResize(cols, rows)
		}
	}
	return !s.quit.Load()
}

// Poll returns the actions held now, ok is false after a quit key
func (s *Source) Poll() (input.Actions, bool) {
	if s.quit.Load() {
		return 0, false
	}
	return s.latch.Snapshot(s.now()), true
}

// Stop makes Poll report a stop
func (s *Source) Stop() { s.quit.Store(true) }
