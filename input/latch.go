package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/raycaster/parameter"
)

// DefaultHold covers the gap between a terminal's first key press and its auto-repeat
const DefaultHold = parameter.KeyHold

// Latch emulates held keys for devices that only deliver press events
// An action stays active for the hold window after its most recent press
// Safe for one writer (event reader) and one reader (frame loop)
type Latch struct {
	mu     sync.Mutex
	keymap *Keymap
	hold   time.Duration
	until  map[Action]time.Time
}

// NewLatch creates a latch over a keymap, non-positive hold uses DefaultHold
func NewLatch(km *Keymap, hold time.Duration) *Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Latch{
		keymap: km,
		hold:   hold,
		until:  make(map[Action]time.Time),
	}
}

// Press records a key press, returns false if the name is unbound
func (l *Latch) Press(name string, now time.Time) bool {
	a, ok := l.keymap.Lookup(name)
	if !ok {
		return false
	}
	l.mu.Lock()
	l.until[a] = now.Add(l.hold)
	l.mu.Unlock()
	return true
}

// Release drops a key immediately, for devices that do report key-up
func (l *Latch) Release(name string) {
	a, ok := l.keymap.Lookup(name)
	if !ok {
		return
	}
	l.mu.Lock()
	delete(l.until, a)
	l.mu.Unlock()
}

// Snapshot returns every action whose hold window has not elapsed at now
// Expired entries are pruned
func (l *Latch) Snapshot(now time.Time) Actions {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Actions
	for a, deadline := range l.until {
		if now.Before(deadline) {
			s = s.With(a)
		} else {
			delete(l.until, a)
		}
	}
	return s
}

// Reset clears all held actions
func (l *Latch) Reset() {
	l.mu.Lock()
	clear(l.until)
	l.mu.Unlock()
}

// Hold returns the configured hold window
func (l *Latch) Hold() time.Duration { return l.hold }
