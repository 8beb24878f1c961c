package engine

import (
	"sync"
	"time"
)

// Clock supplies the timestamps frame deltas are measured from
type Clock interface {
	Now() time.Time
}

// SystemClock provides the real system time with monotonic clock readings
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock provides a controllable time source for testing
type ManualClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewManualClock creates a manual clock at the given start time
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{currentTime: start}
}

// Now returns the current manual time
func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set moves the clock to t
func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// PausableClock freezes time while paused
// Deltas measured across a pause exclude it, so the player does not jump on resume
type PausableClock struct {
	mu       sync.Mutex
	base     Clock
	paused   bool
	pausedAt time.Time     // base time when the current pause started
	total    time.Duration // cumulative completed pauses
}

// NewPausableClock wraps base, nil uses SystemClock
func NewPausableClock(base Clock) *PausableClock {
	if base == nil {
		base = SystemClock{}
	}
	return &PausableClock{base: base}
}

// Now returns base time minus every pause, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.total)
	}
	return pc.base.Now().Add(-pc.total)
}

// Pause stops time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		pc.paused = true
		pc.pausedAt = pc.base.Now()
	}
}

// Resume continues time advancement, no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		pc.total += pc.base.Now().Sub(pc.pausedAt)
		pc.paused = false
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	pc.mu.Lock()
	paused := pc.paused
	pc.mu.Unlock()

	if paused {
		pc.Resume()
	} else {
		pc.Pause()
	}
	return !paused
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// PausedTotal returns cumulative pause time including a pause in progress
func (pc *PausableClock) PausedTotal() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	total := pc.total
	if pc.paused {
		total += pc.base.Now().Sub(pc.pausedAt)
	}
	return total
}
