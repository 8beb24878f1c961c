package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/render"
)

// InputSource yields the action snapshot for the next frame
// ok=false asks the loop to stop
type InputSource interface {
	Poll() (input.Actions, bool)
}

// Presenter shows a finished frame
type Presenter interface {
	Present(buf *render.PixelBuffer) error
}

// InputFunc adapts a function to InputSource
type InputFunc func() (input.Actions, bool)

// Poll calls f
func (f InputFunc) Poll() (input.Actions, bool) { return f() }

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(*render.PixelBuffer) error

// Present calls f
func (f PresenterFunc) Present(buf *render.PixelBuffer) error { return f(buf) }

// Run ticks at period: poll, step with the clock delta, present
// Returns nil when ctx is cancelled or the source stops, or the first presentation error
func (l *Loop) Run(ctx context.Context, src InputSource, dst Presenter, clock Clock, period time.Duration) error {
	if clock == nil {
		clock = SystemClock{}
	}
	if period <= 0 {
		return fmt.Errorf("%w: frame period %v", ErrInvalidLoop, period)
	}

	if err := dst.Present(l.Render()); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			actions, ok := src.Poll()
			if !ok {
				return nil
			}
			now := clock.Now()
			dt := now.Sub(last)
			last = now

			if err := dst.Present(l.Step(actions, dt)); err != nil {
				return fmt.Errorf("present frame %d: %w", l.frame, err)
			}
		}
	}
}
