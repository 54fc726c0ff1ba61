package search

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls into a single downstream invocation: each
// Call cancels the previously scheduled one and reschedules, so only the
// last argument within a quiet window fires, exactly once. Cancellation only
// reaches calls that have not fired yet; an invocation already running is
// never interrupted.
type Debouncer struct {
	window time.Duration
	fn     func(string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer wraps fn with a quiet-period of window
func NewDebouncer(window time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Call schedules fn(arg) after the quiet window, replacing any pending call
func (d *Debouncer) Call(arg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.fn(arg)
	})
}

// Stop cancels any pending call without firing it
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
