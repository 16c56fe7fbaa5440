package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into one call made after a quiet period.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	pending  bool
	inflight sync.WaitGroup // scheduled or running calls
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce executes fn after the debounce duration has elapsed without any
// new calls. Rapid successive calls reset the timer; only the last fn runs.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = true
	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.duration, func() {
		defer d.inflight.Done()
		d.mu.Lock()
		d.pending = false
		d.mu.Unlock()
		fn()
	})
}

// stopLocked stops the timer. A call that never started is released from
// inflight here; one that already fired releases itself.
func (d *Debouncer) stopLocked() {
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.timer = nil
}

// Pending reports whether a call is scheduled but has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Cancel cancels any pending debounced function call. A call that has
// already started keeps running; use Wait to block until it returns.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = false
}

// Wait blocks until no debounced call is scheduled or running.
func (d *Debouncer) Wait() {
	d.inflight.Wait()
}

// Immediate executes the function immediately and cancels any pending call
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}
