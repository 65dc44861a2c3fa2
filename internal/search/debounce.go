package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last trigger before a search fires.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer collapses rapid triggers into a single deferred firing. Each
// Trigger cancels the previous pending one, so only the function passed to
// the final call in a burst runs.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer builds a debouncer with the given delay. Non-positive delays
// fall back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the debounce delay, replacing any firing
// still pending. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending firing. It does not wait for a firing already in
// progress.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
