// Package debounce coalesces bursts of triggers into a single callback
// after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// afterFunc is swappable for tests.
var afterFunc = time.AfterFunc

// Debouncer runs fn once the delay has elapsed without further
// triggers. Callbacks from superseded timers are dropped even if they
// were already in flight when the next trigger happened.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
	gen   uint64
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = afterFunc(d.delay, func() {
		if d.current(gen) {
			d.fn()
		}
	})
}

// Stop cancels any pending callback. The debouncer stays usable.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}
