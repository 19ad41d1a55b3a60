package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

// stubTimers replaces the timer factory with one that only records
// callbacks, so tests can fire them by hand in any order.
func stubTimers(t *testing.T) *[]func() {
	t.Helper()
	orig := afterFunc
	t.Cleanup(func() { afterFunc = orig })

	callbacks := &[]func(){}
	afterFunc = func(_ time.Duration, f func()) *time.Timer {
		*callbacks = append(*callbacks, f)
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		return timer
	}
	return callbacks
}

func TestTriggerDropsSupersededCallback(t *testing.T) {
	callbacks := stubTimers(t)

	var called atomic.Int32
	d := New(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Trigger()

	if len(*callbacks) != 2 {
		t.Fatalf("scheduled callbacks = %d, want 2", len(*callbacks))
	}
	for _, cb := range *callbacks {
		cb()
	}
	if got := called.Load(); got != 1 {
		t.Fatalf("callback ran %d times, want only the latest once", got)
	}
}

func TestStopDropsPendingCallback(t *testing.T) {
	callbacks := stubTimers(t)

	var called atomic.Int32
	d := New(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Stop()

	if len(*callbacks) != 1 {
		t.Fatalf("scheduled callbacks = %d, want 1", len(*callbacks))
	}
	(*callbacks)[0]()
	if got := called.Load(); got != 0 {
		t.Fatalf("callback ran %d times after Stop", got)
	}
}

func TestTriggerCoalesces(t *testing.T) {
	var called atomic.Int32
	done := make(chan struct{})
	d := New(10*time.Millisecond, func() {
		called.Add(1)
		close(done)
	})

	d.Trigger()
	d.Trigger()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}
	if got := called.Load(); got != 1 {
		t.Fatalf("callback ran %d times, want 1", got)
	}
}

func TestTriggerAfterStop(t *testing.T) {
	var called atomic.Int32
	done := make(chan struct{})
	d := New(10*time.Millisecond, func() {
		if called.Add(1) == 1 {
			close(done)
		}
	})

	d.Trigger()
	d.Stop()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer unusable after Stop")
	}
}
