package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before typed text is searched
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delays fn until input has been quiet for the configured delay.
// At most one task is pending; arming a new one cancels the previous.
type Debouncer[T any] struct {
	delay time.Duration
	clock Clock
	fn    func(T)

	mu      sync.Mutex
	pending Timer
	seq     uint64
}

// NewDebouncer creates a debouncer calling fn with the latest input.
// A nil clock uses RealClock; a negative delay uses DefaultDebounce.
func NewDebouncer[T any](delay time.Duration, clock Clock, fn func(T)) *Debouncer[T] {
	if clock == nil {
		clock = RealClock{}
	}
	if delay < 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{delay: delay, clock: clock, fn: fn}
}

// OnInput cancels any pending task and arms a new one carrying v
func (d *Debouncer[T]) OnInput(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = d.clock.AfterFunc(d.delay, func() {
		d.fire(seq, v)
	})
}

// Cancel stops the pending task, if any
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.seq++
}

// fire runs fn unless a newer task was armed after this one.
// Stop can lose the race with a timer that already started.
func (d *Debouncer[T]) fire(seq uint64, v T) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.fn(v)
}
