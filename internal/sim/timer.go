package sim

import (
	"sync"
	"time"
)

// DefaultTimerWindow is the number of samples averaged before Average
// reports a value.
const DefaultTimerWindow = 50

// Timer accumulates durations and reports their mean once a full window has
// been collected.
type Timer struct {
	mu     sync.Mutex
	window int
	sum    time.Duration
	count  int
}

func NewTimer(window int) *Timer {
	if window < 1 {
		window = 1
	}
	return &Timer{window: window}
}

// Start begins a measurement; call the returned func to record it.
//
//	defer timer.Start()()
func (t *Timer) Start() func() {
	start := time.Now()
	return func() { t.Record(time.Since(start)) }
}

func (t *Timer) Record(d time.Duration) {
	t.mu.Lock()
	t.sum += d
	t.count++
	t.mu.Unlock()
}

// Average returns the mean of the collected samples and clears them, or
// false while fewer than a window's worth have been recorded.
func (t *Timer) Average() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 || t.count < t.window {
		return 0, false
	}
	avg := t.sum / time.Duration(t.count)
	t.sum, t.count = 0, 0
	return avg, true
}
