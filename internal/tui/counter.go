package tui

import (
	"math"
	"time"
)

// CountDuration is how long a highlight counter takes to reach its value.
const CountDuration = 2000 * time.Millisecond

// CountTickInterval is the re-render interval while counters are running.
const CountTickInterval = 50 * time.Millisecond

// Counter animates the About highlights from zero to their final value.
// Counting starts once, the first time Start is called; later calls are
// ignored so scrolling back to the section does not restart it.
type Counter struct {
	duration time.Duration
	started  time.Time
}

// NewCounter creates a counter that has not started yet.
func NewCounter(duration time.Duration) *Counter {
	if duration <= 0 {
		duration = CountDuration
	}
	return &Counter{duration: duration}
}

// Start begins counting at now. It reports whether this call started it.
func (counter *Counter) Start(now time.Time) bool {
	if counter.Started() {
		return false
	}
	counter.started = now
	return true
}

// Started reports whether Start has been called.
func (counter *Counter) Started() bool {
	return !counter.started.IsZero()
}

// Progress returns the elapsed fraction in [0, 1].
func (counter *Counter) Progress(now time.Time) float64 {
	if !counter.Started() {
		return 0
	}
	elapsed := now.Sub(counter.started)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= counter.duration {
		return 1
	}
	return float64(elapsed) / float64(counter.duration)
}

// Value returns floor(progress × end).
func (counter *Counter) Value(end int, now time.Time) int {
	return int(math.Floor(counter.Progress(now) * float64(end)))
}

// Running reports whether the counter has started and not yet finished.
func (counter *Counter) Running(now time.Time) bool {
	progress := counter.Progress(now)
	return counter.Started() && progress < 1
}
