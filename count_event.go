package async

import "sync/atomic"

// CountEvent is an atomic down-counter that fires a callback exactly once,
// when it reaches zero. It is primed with n+1 rather than n, the same bias
// async_simple's CountEvent uses: the fan-out loop issuing the n Schedule
// calls holds one phantom count of its own, releases it only after the last
// Schedule has been issued, so the Nth real completion can never race ahead
// of the fan-out loop still issuing later schedules (spec.md §6.2).
type CountEvent struct {
	counter atomic.Int64
	onZero  func()
}

// NewCountEvent creates a CountEvent for n participants. Call Down once per
// completed participant and once more (or call Arm) once the fan-out loop has
// finished issuing all n schedules.
func NewCountEvent(n int, onZero func()) *CountEvent {
	ce := &CountEvent{onZero: onZero}
	ce.counter.Store(int64(n) + 1)
	return ce
}

// Down decrements the counter, invoking onZero exactly once when it reaches
// zero.
func (ce *CountEvent) Down() {
	if ce.counter.Add(-1) == 0 {
		ce.onZero()
	}
}

// Arm releases the fan-out loop's own phantom count. Equivalent to Down, kept
// as a distinct name for readability at call sites.
func (ce *CountEvent) Arm() {
	ce.Down()
}
