// Package clock provides the monotonic microsecond time base the control
// loop runs against. All waiting in the system is a busy-wait on a Clock,
// which keeps pulse timing independent of OS timer granularity and lets
// tests substitute a scripted clock.
package clock

// Micros is a monotonic timestamp (or duration) in microseconds.
type Micros int64

// Clock reports monotonic time. Implementations must never go backwards.
type Clock interface {
	Now() Micros
}

// WaitUntil busy-waits until the absolute deadline has been reached.
// A deadline already in the past returns immediately.
func WaitUntil(c Clock, deadline Micros) {
	for c.Now() < deadline {
	}
}

// Sleep busy-waits for the given duration from now.
func Sleep(c Clock, d Micros) {
	WaitUntil(c, c.Now()+d)
}
