package period

import "time"

// Clock supplies the current instant. Relative factories and Create read "now"
// through a Clock so callers can pin time in tests or source it elsewhere.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the process wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Now returns the clock's current instant with the sub-second component
// zeroed, so repeated calls within one second produce identical periods.
// A nil clock falls back to SystemClock.
func Now(clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock
	}
	return TruncateToSecond(clock.Now())
}

// TruncateToSecond zeroes the sub-second component of t, keeping its location.
func TruncateToSecond(t time.Time) time.Time {
	return t.Truncate(time.Second)
}
