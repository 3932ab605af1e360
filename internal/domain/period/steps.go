package period

import (
	"iter"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
)

// ByStep returns the instants start, start+interval, start+2*interval, ...
// that do not pass end, measured in unit. The start is always included when
// the period is ordered; the end is included only when a step lands on it
// exactly.
//
// The sequence is lazy and can be ranged over any number of times. It reads
// the bounds the Period has when ByStep is called. Each point is computed
// from start rather than from the previous point, so month and year steps do
// not drift after a short month. The sequence ends early if the next point
// would not be after the previous one.
func (p *Period) ByStep(interval int, unit Unit) (iter.Seq[time.Time], error) {
	if interval <= 0 {
		return nil, &domain.InvalidArgumentError{
			Argument: "interval",
			Value:    strconv.Itoa(interval),
			Err:      errNotPositive,
		}
	}
	if !unit.IsValid() {
		return nil, &domain.InvalidArgumentError{Argument: "scale", Value: string(unit)}
	}

	start, end := p.start, p.end
	return func(yield func(time.Time) bool) {
		var prev time.Time
		for i := 0; ; i++ {
			if i > 0 && interval > math.MaxInt/i {
				return
			}
			t := unit.Add(start, i*interval)
			if t.After(end) || (i > 0 && !t.After(prev)) {
				return
			}
			if !yield(t) {
				return
			}
			prev = t
		}
	}, nil
}

// ByStepString is ByStep with the unit given by name, e.g. (5, "minutes").
func (p *Period) ByStepString(interval int, scale string) (iter.Seq[time.Time], error) {
	unit, err := ParseUnit(scale)
	if err != nil {
		return nil, err
	}
	return p.ByStep(interval, unit)
}

// BySteps divides the period into steps equal intervals of whole seconds,
// rounding the interval up, and returns ByStep(interval, Seconds).
//
// A span that divides evenly yields steps+1 points, both ends included.
// Otherwise rounding up means the last point falls short of end and at most
// steps points are produced. A zero-length period yields its single instant.
func (p *Period) BySteps(steps int) (iter.Seq[time.Time], error) {
	secs, err := p.StepInterval(steps)
	if err != nil {
		return nil, err
	}
	return p.ByStep(int(min(secs, math.MaxInt)), Seconds)
}

// StepInterval reports the interval BySteps would use, in whole seconds.
func (p *Period) StepInterval(steps int) (int64, error) {
	if steps <= 0 {
		return 0, &domain.InvalidArgumentError{
			Argument: "steps",
			Value:    strconv.Itoa(steps),
			Err:      errNotPositive,
		}
	}
	return max(ceilDiv(p.end.Unix()-p.start.Unix(), int64(steps)), 1), nil
}

// Collect drains seq into a slice, stopping once limit points have been
// read. A limit <= 0 means no limit. truncated reports whether points were
// left unread.
func Collect(seq iter.Seq[time.Time], limit int) (points []time.Time, truncated bool) {
	if limit <= 0 {
		return slices.Collect(seq), false
	}

	for t := range seq {
		if len(points) == limit {
			return points, true
		}
		points = append(points, t)
	}
	return points, false
}

// ceilDiv divides a by positive b rounding toward positive infinity.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
