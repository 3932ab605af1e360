package period

import (
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain/period/humanize"
)

// Diff is the calendar difference between two instants broken into
// components, each already reduced below the next larger unit (so Hours is
// 0-23, Minutes 0-59, ...). Invert is set when the start lies after the end;
// the components are then the magnitude of the difference.
type Diff struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Invert  bool
}

// IsZero reports whether every component is zero.
func (d Diff) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// Parts lists the components largest first, in the form the interval
// formatter consumes.
func (d Diff) Parts() []humanize.Part {
	return []humanize.Part{
		{Value: int64(d.Years), Unit: "year"},
		{Value: int64(d.Months), Unit: "month"},
		{Value: int64(d.Days), Unit: "day"},
		{Value: int64(d.Hours), Unit: "hour"},
		{Value: int64(d.Minutes), Unit: "minute"},
		{Value: int64(d.Seconds), Unit: "second"},
	}
}

// Diff computes the calendar difference from start to end.
func (p *Period) Diff() Diff {
	return Between(p.start, p.end)
}

// Between computes the calendar difference from a to b. Both instants are
// compared on b's wall clock, so a "day" is a calendar day even across a DST
// change. Months are counted first; a month step that would land past the
// last day of a shorter month is clamped to that last day. Sub-second parts
// are ignored.
func Between(a, b time.Time) Diff {
	var d Diff
	if a.After(b) {
		a, b = b, a
		d.Invert = true
	}

	from := wallClock(a.In(b.Location()))
	to := wallClock(b)

	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	anchor := addMonthsClamped(from, months)
	if anchor.After(to) {
		months--
		anchor = addMonthsClamped(from, months)
	}

	rest := to.Sub(anchor)
	d.Years = months / 12
	d.Months = months % 12
	d.Days = int(rest / (24 * time.Hour))
	rest %= 24 * time.Hour
	d.Hours = int(rest / time.Hour)
	rest %= time.Hour
	d.Minutes = int(rest / time.Minute)
	rest %= time.Minute
	d.Seconds = int(rest / time.Second)

	return d
}

// wallClock maps t's wall clock onto UTC at whole-second precision so that
// subtraction is free of zone transitions.
func wallClock(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

// addMonthsClamped adds n months to t, clamping the day to the target
// month's length instead of overflowing into the next month.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, mo, d := t.Date()
	first := time.Date(y, mo+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	h, mi, s := t.Clock()
	return time.Date(first.Year(), first.Month(), d, h, mi, s, 0, time.UTC)
}
