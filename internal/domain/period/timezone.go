package period

import (
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
)

// ToTimezone reinterprets both instants and converts them to tzOut.
//
// This is NOT a plain zone conversion. Each instant's wall clock, as it
// currently reads, is taken to have been written in tzIn (default "UTC"),
// discarding whatever offset the instant carried. The resulting instant is
// then converted to tzOut. Across DST transitions in tzIn a wall clock may
// be ambiguous or skipped; time.Date resolves those cases.
//
// The Period is modified in place. On an unknown zone name the Period is left
// untouched and a *domain.InvalidArgumentError wrapping the loader error is
// returned.
func (p *Period) ToTimezone(tzOut string, tzIn ...string) (*Period, error) {
	in := DefaultTimezone
	if len(tzIn) > 0 && tzIn[0] != "" {
		in = tzIn[0]
	}
	return p.reinterpret(in, tzOut)
}

// ConvertToTimezone is ToTimezone with the arguments swapped: the wall clock
// is read as tzIn and converted to tzOut (default "UTC").
func (p *Period) ConvertToTimezone(tzIn string, tzOut ...string) (*Period, error) {
	out := DefaultTimezone
	if len(tzOut) > 0 && tzOut[0] != "" {
		out = tzOut[0]
	}
	return p.reinterpret(tzIn, out)
}

func (p *Period) reinterpret(tzIn, tzOut string) (*Period, error) {
	in, err := LoadLocation("from_timezone", tzIn)
	if err != nil {
		return p, err
	}
	out, err := LoadLocation("to_timezone", tzOut)
	if err != nil {
		return p, err
	}

	p.start = Reinterpret(p.start, in).In(out)
	p.end = Reinterpret(p.end, in).In(out)
	return p, nil
}

// Reinterpret returns the instant whose wall clock in loc matches the wall
// clock t currently shows.
func Reinterpret(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), loc)
}

// LoadLocation resolves an IANA zone name. Failures are reported as a
// *domain.InvalidArgumentError naming argument, wrapping the loader error.
func LoadLocation(argument, name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &domain.InvalidArgumentError{Argument: argument, Value: name, Err: err}
	}
	return loc, nil
}
