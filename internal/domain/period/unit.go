package period

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
)

// Unit is the closed set of time units a period can be measured or stepped in.
type Unit string

const (
	Seconds Unit = "seconds"
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
	Weeks   Unit = "weeks"
	Months  Unit = "months"
	Years   Unit = "years"
)

// unitSeconds holds the fixed length of the clock-based units. Calendar units
// (days and up) are absent because their length depends on the date.
var unitSeconds = map[Unit]int64{
	Seconds: 1,
	Minutes: 60,
	Hours:   60 * 60,
}

// calendarCeiling is the longest a calendar unit can be, in seconds.
var calendarCeiling = map[Unit]int64{
	Days:   25 * 60 * 60,
	Weeks:  7 * 25 * 60 * 60,
	Months: 31 * 25 * 60 * 60,
	Years:  366 * 25 * 60 * 60,
}

// maxUnix bounds Add's results. It is far past any date a period can be
// built from and well inside what time.Time can hold.
const maxUnix int64 = 1 << 62

// Units returns every valid unit, smallest first.
func Units() []Unit {
	return []Unit{Seconds, Minutes, Hours, Days, Weeks, Months, Years}
}

// IsValid reports whether u is one of the defined units.
func (u Unit) IsValid() bool {
	switch u {
	case Seconds, Minutes, Hours, Days, Weeks, Months, Years:
		return true
	default:
		return false
	}
}

func (u Unit) String() string {
	return string(u)
}

// ParseUnit resolves a unit name. Singular and plural forms are accepted
// and matching is case-insensitive ("Day", "days", "DAYS").
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name != "" && !strings.HasSuffix(name, "s") {
		name += "s"
	}

	u := Unit(name)
	if !u.IsValid() {
		return "", &domain.InvalidArgumentError{Argument: "unit", Value: s}
	}
	return u, nil
}

// Add returns t moved by n units. Clock units are exact; calendar units follow
// time.Time.AddDate, so "one day" keeps the wall clock across DST changes and
// month overflow is normalized (Jan 31 + 1 month = Mar 2 or 3). Offsets too
// large to represent saturate at roughly 146 billion years either side of 1970.
func (u Unit) Add(t time.Time, n int) time.Time {
	if secs, ok := unitSeconds[u]; ok {
		// Unix arithmetic avoids the ~292 year limit of time.Duration.
		if overflows(n, secs) {
			return saturate(t, n)
		}
		return addUnix(t, int64(n)*secs)
	}
	if per, ok := calendarCeiling[u]; ok && overflows(n, per) {
		return saturate(t, n)
	}

	switch u {
	case Days:
		return t.AddDate(0, 0, n)
	case Weeks:
		return t.AddDate(0, 0, 7*n)
	case Months:
		return t.AddDate(0, n, 0)
	case Years:
		return t.AddDate(n, 0, 0)
	default:
		return t
	}
}

// overflows reports whether n units of perUnit seconds can leave the
// ±maxUnix range.
func overflows(n int, perUnit int64) bool {
	limit := maxUnix / perUnit
	return int64(n) > limit || int64(n) < -limit
}

// addUnix moves t by secs seconds, clamping the result to ±maxUnix.
func addUnix(t time.Time, secs int64) time.Time {
	base := t.Unix()
	switch {
	case secs > 0 && base > maxUnix-secs:
		base = maxUnix
	case secs < 0 && base < -maxUnix-secs:
		base = -maxUnix
	default:
		base += secs
	}
	return time.Unix(base, int64(t.Nanosecond())).In(t.Location())
}

// saturate returns the bound Add clamps to in the direction of n.
func saturate(t time.Time, n int) time.Time {
	if n < 0 {
		return time.Unix(-maxUnix, 0).In(t.Location())
	}
	return time.Unix(maxUnix, 0).In(t.Location())
}
