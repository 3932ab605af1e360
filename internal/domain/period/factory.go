package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jsamuelsen11/period-service/internal/domain"
)

// Factory creates periods anchored to the instant reported by its Clock.
// The package-level helpers use a Factory bound to SystemClock.
type Factory struct {
	clock Clock
}

// NewFactory returns a Factory reading time from clock. A nil clock uses
// SystemClock.
func NewFactory(clock Clock) *Factory {
	if clock == nil {
		clock = SystemClock
	}
	return &Factory{clock: clock}
}

var defaultFactory = NewFactory(nil)

var (
	errStartRequired = errors.New("start date " + domain.MsgRequired)
	errNotPositive   = errors.New("must be positive")
)

// Now returns the factory clock's instant truncated to whole seconds.
func (f *Factory) Now() time.Time {
	return Now(f.clock)
}

// Create builds a Period from loosely typed inputs. Each argument may be a
// time.Time, a *time.Time or date text. Text is parsed in UTC unless it
// carries its own offset; the literal "now" resolves to the factory clock.
//
// A nil, empty or zero end defaults to now. The start is required: nil, empty
// text and the zero time.Time (including through a *time.Time) all count as
// absent, so 0001-01-01 00:00:00 UTC cannot be used as a start.
func (f *Factory) Create(start, end any, opts ...Option) (*Period, error) {
	s, ok, err := f.instant("start_date", start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.InvalidArgumentError{Argument: "start_date", Err: errStartRequired}
	}

	e, ok, err := f.instant("end_date", end)
	if err != nil {
		return nil, err
	}
	if !ok {
		e = f.Now()
	}

	return New(s, e, opts...)
}

// Relative builds the period [now - startOffset units, now + endOffset units].
// A zero endOffset ends the period at now. Negative offsets are allowed as
// long as the result stays ordered.
func (f *Factory) Relative(unit Unit, startOffset, endOffset int, opts ...Option) (*Period, error) {
	if !unit.IsValid() {
		return nil, &domain.InvalidArgumentError{Argument: "unit", Value: string(unit)}
	}

	now := f.Now()
	end := now
	if endOffset != 0 {
		end = unit.Add(now, endOffset)
	}
	start := unit.Add(now, -startOffset)

	return New(start, end, opts...)
}

// Minutes is Relative(Minutes, startOffset, endOffset).
func (f *Factory) Minutes(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Minutes, startOffset, endOffset, opts...)
}

// Hours is Relative(Hours, startOffset, endOffset).
func (f *Factory) Hours(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Hours, startOffset, endOffset, opts...)
}

// Days is Relative(Days, startOffset, endOffset).
func (f *Factory) Days(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Days, startOffset, endOffset, opts...)
}

// Weeks is Relative(Weeks, startOffset, endOffset).
func (f *Factory) Weeks(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Weeks, startOffset, endOffset, opts...)
}

// Months is Relative(Months, startOffset, endOffset).
func (f *Factory) Months(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Months, startOffset, endOffset, opts...)
}

// Years is Relative(Years, startOffset, endOffset).
func (f *Factory) Years(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return f.Relative(Years, startOffset, endOffset, opts...)
}

// instant resolves one Create argument. ok is false when the argument is
// absent (nil, empty text or the zero time).
func (f *Factory) instant(name string, v any) (time.Time, bool, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return t, !t.IsZero(), nil
	case *time.Time:
		if t == nil {
			return time.Time{}, false, nil
		}
		return *t, !t.IsZero(), nil
	case string:
		return f.parse(name, t)
	default:
		return time.Time{}, false, &domain.InvalidArgumentError{
			Argument: name,
			Value:    fmt.Sprintf("%v", v),
			Err:      fmt.Errorf("unsupported type %T", v),
		}
	}
}

func (f *Factory) parse(name, text string) (time.Time, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false, nil
	}
	if strings.EqualFold(text, "now") {
		return f.Now(), true, nil
	}

	t, err := ParseInstant(name, text)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// ParseInstant parses free-form date text in UTC unless the text carries its
// own offset. Failures are reported as a *domain.InvalidArgumentError naming
// argument.
func ParseInstant(argument, text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, &domain.InvalidArgumentError{Argument: argument, Value: text, Err: err}
	}
	return t, nil
}

// Create builds a Period using the system clock. See Factory.Create.
func Create(start, end any, opts ...Option) (*Period, error) {
	return defaultFactory.Create(start, end, opts...)
}

// Relative builds a period around the current system time. See Factory.Relative.
func Relative(unit Unit, startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Relative(unit, startOffset, endOffset, opts...)
}

// MinutesAgo returns the period from startOffset minutes ago up to now
// (or endOffset minutes from now, when non-zero).
func MinutesAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Minutes(startOffset, endOffset, opts...)
}

// HoursAgo is the hour-based counterpart of MinutesAgo.
func HoursAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Hours(startOffset, endOffset, opts...)
}

// DaysAgo is the day-based counterpart of MinutesAgo.
func DaysAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Days(startOffset, endOffset, opts...)
}

// WeeksAgo is the week-based counterpart of MinutesAgo.
func WeeksAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Weeks(startOffset, endOffset, opts...)
}

// MonthsAgo is the month-based counterpart of MinutesAgo.
func MonthsAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Months(startOffset, endOffset, opts...)
}

// YearsAgo is the year-based counterpart of MinutesAgo.
func YearsAgo(startOffset, endOffset int, opts ...Option) (*Period, error) {
	return defaultFactory.Years(startOffset, endOffset, opts...)
}
