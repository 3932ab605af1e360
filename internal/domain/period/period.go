// Package period provides the Period value object: an ordered pair of instants
// with construction helpers, timezone reinterpretation, interval subdivision,
// clamping and human-readable diff formatting.
//
// Construction validates ordering:
//
//	p, err := period.New(start, end)
//	p, err := period.Create("2024-01-01", "2024-02-01 12:00")
//	p, err := period.DaysAgo(7, 0) // the last seven days up to now
//
// Mutators (ToTimezone, ConvertToTimezone, LimitStartDate, LimitEndDate)
// change the Period in place and return it for chaining. A Period is not safe
// for concurrent mutation; callers sharing one must serialize access.
package period

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/domain/period/humanize"
)

const (
	// DefaultTimezone is the timezone label a Period carries unless told otherwise.
	DefaultTimezone = "UTC"

	// DefaultOutputFormat is the Go reference layout used by String.
	DefaultOutputFormat = "2006-01-02 15:04:05"
)

// Period is a start and end instant plus display metadata.
//
// The timezone label is informational; it is not applied to the instants.
// The output format only affects String.
type Period struct {
	start        time.Time
	end          time.Time
	timezone     string
	outputFormat string
}

// Option configures a Period at construction.
type Option func(*Period)

// WithTimezone sets the informational timezone label. Empty values are ignored.
func WithTimezone(tz string) Option {
	return func(p *Period) {
		if tz != "" {
			p.timezone = tz
		}
	}
}

// WithOutputFormat sets the layout used by String. Empty values are ignored.
func WithOutputFormat(layout string) Option {
	return func(p *Period) {
		if layout != "" {
			p.outputFormat = layout
		}
	}
}

// New builds a Period. It returns a *domain.InvalidPeriodError when start is
// strictly after end; equal instants form a valid, empty period.
func New(start, end time.Time, opts ...Option) (*Period, error) {
	if start.After(end) {
		return nil, &domain.InvalidPeriodError{Start: start, End: end}
	}

	p := &Period{
		start:        start,
		end:          end,
		timezone:     DefaultTimezone,
		outputFormat: DefaultOutputFormat,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Start returns the start instant.
func (p *Period) Start() time.Time { return p.start }

// End returns the end instant.
func (p *Period) End() time.Time { return p.end }

// Timezone returns the informational timezone label.
func (p *Period) Timezone() string { return p.timezone }

// OutputFormat returns the layout used by String.
func (p *Period) OutputFormat() string { return p.outputFormat }

// Duration returns the absolute time elapsed between start and end. It is
// negative only if clamping pushed start past end.
func (p *Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Clone returns an independent copy of p.
func (p *Period) Clone() *Period {
	c := *p
	return &c
}

// ToArray returns the instants as [start, end].
func (p *Period) ToArray() [2]time.Time {
	return [2]time.Time{p.start, p.end}
}

// Validate reports whether start is still at or before end. Construction
// guarantees this; clamping does not re-check it.
func (p *Period) Validate() error {
	if p.start.After(p.end) {
		return &domain.InvalidPeriodError{Start: p.start, End: p.end}
	}
	return nil
}

// LimitStartDate moves start forward to limit when limit is later than start.
// Ordering is not re-checked: a limit past end leaves start after end.
func (p *Period) LimitStartDate(limit time.Time) *Period {
	if limit.After(p.start) {
		p.start = limit
	}
	return p
}

// LimitEndDate moves end back to limit when limit is earlier than end.
// Ordering is not re-checked: a limit before start leaves end before start.
func (p *Period) LimitEndDate(limit time.Time) *Period {
	if limit.Before(p.end) {
		p.end = limit
	}
	return p
}

// DiffAsString renders the calendar difference between start and end using
// its largest non-zero units, e.g. "1 hour and 30 minutes".
func (p *Period) DiffAsString() string {
	return humanize.Interval(p.Diff().Parts())
}

// String renders "From: <start>, To: <end>" using the output format.
func (p *Period) String() string {
	return fmt.Sprintf("From: %s, To: %s",
		p.start.Format(p.outputFormat),
		p.end.Format(p.outputFormat),
	)
}

// LogValue implements slog.LogValuer so a Period logs as a group of its
// instants and timezone label.
func (p *Period) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Time("start", p.start),
		slog.Time("end", p.end),
		slog.String("timezone", p.timezone),
	)
}
