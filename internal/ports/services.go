package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain/period"
)

// PeriodService defines the service port for building and inspecting periods.
// Implemented by the application layer; called by the HTTP handlers and the
// periodctl CLI.
type PeriodService interface {
	// Relative builds a period anchored on the current instant, e.g. the last
	// 7 days. Returns domain.ErrValidation for an unknown unit or when the
	// offsets produce an inverted period.
	Relative(ctx context.Context, req RelativeRequest) (*period.Period, error)

	// Create builds a period from date text. An empty End means now.
	// Returns domain.ErrValidation for malformed text or start after end.
	Create(ctx context.Context, req CreateRequest) (*period.Period, error)

	// Steps builds a period like Create and subdivides it, either into a
	// fixed number of steps or by interval and scale.
	// Returns domain.ErrValidation when the point count exceeds the
	// configured maximum.
	Steps(ctx context.Context, req StepsRequest) (*StepsResult, error)

	// Batch runs Create for every request concurrently. Uses partial success
	// semantics: each item succeeds or fails independently. Returns a hard
	// error only for request-level failures (empty or oversized batch).
	Batch(ctx context.Context, reqs []CreateRequest) (*BatchResult, error)
}

// PeriodOptions carries the presentation and post-processing settings shared
// by every PeriodService operation. Zero values fall back to the service
// defaults.
type PeriodOptions struct {
	// Timezone is the informational label stored on the period.
	Timezone string
	// OutputFormat is the Go time layout used when rendering the period.
	OutputFormat string

	// ToTimezone and FromTimezone reinterpret the wall clock of both
	// instants (see period.Period.ToTimezone). Either one alone is enough;
	// the missing side defaults to UTC.
	ToTimezone   string
	FromTimezone string

	// LimitStart and LimitEnd clamp the period after construction.
	LimitStart *time.Time
	LimitEnd   *time.Time
}

// RelativeRequest describes a period relative to now, measured in Unit.
type RelativeRequest struct {
	Unit        string
	StartOffset int
	EndOffset   int
	Options     PeriodOptions
}

// CreateRequest describes a period from free-form date text.
type CreateRequest struct {
	Start   string
	End     string
	Options PeriodOptions
}

// StepsRequest describes a subdivision. Steps takes precedence; otherwise
// Interval and Scale are both required.
type StepsRequest struct {
	CreateRequest

	Steps    int
	Interval int
	Scale    string
}

// StepsResult holds the subdivided period and the generated points.
type StepsResult struct {
	Period *period.Period
	Points []time.Time
}

// BatchError records a single failed item within a batch.
type BatchError struct {
	Index int
	Err   error
}

// BatchResult holds the outcomes of a batch. Periods is index-aligned with
// the input; failed items leave a nil entry and appear in Errors.
type BatchResult struct {
	Periods []*period.Period
	Errors  []BatchError
}
