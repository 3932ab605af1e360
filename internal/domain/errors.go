package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrValidation      = errors.New("validation error")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("unavailable")
)

// MsgRequired is the validation message used for missing required fields.
const MsgRequired = "is required"

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidPeriodError is returned when a period's start instant lies strictly
// after its end instant. Both instants are kept for diagnostics.
//
// It matches both ErrInvalidPeriod and ErrValidation with errors.Is.
type InvalidPeriodError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("%s: start %s is after end %s",
		ErrInvalidPeriod.Error(),
		e.Start.Format(time.RFC3339Nano),
		e.End.Format(time.RFC3339Nano),
	)
}

func (e *InvalidPeriodError) Unwrap() []error {
	return []error{ErrInvalidPeriod, ErrValidation}
}

// InvalidArgumentError reports a value outside the accepted domain of an
// operation: a non-positive step count, unparseable date text, an unknown
// unit or timezone name. Err holds the underlying cause, if any.
//
// It matches ErrInvalidArgument, ErrValidation and Err with errors.Is.
type InvalidArgumentError struct {
	Argument string
	Value    string
	Err      error
}

func (e *InvalidArgumentError) Error() string {
	msg := fmt.Sprintf("%s: %s=%q", ErrInvalidArgument.Error(), e.Argument, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidArgumentError) Unwrap() []error {
	errs := []error{ErrInvalidArgument, ErrValidation}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
