package dto

import (
	"strings"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

const (
	msgRequired       = domain.MsgRequired
	msgMustBeDate     = "must be a date"
	msgMustBePositive = "must be positive"
	msgStepsOrScale   = "steps, or interval and scale, " + domain.MsgRequired
)

// PeriodOptionsRequest holds the presentation and post-processing fields
// accepted by every period body.
type PeriodOptionsRequest struct {
	Timezone     string `json:"timezone,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	ToTimezone   string `json:"to_timezone,omitempty"`
	FromTimezone string `json:"from_timezone,omitempty"`
	LimitStart   string `json:"limit_start,omitempty"`
	LimitEnd     string `json:"limit_end,omitempty"`
}

// ToPort converts the options, parsing the clamp limits. Unparseable limits
// are reported as field errors.
func (o *PeriodOptionsRequest) ToPort() (ports.PeriodOptions, error) {
	fields := make(map[string]string)
	opts := o.toPort(fields)
	if len(fields) > 0 {
		return ports.PeriodOptions{}, &domain.ValidationError{Fields: fields}
	}
	return opts, nil
}

func (o *PeriodOptionsRequest) toPort(fields map[string]string) ports.PeriodOptions {
	opts := ports.PeriodOptions{
		Timezone:     strings.TrimSpace(o.Timezone),
		OutputFormat: o.OutputFormat,
		ToTimezone:   strings.TrimSpace(o.ToTimezone),
		FromTimezone: strings.TrimSpace(o.FromTimezone),
	}

	if strings.TrimSpace(o.LimitStart) != "" {
		t, err := period.ParseInstant("limit_start", o.LimitStart)
		if err != nil {
			fields["limit_start"] = msgMustBeDate
		} else {
			opts.LimitStart = &t
		}
	}
	if strings.TrimSpace(o.LimitEnd) != "" {
		t, err := period.ParseInstant("limit_end", o.LimitEnd)
		if err != nil {
			fields["limit_end"] = msgMustBeDate
		} else {
			opts.LimitEnd = &t
		}
	}

	return opts
}

// CreatePeriodRequest represents the JSON body for building a period from
// date text. An omitted end_date means now.
type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	PeriodOptionsRequest
}

// Validate checks that the start date is present and the clamp limits parse.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreatePeriodRequest) Validate() error {
	_, err := r.ToPort()
	return err
}

// ToPort converts the body into the service request.
func (r *CreatePeriodRequest) ToPort() (ports.CreateRequest, error) {
	fields := make(map[string]string)
	req := r.toPort(fields)
	if len(fields) > 0 {
		return ports.CreateRequest{}, &domain.ValidationError{Fields: fields}
	}
	return req, nil
}

func (r *CreatePeriodRequest) toPort(fields map[string]string) ports.CreateRequest {
	if strings.TrimSpace(r.StartDate) == "" {
		fields["start_date"] = msgRequired
	}
	return ports.CreateRequest{
		Start:   r.StartDate,
		End:     r.EndDate,
		Options: r.PeriodOptionsRequest.toPort(fields),
	}
}

// StepsRequest represents the JSON body for subdividing a period. Either
// steps or both interval and scale must be set; steps wins when both are.
type StepsRequest struct {
	CreatePeriodRequest
	Steps    int    `json:"steps,omitempty"`
	Interval int    `json:"interval,omitempty"`
	Scale    string `json:"scale,omitempty"`
}

// Validate checks the period fields and the subdivision arguments.
// Returns a *domain.ValidationError if any checks fail.
func (r *StepsRequest) Validate() error {
	_, err := r.ToPort()
	return err
}

// ToPort converts the body into the service request.
func (r *StepsRequest) ToPort() (ports.StepsRequest, error) {
	fields := make(map[string]string)
	create := r.CreatePeriodRequest.toPort(fields)

	switch {
	case r.Steps < 0:
		fields["steps"] = msgMustBePositive
	case r.Steps > 0:
	case r.Interval == 0 && strings.TrimSpace(r.Scale) == "":
		fields["steps"] = msgStepsOrScale
	default:
		if r.Interval <= 0 {
			fields["interval"] = msgMustBePositive
		}
		if strings.TrimSpace(r.Scale) == "" {
			fields["scale"] = msgRequired
		}
	}

	if len(fields) > 0 {
		return ports.StepsRequest{}, &domain.ValidationError{Fields: fields}
	}
	return ports.StepsRequest{
		CreateRequest: create,
		Steps:         r.Steps,
		Interval:      r.Interval,
		Scale:         strings.TrimSpace(r.Scale),
	}, nil
}

// BatchRequest represents the JSON body for building several periods at
// once. Items are validated individually so one bad item does not reject
// the batch.
type BatchRequest struct {
	Items []CreatePeriodRequest `json:"items"`
}

// Validate checks that the batch is not empty.
func (r *BatchRequest) Validate() error {
	if len(r.Items) == 0 {
		return &domain.ValidationError{Fields: map[string]string{"items": msgRequired}}
	}
	return nil
}
