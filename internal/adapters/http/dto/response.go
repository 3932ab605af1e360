// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"errors"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

// PeriodResponse represents a single period in HTTP responses. Instants are
// RFC 3339 in the period's own location; display uses the output format.
type PeriodResponse struct {
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Timezone       string       `json:"timezone"`
	Display        string       `json:"display"`
	Diff           string       `json:"diff"`
	DiffComponents DiffResponse `json:"diff_components"`
}

// DiffResponse is the calendar difference broken into components.
type DiffResponse struct {
	Years   int  `json:"years"`
	Months  int  `json:"months"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Invert  bool `json:"invert,omitempty"`
}

// ToPeriodResponse converts a domain Period to an HTTP response DTO.
func ToPeriodResponse(p *period.Period) PeriodResponse {
	d := p.Diff()
	return PeriodResponse{
		StartDate: p.Start().Format(time.RFC3339),
		EndDate:   p.End().Format(time.RFC3339),
		Timezone:  p.Timezone(),
		Display:   p.String(),
		Diff:      p.DiffAsString(),
		DiffComponents: DiffResponse{
			Years:   d.Years,
			Months:  d.Months,
			Days:    d.Days,
			Hours:   d.Hours,
			Minutes: d.Minutes,
			Seconds: d.Seconds,
			Invert:  d.Invert,
		},
	}
}

// StepsResponse represents a subdivided period.
type StepsResponse struct {
	Period PeriodResponse `json:"period"`
	Points []string       `json:"points"`
	Count  int            `json:"count"`
}

// ToStepsResponse converts a ports.StepsResult to an HTTP response DTO.
func ToStepsResponse(res *ports.StepsResult) StepsResponse {
	points := make([]string, len(res.Points))
	for i, t := range res.Points {
		points[i] = t.Format(time.RFC3339)
	}
	return StepsResponse{
		Period: ToPeriodResponse(res.Period),
		Points: points,
		Count:  len(points),
	}
}

// BatchResponse represents the result of a batch operation. Periods is
// aligned with the request items; failed items are null and listed in Errors.
type BatchResponse struct {
	Periods   []*PeriodResponse `json:"periods"`
	Errors    []BatchErrorItem  `json:"errors"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// BatchErrorItem represents a single failed item within a batch.
type BatchErrorItem struct {
	Index   int           `json:"index"`
	Status  int           `json:"status"`
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

// ToBatchResponse converts a ports.BatchResult to an HTTP response DTO.
func ToBatchResponse(result *ports.BatchResult) BatchResponse {
	periods := make([]*PeriodResponse, len(result.Periods))
	for i, p := range result.Periods {
		if p == nil {
			continue
		}
		resp := ToPeriodResponse(p)
		periods[i] = &resp
	}

	errs := make([]BatchErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		item := BatchErrorItem{
			Index:   e.Index,
			Status:  domainErrorToStatus(e.Err),
			Message: e.Err.Error(),
		}
		var verr *domain.ValidationError
		if errors.As(e.Err, &verr) {
			item.Errors = validationFieldsToDetails(verr.Fields)
		}
		errs[i] = item
	}

	return BatchResponse{
		Periods:   periods,
		Errors:    errs,
		Total:     len(result.Periods),
		Succeeded: len(result.Periods) - len(result.Errors),
		Failed:    len(result.Errors),
	}
}
