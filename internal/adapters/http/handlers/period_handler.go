// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

// PeriodHandler handles HTTP requests for building and subdividing periods.
type PeriodHandler struct {
	svc ports.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler with the given service port.
func NewPeriodHandler(svc ports.PeriodService) *PeriodHandler {
	return &PeriodHandler{svc: svc}
}

// Relative handles GET /api/v1/periods/relative/{unit}.
//
// Query parameters: start (units before now, default 1), end (units after
// now, default 0), plus the period options timezone, output_format,
// to_timezone, from_timezone, limit_start and limit_end.
func (h *PeriodHandler) Relative(w http.ResponseWriter, r *http.Request) {
	req, err := parseRelativeRequest(r, chi.URLParam(r, "unit"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.Relative(r.Context(), req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPeriodResponse(p))
}

// Create handles POST /api/v1/periods.
func (h *PeriodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreatePeriodRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	req, err := body.ToPort()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPeriodResponse(p))
}

// Steps handles POST /api/v1/periods/steps.
func (h *PeriodHandler) Steps(w http.ResponseWriter, r *http.Request) {
	var body dto.StepsRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	req, err := body.ToPort()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.svc.Steps(r.Context(), req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStepsResponse(res))
}

// Batch handles POST /api/v1/periods/batch. Items that fail request
// validation are reported alongside the service's per-item errors; the
// response is 200 whenever the batch itself is acceptable.
func (h *PeriodHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var body dto.BatchRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	result := &ports.BatchResult{Periods: make([]*period.Period, len(body.Items))}
	valid := make([]ports.CreateRequest, 0, len(body.Items))
	positions := make([]int, 0, len(body.Items))

	for i := range body.Items {
		item, err := body.Items[i].ToPort()
		if err != nil {
			result.Errors = append(result.Errors, ports.BatchError{Index: i, Err: err})
			continue
		}
		valid = append(valid, item)
		positions = append(positions, i)
	}

	if len(valid) > 0 {
		res, err := h.svc.Batch(r.Context(), valid)
		if err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
		mergeBatch(result, res, positions)
	}

	writeJSON(w, http.StatusOK, dto.ToBatchResponse(result))
}
