package handlers

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

// Default offsets for relative periods when the query omits them.
const (
	defaultStartOffset = 1
	defaultEndOffset   = 0
)

// queryInt reads an integer query parameter, returning def when it is absent.
// Malformed values are recorded in fields.
func queryInt(r *http.Request, name string, def int, fields map[string]string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = "must be a valid integer"
		return def
	}
	return v
}

// parseRelativeRequest builds a RelativeRequest from the unit path parameter
// and the query string.
func parseRelativeRequest(r *http.Request, unit string) (ports.RelativeRequest, error) {
	fields := make(map[string]string)

	start := queryInt(r, "start", defaultStartOffset, fields)
	end := queryInt(r, "end", defaultEndOffset, fields)

	q := r.URL.Query()
	optsReq := dto.PeriodOptionsRequest{
		Timezone:     q.Get("timezone"),
		OutputFormat: q.Get("output_format"),
		ToTimezone:   q.Get("to_timezone"),
		FromTimezone: q.Get("from_timezone"),
		LimitStart:   q.Get("limit_start"),
		LimitEnd:     q.Get("limit_end"),
	}
	opts, err := optsReq.ToPort()
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		maps.Copy(fields, verr.Fields)
	}

	if len(fields) > 0 {
		return ports.RelativeRequest{}, &domain.ValidationError{Fields: fields}
	}
	return ports.RelativeRequest{
		Unit:        unit,
		StartOffset: start,
		EndOffset:   end,
		Options:     opts,
	}, nil
}

// mergeBatch folds the service result for the valid subset of a batch back
// into the full result. positions maps each subset index to its original
// item index.
func mergeBatch(dst, src *ports.BatchResult, positions []int) {
	for j, p := range src.Periods {
		dst.Periods[positions[j]] = p
	}
	for _, e := range src.Errors {
		dst.Errors = append(dst.Errors, ports.BatchError{Index: positions[e.Index], Err: e.Err})
	}
	slices.SortFunc(dst.Errors, func(a, b ports.BatchError) int {
		return cmp.Compare(a.Index, b.Index)
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
