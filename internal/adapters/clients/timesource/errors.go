// Package timesource is the outbound adapter for a remote time API. It reads
// the current instant over HTTP and translates transport and status failures
// into domain.ErrUnavailable so callers can fall back to the system clock.
package timesource

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/period-service/internal/domain"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 64 << 10

// problemDetail is the subset of an RFC 9457 body the adapter reports.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// TranslateHTTPError maps a non-200 response to an error wrapping
// domain.ErrUnavailable. The problem detail, when present, is used as the
// message; otherwise the status text is.
func TranslateHTTPError(resp *http.Response) error {
	pd := parseProblemDetail(resp)

	detail := cmp.Or(pd.Detail, pd.Title, http.StatusText(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("time source path not found: %s: %w", detail, domain.ErrUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("time source throttled: %s: %w", detail, domain.ErrUnavailable)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("time source failing: %s: %w", detail, domain.ErrUnavailable)
	default:
		return fmt.Errorf("time source returned status %d: %s: %w", resp.StatusCode, detail, domain.ErrUnavailable)
	}
}

func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}
