package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/period-service/mocks"
)

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestLiveness_AlwaysOK(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "ok", decodeJSON[healthBody](t, rec).Status)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		results    map[string]error
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "system clock has nothing to check",
			results:    map[string]error{},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
		{
			name:       "remote clock healthy",
			results:    map[string]error{"timesource": nil},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]string{"timesource": "ok"},
		},
		{
			name: "breaker open",
			results: map[string]error{
				"timesource": errors.New("timesource: failing (circuit breaker open)"),
				"cache":      nil,
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]string{
				"timesource": "timesource: failing (circuit breaker open)",
				"cache":      "ok",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			requireStatus(t, rec, tt.wantCode)
			body := decodeJSON[healthBody](t, rec)
			assert.Equal(t, tt.wantStatus, body.Status)
			if tt.wantChecks != nil {
				assert.Equal(t, tt.wantChecks, body.Checks)
			} else {
				assert.Empty(t, body.Checks)
			}
		})
	}
}
