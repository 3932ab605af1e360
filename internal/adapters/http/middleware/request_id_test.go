package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generated when absent", header: "", wantSame: false},
		{name: "reused when present", header: "period-req-7", wantSame: true},
		{name: "blank treated as absent", header: "   ", wantSame: false},
		{name: "oversized replaced", header: strings.Repeat("x", 129), wantSame: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = middleware.RequestIDFromContext(r.Context())
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/periods/relative/week", http.NoBody)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			handler.ServeHTTP(rec, req)

			if tt.wantSame {
				if got != tt.header {
					t.Errorf("request ID = %q, want %q", got, tt.header)
				}
			} else {
				parsed, err := uuid.Parse(got)
				if err != nil {
					t.Fatalf("request ID %q is not a UUID: %v", got, err)
				}
				if parsed.Version() != 4 {
					t.Errorf("UUID version = %d, want 4", parsed.Version())
				}
			}
			if echoed := rec.Header().Get("X-Request-ID"); echoed != got {
				t.Errorf("response X-Request-ID = %q, want %q", echoed, got)
			}
		})
	}
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen[middleware.RequestIDFromContext(r.Context())] = struct{}{}
	}))

	for range 50 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	}

	if len(seen) != 50 {
		t.Errorf("unique IDs = %d, want 50", len(seen))
	}
}

func TestRequestIDFromContext(t *testing.T) {
	t.Parallel()

	if id := middleware.RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("empty context ID = %q, want empty", id)
	}

	ctx := middleware.WithRequestID(context.Background(), "abc")
	if id := middleware.RequestIDFromContext(ctx); id != "abc" {
		t.Errorf("ID = %q, want %q", id, "abc")
	}
}
