package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/period-service/internal/platform/logging"
)

func TestLogging_StartAndCompletion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("12345"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/periods", http.NoBody))

	out := buf.String()
	for _, want := range []string{"request started", "request completed", "method=POST", "path=/api/v1/periods", "status=200", "bytes=5", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogging_CompletionLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusBadRequest, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			middleware.Logging(testLogger(&buf))(statusHandler(tt.status)).
				ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/periods/relative/day", http.NoBody))

			var completed string
			for line := range strings.SplitSeq(buf.String(), "\n") {
				if strings.Contains(line, "request completed") {
					completed = line
				}
			}
			if !strings.Contains(completed, tt.level) {
				t.Errorf("completion line %q missing %s", completed, tt.level)
			}
		})
	}
}

func TestLogging_ContextLoggerCarriesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logging(testLogger(&buf)),
	)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("building period")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/periods/relative/day", http.NoBody)
	req.Header.Set("X-Request-ID", "log-req-9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	for line := range strings.SplitSeq(buf.String(), "\n") {
		if strings.Contains(line, "building period") {
			if !strings.Contains(line, "request_id=log-req-9") {
				t.Errorf("handler log line %q missing request_id", line)
			}
			return
		}
	}
	t.Error("handler log line not found")
}

func TestLogging_RedactsHeadersAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/api/v1/periods/relative/day", http.NoBody)
	req.Header.Set("Authorization", "Bearer hunter2")
	middleware.Logging(testLogger(&buf))(statusHandler(http.StatusOK)).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Error("log output leaked the Authorization header")
	}
	if !strings.Contains(out, "Authorization=[REDACTED]") {
		t.Errorf("log output missing redacted header:\n%s", out)
	}
}
