package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/dto"
)

// errInternalServer is all a client sees of a recovered panic.
var errInternalServer = errors.New("internal server error")

// Recovery returns middleware that turns a handler panic into a problem+json
// 500 and logs the panic with its stack. http.ErrAbortHandler is re-raised so
// net/http can abort the connection quietly. When headers were already sent
// only the log entry is written.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)

				if !rec.Committed() {
					dto.WriteErrorResponse(rec, r, errInternalServer)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
