package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/period-service/internal/platform/logging"
)

// Logging returns middleware that logs the start and end of each request.
// The logger is enriched with request_id and stored in the context, so
// handlers and services pick it up through logging.FromContext.
//
// Completion is logged at Error for 5xx, Warn for 4xx and Info otherwise.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			child := logger.With(slog.String("request_id", RequestIDFromContext(r.Context())))
			ctx := logging.WithLogger(r.Context(), child)

			child.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if child.Enabled(ctx, slog.LevelDebug) {
				child.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			rec := record(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			child.LogAttrs(ctx, completionLevel(rec.Status()), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.Status()),
				slog.Int64("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
