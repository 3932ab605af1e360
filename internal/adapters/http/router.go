// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/period-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/period-service/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Unknown paths and
// methods answer with problem+json like every other error.
func NewRouter(
	periodHandler *handlers.PeriodHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, http.StatusMethodNotAllowed)
	})

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/periods/relative/{unit}", periodHandler.Relative)
		r.Post("/periods", periodHandler.Create)
		r.Post("/periods/steps", periodHandler.Steps)
		r.Post("/periods/batch", periodHandler.Batch)
	})

	return r
}
