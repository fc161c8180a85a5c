package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewprep/backend/internal/handlers"
)

// HealthRoutes registers the liveness endpoint on the given router; the
// server mounts it both at the root and under /api/v1.
func HealthRoutes(r chi.Router) {
	r.Get("/health", handlers.HealthHandler)
}
