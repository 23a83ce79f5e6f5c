// Package health implements the health check endpoint used by the
// platform probes and monitoring.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Handler handles GET /health.
type Handler struct {
	log     *slog.Logger
	version string
}

// New creates a health handler.
func New(log *slog.Logger, version string) *Handler {
	return &Handler{
		log:     log,
		version: version,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"status":  "up",
		"service": "user-service",
		"version": h.version,
	})
}
