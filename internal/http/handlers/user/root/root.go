// Package root implements the service banner at GET /.
package root

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Handler handles GET /.
type Handler struct {
	log     *slog.Logger
	version string
}

// New creates a banner handler.
func New(log *slog.Logger, version string) *Handler {
	return &Handler{
		log:     log,
		version: version,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"service": "TechShop User Service",
		"version": h.version,
		"status":  "running",
	})
}
