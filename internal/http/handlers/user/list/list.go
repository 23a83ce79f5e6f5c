// Package list implements the HTTP handler returning every account's
// public view in store order. No pagination or filtering.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/azangue-cmd/techshop-infrastructure/internal/http/response"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
)

// Service is the part of the auth service the handler needs.
type Service interface {
	ListUsers(ctx context.Context) ([]models.View, error)
}

// Handler handles GET /users/.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New creates a listing handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.View "Public user views in insertion order"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 503 {object} response.ErrorResponse "Store unavailable"
// @Router /users/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	views, err := h.auth.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	if views == nil {
		views = []models.View{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, views)
}
