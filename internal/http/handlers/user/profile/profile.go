// Package profile implements the HTTP handler returning the profile of
// the authenticated account. Identity comes from the request context,
// where the auth middleware has already placed it.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/azangue-cmd/techshop-infrastructure/internal/http/middlewarectx"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/response"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
	"github.com/azangue-cmd/techshop-infrastructure/internal/storage"
)

// Service is the part of the auth service the handler needs.
type Service interface {
	Profile(ctx context.Context, id int64) (*models.User, error)
}

// Handler handles GET /users/profile.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New creates a profile handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.View "Public user view"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Account no longer exists"
// @Failure 503 {object} response.ErrorResponse "Store unavailable"
// @Router /users/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	user, err := h.auth.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("profile requested for missing account", slog.Int64("user_id", userID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to load profile"))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{"user": user.PublicView()})
}
