// Package login implements the HTTP handler for authentication requests.
//
// It decodes and validates the credentials, delegates to the auth
// service and renders the public user view with a fresh bearer token.
// An unknown email and a wrong password produce the same 401 response.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/azangue-cmd/techshop-infrastructure/internal/http/response"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
	services "github.com/azangue-cmd/techshop-infrastructure/internal/services/auth"
)

// Request is the login input.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service is the part of the auth service the handler needs.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Handler handles POST /users/login.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New creates a login handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Authenticate a user
// @Description Verifies the credentials and returns the public user view with a bearer token.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "User credentials"
// @Success 200 {object} response.TokenResponse "Successful login"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Failure 403 {object} response.ErrorResponse "Account disabled"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 503 {object} response.ErrorResponse "Store unavailable"
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Info("login rejected", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
		case errors.Is(err, services.ErrAccountDisabled):
			log.Info("login rejected, account disabled", slog.String("email", req.Email))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("this account has been disabled"))
		default:
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("failed to log in"))
		}
		return
	}

	log.Info("login success", slog.Int64("user_id", user.ID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.NewToken(user.PublicView(), token))
}
