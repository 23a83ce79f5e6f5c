// Package register implements the HTTP handler for account registration.
package register

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

// Request is the registration input.
type Request struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	// bcrypt only reads the first 72 bytes of its input, so anything
	// longer is rejected up front instead of failing inside the hasher.
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Service is the part of the auth service the handler needs.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
}

// Handler handles POST /users/register.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New creates a registration handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Register a new user
// @Description Creates an account and returns its public view together with a bearer token.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Registration data"
// @Success 201 {object} response.TokenResponse "Account created"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 503 {object} response.ErrorResponse "Store unavailable"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"

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

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			log.Info("registration rejected, email taken", slog.String("email", req.Email))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("an account with this email already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.NewToken(user.PublicView(), token))
}
