package userservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/azangue-cmd/techshop-infrastructure/internal/config"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/health"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/list"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/login"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/profile"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/register"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/handlers/user/root"
	"github.com/azangue-cmd/techshop-infrastructure/internal/http/middlewarectx"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/jwt"
	authservices "github.com/azangue-cmd/techshop-infrastructure/internal/services/auth"
)

// RegisterRoutes registers all routes of the service.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservices.AuthService,
	jwtMaker jwt.Maker, cfg *config.Config) {
	// Global middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/users", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Endpoints requiring an authenticated identity
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(jwtMaker, cfg.TrustGatewayHeader, logger))
			r.Get("/profile", profile.New(logger, authService).ServeHTTP)
			r.Get("/", list.New(logger, authService).ServeHTTP)
		})
	})

	r.Get("/", root.New(logger, Version).ServeHTTP)
	r.Get("/health", health.New(logger, Version).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
