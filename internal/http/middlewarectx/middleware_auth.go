// Package middlewarectx contains the HTTP middleware of the service:
// identity extraction from the Authorization header (or from the gateway
// header in gateway-trusting deployments) and request metrics.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/azangue-cmd/techshop-infrastructure/internal/http/response"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/jwt"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
)

// Key is the type of the context keys set by the middleware.
type Key string

const (
	// UserID is the context key of the authenticated account id.
	UserID Key = "user_id"
	// UserEmail is the context key of the authenticated email.
	UserEmail Key = "email"
)

// gatewayUserHeader is the identity header the API gateway forwards
// after verifying the token itself.
const gatewayUserHeader = "X-User-Id"

// UserIDFromContext extracts the authenticated account id set by
// AuthMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok
}

// AuthMiddleware returns middleware that resolves the caller's identity.
//
// In the default mode it requires a Bearer token, verifies the signature
// and expiry, and puts the claims into the request context. With
// trustGatewayHeader enabled it instead accepts the X-User-Id header set
// by the already-authenticated gateway hop.
func AuthMiddleware(jwtMaker jwt.Maker, trustGatewayHeader bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if trustGatewayHeader {
				if header := r.Header.Get(gatewayUserHeader); header != "" {
					id, err := strconv.ParseInt(header, 10, 64)
					if err != nil {
						log.Error("invalid gateway identity header", sl.Err(err))
						render.Status(r, http.StatusUnauthorized)
						render.JSON(w, r, response.Error("invalid identity header"))
						return
					}
					ctx := context.WithValue(r.Context(), UserID, id)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("token verification failed", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				if errors.Is(err, jwt.ErrExpired) {
					render.JSON(w, r, response.Error("token expired"))
					return
				}
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, UserEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
