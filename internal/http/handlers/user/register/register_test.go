package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
	services "github.com/azangue-cmd/techshop-infrastructure/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, name, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	createdUser := &models.User{
		ID:           1,
		Name:         "Jean Dupont",
		Email:        "jean@x.com",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		requestBody    any
		mockUser       *models.User
		mockToken      string
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantErrorPart  string
	}{
		{
			name:           "valid registration",
			requestBody:    Request{Name: "Jean Dupont", Email: "jean@x.com", Password: "motdepasse123"},
			mockUser:       createdUser,
			mockToken:      "tok",
			mockCalled:     true,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantErrorPart:  "invalid request body",
		},
		{
			name:           "validation error - short password",
			requestBody:    Request{Name: "Jean Dupont", Email: "jean@x.com", Password: "short"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantErrorPart:  "field Password is too short",
		},
		{
			name:           "validation error - password over bcrypt limit",
			requestBody:    Request{Name: "Jean Dupont", Email: "jean@x.com", Password: strings.Repeat("a", 100)},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantErrorPart:  "field Password is too long",
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Name: "Jean Dupont", Email: "not-an-email", Password: "motdepasse123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantErrorPart:  "field Email must be a valid email address",
		},
		{
			name:           "validation error - name too short",
			requestBody:    Request{Name: "J", Email: "jean@x.com", Password: "motdepasse123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantErrorPart:  "field Name is too short",
		},
		{
			name:           "duplicate email",
			requestBody:    Request{Name: "Jean Dupont", Email: "jean@x.com", Password: "motdepasse123"},
			mockErr:        services.ErrEmailTaken,
			mockCalled:     true,
			wantStatusCode: http.StatusConflict,
			wantErrorPart:  "already exists",
		},
		{
			name:           "store unavailable",
			requestBody:    Request{Name: "Jean Dupont", Email: "jean@x.com", Password: "motdepasse123"},
			mockErr:        errors.New("connection refused"),
			mockCalled:     true,
			wantStatusCode: http.StatusServiceUnavailable,
			wantErrorPart:  "failed to register",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.mockCalled {
				req := tt.requestBody.(Request)
				authMock.On("Register", mock.Anything, req.Name, req.Email, req.Password).
					Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantStatusCode == http.StatusCreated {
				assert.Equal(t, "tok", got["token"])
				assert.Equal(t, "bearer", got["token_type"])

				user, ok := got["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(1), user["id"])
				assert.Equal(t, "jean@x.com", user["email"])
				assert.NotContains(t, user, "password_hash")
				assert.NotContains(t, user, "PasswordHash")
			} else {
				errStr, ok := got["error"].(string)
				require.True(t, ok)
				assert.Contains(t, errStr, tt.wantErrorPart)
			}

			authMock.AssertExpectations(t)
		})
	}
}
