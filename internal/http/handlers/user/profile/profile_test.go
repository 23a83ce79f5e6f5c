package profile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/azangue-cmd/techshop-infrastructure/internal/http/middlewarectx"
	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
	"github.com/azangue-cmd/techshop-infrastructure/internal/storage"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Profile(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestProfileHandler_ServeHTTP(t *testing.T) {
	user := &models.User{
		ID:           1,
		Name:         "Jean Dupont",
		Email:        "jean@x.com",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		ctxUserID      any
		mockUser       *models.User
		mockErr        error
		mockCalled     bool
		wantStatusCode int
	}{
		{
			name:           "authenticated user",
			ctxUserID:      int64(1),
			mockUser:       user,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "identity missing from context",
			ctxUserID:      nil,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "account no longer exists",
			ctxUserID:      int64(99),
			mockErr:        storage.ErrUserNotFound,
			mockCalled:     true,
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.mockCalled {
				authMock.On("Profile", mock.Anything, tt.ctxUserID.(int64)).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if tt.ctxUserID != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, tt.ctxUserID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantStatusCode == http.StatusOK {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				userBody, ok := got["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(1), userBody["id"])
				assert.Equal(t, "jean@x.com", userBody["email"])
				assert.NotContains(t, userBody, "password_hash")
			}

			authMock.AssertExpectations(t)
		})
	}
}
