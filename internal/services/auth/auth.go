// Package services contains the business-level logic for user accounts
// and authentication.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/jwt"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/password"
	"github.com/azangue-cmd/techshop-infrastructure/internal/lib/sl"
	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
	"github.com/azangue-cmd/techshop-infrastructure/internal/storage"
)

// Domain errors surfaced to the HTTP layer.
var (
	// ErrEmailTaken is returned by Register when the email is already used.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned by Login when is_active is false.
	ErrAccountDisabled = errors.New("account disabled")
)

// usersListKey is the cache key of the full user listing.
const usersListKey = "users:all"

// UserRepository is the persistence contract the service depends on.
type UserRepository interface {
	// CreateUser inserts a user and returns the stored record; a duplicate
	// email yields storage.ErrEmailTaken.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)

	// GetUserByEmail returns the user or storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user or storage.ErrUserNotFound.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListUsers returns all users in id-ascending order.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ListCache caches the user listing. May be nil when no redis is configured.
type ListCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher emits domain events. May be nil when no broker is configured.
type EventPublisher interface {
	PublishUserRegistered(user *models.User) error
}

// AuthService orchestrates registration, login, profile retrieval and
// listing of user accounts.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	cache    ListCache
	events   EventPublisher
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewAuthService creates an AuthService. cache and events are optional
// and disabled when nil.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, cache ListCache,
	events EventPublisher, cacheTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Register creates a new account with a hashed password and issues its
// first token. The store's unique constraint is the final word on
// duplicate emails; the lookup here only produces the friendlier error
// for the common non-racy case.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, name, email, hashed)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, usersListKey); err != nil {
			s.log.Warn("failed to invalidate users list cache", sl.Err(err))
		}
	}
	if s.events != nil {
		if err := s.events.PublishUserRegistered(user); err != nil {
			s.log.Warn("failed to publish user.registered event", sl.Err(err))
		}
	}

	return user, token, nil
}

// Login verifies the credentials and issues a fresh token. An unknown
// email and a wrong password produce the identical error. The disabled
// check runs only after the password matched, so a disabled response
// never confirms credentials that were wrong anyway.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.jwtMaker.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Profile returns the account identified by id.
func (s *AuthService) Profile(ctx context.Context, id int64) (*models.User, error) {
	const op = "services.auth.Profile"

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListUsers returns the public views of every account in store order,
// served from the cache when possible.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.View, error) {
	const op = "services.auth.ListUsers"

	if s.cache != nil {
		var cached []models.View
		found, err := s.cache.Get(ctx, usersListKey, &cached)
		if err != nil {
			s.log.Warn("failed to read users list cache", sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]models.View, 0, len(users))
	for _, u := range users {
		views = append(views, u.PublicView())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, usersListKey, views, s.cacheTTL); err != nil {
			s.log.Warn("failed to store users list cache", sl.Err(err))
		}
	}
	return views, nil
}
