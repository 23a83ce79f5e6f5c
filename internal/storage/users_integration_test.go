package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/azangue-cmd/techshop-infrastructure/internal/migrations"
)

// setupTestDatabase starts a throwaway PostgreSQL container and applies
// the real migrations against it, so the tests exercise the same schema
// the service runs with.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(ctx, connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	require.NoError(t, migrations.Run(storage.DB, "../../migrations"), "failed to apply migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}

func TestStorage_CreateUser_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	user, err := storage.CreateUser(ctx, "Jean Dupont", "jean@example.com", "$2a$10$notarealhash")
	require.NoError(t, err)

	assert.Positive(t, user.ID)
	assert.Equal(t, "Jean Dupont", user.Name)
	assert.Equal(t, "jean@example.com", user.Email)
	assert.True(t, user.IsActive, "new accounts start active")
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())

	// The unique constraint, not the application, decides duplicates.
	_, err = storage.CreateUser(ctx, "Someone Else", "jean@example.com", "$2a$10$otherhash")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailTaken))

	var count int
	require.NoError(t, storage.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE email = $1", "jean@example.com").Scan(&count))
	assert.Equal(t, 1, count, "a failed duplicate insert must not leave a row behind")
}

func TestStorage_GetUser_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.CreateUser(ctx, "Jean Dupont", "jean@example.com", "$2a$10$notarealhash")
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		got, err := storage.GetUserByEmail(ctx, "jean@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "$2a$10$notarealhash", got.PasswordHash)
	})

	t.Run("by email is case-sensitive", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "JEAN@example.com")
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})

	t.Run("by id", func(t *testing.T) {
		got, err := storage.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "jean@example.com", got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := storage.GetUserByID(ctx, created.ID+1000)
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}

func TestStorage_ListUsers_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		_, err := storage.CreateUser(ctx, fmt.Sprintf("User %d", i), email, "$2a$10$hash")
		require.NoError(t, err)
	}

	users, err := storage.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Insertion order, id ascending.
	for i, u := range users {
		assert.Equal(t, emails[i], u.Email)
		if i > 0 {
			assert.Greater(t, u.ID, users[i-1].ID)
		}
	}
}

func TestStorage_SetUserActive_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.CreateUser(ctx, "Jean Dupont", "jean@example.com", "$2a$10$notarealhash")
	require.NoError(t, err)
	require.True(t, created.IsActive)

	require.NoError(t, storage.SetUserActive(ctx, created.ID, false))

	got, err := storage.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt) || got.UpdatedAt.Equal(created.UpdatedAt))

	err = storage.SetUserActive(ctx, created.ID+1000, true)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
