// Package storage implements the account store on top of PostgreSQL.
// It is the sole writer of id, created_at and updated_at, and relies on
// the UNIQUE constraint on email as the authoritative guard against
// duplicate registrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Sentinel errors of the store.
var (
	// ErrEmailTaken is returned when an insert violates the unique
	// constraint on email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserNotFound is returned by lookups with no matching row.
	ErrUserNotFound = errors.New("user not found")
)

// Storage encapsulates the PostgreSQL connection pool and implements
// the account persistence operations.
type Storage struct {
	DB *sql.DB
}

// New opens a connection pool to PostgreSQL and verifies it with a ping.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.DB.Close()
}
