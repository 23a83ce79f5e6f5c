// Package models contains the domain model of a user account.
// The struct carries the stored record including the password hash;
// the public view is what every HTTP response exposes instead.
package models

import "time"

// User represents a registered account as stored in the database.
type User struct {
	ID           int64     // Assigned by the store on insert
	Name         string    // Display name, 2-100 characters
	Email        string    // Login identifier, globally unique
	PasswordHash string    // bcrypt hash, never serialized
	IsActive     bool      // False disables login
	CreatedAt    time.Time // Set by the store on insert
	UpdatedAt    time.Time // Refreshed by the store on mutation
}

// View is the outward-facing representation of a user.
// It deliberately has no field for the password hash.
type View struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicView builds the serializable view of the user.
func (u *User) PublicView() View {
	return View{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
