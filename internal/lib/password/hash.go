// Package password implements safe hashing and verification of passwords.
//
// GetHash produces a bcrypt hash for storage.
// CompareHash checks a stored bcrypt hash against a candidate password.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash takes a plaintext password and returns its bcrypt hash.
// The hash embeds a random salt and the adaptive cost factor, so two
// calls with the same input produce different values. bcrypt caps its
// input at 72 bytes; the request validation enforces that bound before
// any password reaches this function.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash compares a stored bcrypt hash with a candidate password.
// Returns nil when they match and an error otherwise, including when
// the stored value is not a valid bcrypt hash at all.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
