// Package jwt implements issuing and verification of the signed identity
// tokens handed out on register and login.
//
// Maker is the interface the rest of the service depends on; MakerImpl is
// the HS256 implementation over a server-held symmetric secret. Tokens are
// self-contained and never stored server-side, so a token stays valid until
// its expiry passes.
package jwt

import (
	"errors"
	"time"

	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
)

// Verification failure taxonomy. ParseToken always returns one of these
// (wrapped) so callers can map them to HTTP statuses without inspecting
// library internals.
var (
	// ErrExpired means the token was well-formed and correctly signed
	// but its expiry instant has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalidSignature means the payload or signature was tampered with.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrMalformed means the string could not be decoded as a token.
	ErrMalformed = errors.New("token malformed")
)

// Maker describes issuing and verification of identity tokens.
type Maker interface {
	// IssueToken encodes the user's identity claims into a signed token.
	IssueToken(user *models.User) (string, error)
	// ParseToken checks the signature and expiry and returns the claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HS256 secret key and a token TTL.
type MakerImpl struct {
	secretKey string        // Secret key used to sign tokens
	tokenTTL  time.Duration // Token lifetime, 24h in the default config
}

// NewMaker creates a MakerImpl from a secret key and TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
