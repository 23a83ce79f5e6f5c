package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
)

// CustomClaims is the payload carried inside an identity token.
// The claim names match what the API gateway expects when it verifies
// the token and forwards the identity downstream.
type CustomClaims struct {
	UserID               int64  `json:"user_id"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt and the rest
}

// IssueToken creates a signed token asserting the user's identity until
// now + tokenTTL.
func (m *MakerImpl) IssueToken(user *models.User) (string, error) {
	const op = "jwt.IssueToken"
	claims := CustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken verifies the token's signature and expiry and returns the
// embedded claims. The error wraps exactly one of ErrExpired,
// ErrInvalidSignature or ErrMalformed.
func (m *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(m.secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformed)
	}
	return claims, nil
}

// classify collapses the library's error set into the package taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
