// Package response contains the helper types and functions for building
// uniform JSON responses from the HTTP handlers. Errors and validation
// failures share one envelope; successful auth responses use the token
// body defined by the service contract.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
)

// Response is the generic JSON envelope of the server.
// Status is "OK" or "Error"; Error carries the message on failure;
// Data carries the payload on success.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse is the error shape, also referenced by the swagger
// annotations as the failure type.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// TokenResponse is the body of successful register and login calls:
// the public user view plus a freshly issued bearer token.
type TokenResponse struct {
	User      models.View `json:"user"`
	Token     string      `json:"token"`
	TokenType string      `json:"token_type" example:"bearer"`
}

const (
	// StatusOK marks a successful response.
	StatusOK = "OK"
	// StatusError marks a failed response.
	StatusError = "Error"

	// TokenTypeBearer is the only token type this service issues.
	TokenTypeBearer = "bearer"
)

// OKWithData returns a successful Response wrapping data.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error returns an ErrorResponse with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// NewToken builds the register/login response body for a user and token.
func NewToken(user models.View, token string) TokenResponse {
	return TokenResponse{
		User:      user,
		Token:     token,
		TokenType: TokenTypeBearer,
	}
}

// ValidationError renders validator failures into one human-readable
// error message, one fragment per violated field.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
