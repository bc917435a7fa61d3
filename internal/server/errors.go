// Package server provides the HTTP REST API for the forge backend.
package server

import (
	"fmt"
	"net/http"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials. The message is
// deliberately generic: it never says whether the email or the password was
// wrong.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid credentials"
}

// ErrConversationNotFound covers both missing conversations and
// conversations owned by someone else; the two cases are indistinguishable
// to the caller.
type ErrConversationNotFound struct{}

func (e *ErrConversationNotFound) Error() string {
	return "Conversation not found"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrDatabaseUnavailable is returned by every data route when the server
// runs without a database (degraded mode).
type ErrDatabaseUnavailable struct{}

func (e *ErrDatabaseUnavailable) Error() string {
	return "Database not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrValidation:
		return http.StatusBadRequest
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrConversationNotFound:
		return http.StatusNotFound
	case *ErrDatabaseUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
