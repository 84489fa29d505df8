package apierr

import (
	"errors"
	"fmt"
)

const (
	KindAuth     = "AuthError"
	KindConflict = "ConflictError"
)

// ErrNotImplemented is returned by operations the client does not support.
var ErrNotImplemented = errors.New("not implemented")

// APIError is a rejection reported by the server in its response body.
// Status is the HTTP status the body came with.
type APIError struct {
	Type    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("APIError: %s", e.Type)
	}
	return fmt.Sprintf("APIError: %s: %s", e.Type, e.Message)
}

// AuthError is an APIError of kind KindAuth.
type AuthError struct {
	APIError
}

func NewAuthError(message string, status int) *AuthError {
	return &AuthError{APIError{Type: KindAuth, Message: message, Status: status}}
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "AuthError"
	}
	return "AuthError: " + e.Message
}

func (e *AuthError) Unwrap() error { return &e.APIError }

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsConflict(err error) bool {
	return Kind(err) == KindConflict
}

// Kind returns the server error kind carried by err, or "" when err is not
// a server-reported error.
func Kind(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return ""
}
