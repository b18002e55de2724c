package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized indicates a missing or rejected session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the requested notification does not exist.
	ErrNotFound = errors.New("notification not found")
)

// APIError is a non-2xx response from the notification service.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Is maps status codes onto the package sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func newAPIError(status int, method, path string, body []byte) error {
	msg := ""
	var wire struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &wire) == nil {
		if wire.Message != "" {
			msg = wire.Message
		} else {
			msg = wire.Error
		}
	}
	return &APIError{StatusCode: status, Method: method, Path: path, Message: msg}
}

// IsAuthError reports whether err represents an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
