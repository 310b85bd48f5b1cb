package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable wraps transport failures: the request never got an answer.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a response from the backend that was not a success envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// IsAuthFailure reports whether err is a 401 or 403 from the backend.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// BackendMessage returns the backend's own message carried by err, or "".
func BackendMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
