// Package api provides the HTTP client for the backtest platform backend.
package api

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable indicates the backend service is unreachable
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidResponse indicates the response body could not be decoded
	ErrInvalidResponse = errors.New("invalid response from backend")

	// ErrSubmissionRejected indicates the backend rejected a job submission
	ErrSubmissionRejected = errors.New("job submission rejected")

	// ErrNotFound indicates the requested entity does not exist on the backend
	ErrNotFound = errors.New("not found on backend")
)

// APIError carries the status code and server-provided message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the text to surface in a notification: the server-provided
// reason when available, generic fallback text otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrBackendUnavailable) {
		return "Backend is unreachable. Check your connection and try again."
	}
	return "Request failed. Please try again."
}
