package api

import (
	"errors"
	"net/http"

	"github.com/creatorlab/taskgate/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// The broker or store was unreachable or rejected the call.
	case errors.Is(err, task.ErrDispatchFailed),
		errors.Is(err, task.ErrQueryFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, task.ErrDispatchFailed):
		return "Failed to dispatch task"
	case errors.Is(err, task.ErrQueryFailed):
		return "Failed to query task status"
	default:
		return "An unexpected error occurred"
	}
}
