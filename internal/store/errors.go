package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrKeyNotFound is returned by Get when the requested key does not
	// exist. Callers treat this as a valid state, not a failure: an absent
	// task record reads the same as a freshly pending one.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnavailable is returned when the store cannot be reached at all
	// (connection refused, timeout). Distinct from ErrKeyNotFound, which
	// is a successful lookup of an absent key.
	ErrUnavailable = errors.New("store unavailable")
)

// IsNotFound reports whether err indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// StoreError wraps a store failure with the operation and key involved.
type StoreError struct {
	Op  string // the operation that failed ("get", "set", "delete")
	Key string
	Err error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %q failed: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given operation and key.
func NewStoreError(op, key string, err error) *StoreError {
	return &StoreError{Op: op, Key: key, Err: err}
}
