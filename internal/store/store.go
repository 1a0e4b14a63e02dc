// Package store defines the key-value store abstraction shared by the
// dispatch gateway's components, along with its error taxonomy and an
// in-memory implementation for tests.
package store

import "context"

// Store is the interface to the shared key-value service holding task
// records and the pending queue. Implementations are safe for concurrent
// use; every call is a network round trip and honors ctx cancellation.
// Version: 1.0
type Store interface {
	// Get returns the raw value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
