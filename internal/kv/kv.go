// Package kv defines the key-value substrate the user record store is
// written against, so a different backend can be substituted without touching
// migration or retention logic.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is the substrate port: a durable keyed blob store.
type Store interface {
	// Get retrieves the value for key. Returns ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetNX stores value under key only if the key does not exist yet.
	// Returns false when the key was already present.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping checks backend health.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
