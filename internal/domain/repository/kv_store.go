// Package repository defines the persistence ports of the storefront.
package repository

import (
	"context"

	"megamart/internal/errors"
)

// ErrKeyNotFound is returned by Get when the key has no persisted value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore mirrors the storefront state as string-keyed JSON blobs, the way
// a browser keeps it in local storage. Values are caller-serialized.
//
// Writes may fail (full disk, bad permissions); callers treat a failed Set
// as "not persisted this session" and keep operating on in-memory state.
type KVStore interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key.
	Clear(ctx context.Context) error
}
