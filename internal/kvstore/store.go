// Package kvstore provides the durable key/value capability behind every
// piece of persistent state in authgate: the user directory, the credential
// records, and the current-session snapshot. Values are opaque byte slices
// written as whole records; the last write wins.
package kvstore

import "context"

// Store is a durable string-keyed byte store.
//
// Get returns (nil, nil) when the key is absent, so callers can distinguish
// "no record" from a real storage failure without a sentinel error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
