// Package store provides the persistence layer for GoVoz.
// Collections are serialized to JSON by the board and stored as opaque
// text blobs under a small fixed set of keys, matching the AsyncStorage
// contract the TypeScript app persists through.
package store

import "context"

// KV is the key/value persistence contract consumed by the board.
// Get returns the raw JSON text previously stored under key, or the
// empty string with a nil error when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Snapshotter is implemented by stores that can serialize their full
// contents for host-side persistence (OPFS sync in the browser).
type Snapshotter interface {
	Export() ([]byte, error)
	Import(data []byte) error
}
