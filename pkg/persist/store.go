// Package persist provides the hierarchical key-value persistence layer
// used by the keymap engine: behavior local-ID mappings, per-cell binding
// settings, and the selected physical layout. Keys are opaque ASCII
// strings; values are opaque bytes. Callers own encoding.
package persist

import "context"

// Store is the minimal contract the keymap engine needs from its
// persistence backend: point reads/writes and prefix iteration over a
// flat, hierarchical string-keyed namespace.
//
// Implementations:
//   - badgerstore.Store wraps an on-disk BadgerDB instance.
//   - memstore.Store is an in-memory map, used by tests and by the
//     discard-changes round-trip properties.
type Store interface {
	// Get returns the value stored at key. ok is false if key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put writes value at key, overwriting any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. It is not an error if key is absent.
	Delete(ctx context.Context, key string) error

	// IteratePrefix calls fn once per key under prefix, in unspecified
	// order. Iteration stops and returns the error if fn returns one.
	IteratePrefix(ctx context.Context, prefix string, fn func(key string, value []byte) error) error

	// Close releases any underlying resources.
	Close() error
}
