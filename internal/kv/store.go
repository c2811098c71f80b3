package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
// Callers treat absence as "use defaults", not as a failure.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value blob store. Values are JSON documents and are
// always replaced as a whole (last-writer-wins, no partial-field updates).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
