// Package object defines the contract for durable binary artifact storage.
package object

import (
	"context"
	"io"
)

// Store persists and retrieves binary objects by key.
type Store interface {
	// Put writes the reader contents under key and returns a resolvable URL.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (url string, sizeBytes int64, err error)
	// Open retrieves a stored object for reading.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a stored object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
