package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for upload storage backends.
type ObjectStorage interface {
	// Save stores an object under the given key
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Open returns a reader for a stored object
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the public URL for accessing an object
	URL(key string) string

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)
}
