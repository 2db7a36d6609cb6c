package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded photo content lives. Paths are relative
// to the storage root.
type Storage interface {
	// Save writes content at path, creating intermediate directories.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the content at path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the content at path. Deleting a missing path is not an
	// error.
	Delete(ctx context.Context, path string) error
}
