package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

// BlobStore abstracts where case document bytes live. The database only
// tracks metadata; the store is addressed by the document's storage key.
type BlobStore interface {
	// Save writes the blob under key and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader for the blob. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
