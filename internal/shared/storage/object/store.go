package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for storing, retrieving and removing binary objects.
// The bucket is bound when the store is constructed.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns the retrieval locator for key.
	URL(key string) string
	// KeyFromURL derives the storage key back out of a locator produced by URL.
	KeyFromURL(locator string) (string, bool)
}
