// Package gcs implements ObjectStore on Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"filemanager-backend/internal/shared/storage/object"
)

const publicHost = "https://storage.googleapis.com"

// Store implements ObjectStore using a single GCS bucket.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a GCS-backed object store using application default credentials.
func New(ctx context.Context, bucket, prefix string) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs new client: %w", err)
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}, nil
}

// Put streams r into the bucket under key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string, size int64) error {
	objectKey := s.objectKey(key)
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(writeCtx)
	w.ContentType = contentType

	written, err := copyOrAbort(w, r, cancel)
	if err != nil {
		return fmt.Errorf("gcs write bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs commit bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("gcs write bucket=%s key=%s: wrote %d bytes, expected %d", s.bucket, objectKey, written, size)
	}
	return nil
}

// copyOrAbort copies r into w. On a copy error it cancels the write and closes w so
// nothing is committed.
func copyOrAbort(w io.WriteCloser, r io.Reader, cancel context.CancelFunc) (int64, error) {
	written, err := io.Copy(w, r)
	if err != nil {
		cancel()
		_ = w.Close()
		return written, err
	}
	return written, nil
}

// Open returns a reader over the object at key.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	objectKey := s.objectKey(key)
	rc, err := s.client.Bucket(s.bucket).Object(objectKey).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("gcs read bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return rc, nil
}

// Delete removes the object at key. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	objectKey := s.objectKey(key)
	if err := s.client.Bucket(s.bucket).Object(objectKey).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("gcs delete bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

// URL returns the public storage.googleapis.com locator for key.
func (s *Store) URL(key string) string {
	return s.bucketURL() + s.objectKey(key)
}

// KeyFromURL strips the bucket URL and prefix from locator.
func (s *Store) KeyFromURL(locator string) (string, bool) {
	full := s.bucketURL()
	if s.prefix != "" {
		full += s.prefix + "/"
	}
	if !strings.HasPrefix(locator, full) {
		return "", false
	}
	key := strings.TrimSpace(strings.TrimPrefix(locator, full))
	return key, key != ""
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) bucketURL() string {
	return publicHost + "/" + s.bucket + "/"
}

func (s *Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

var _ object.ObjectStore = (*Store)(nil)
