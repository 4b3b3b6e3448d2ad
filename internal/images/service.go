package images

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"filemanager-backend/internal/shared/ident"
	"filemanager-backend/internal/shared/metrics"
	"filemanager-backend/internal/shared/storage/object"
)

var (
	uploadNamePattern = regexp.MustCompile(`^[_A-Za-z0-9]*(-*[_A-Za-z0-9])*$`)
	allowedTypes      = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
	}
)

// Image is an uploaded image body with its declared metadata.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Service stores images directly in the object store. Images are not indexed
// and belong to no owner; the returned URL is their only handle.
type Service struct {
	Store       object.ObjectStore
	MaxByteSize int64
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, maxByteSize int64) *Service {
	return &Service{Store: store, MaxByteSize: maxByteSize}
}

// Upload stores img under uploadName, or under a generated name when uploadName
// is nil or empty, and returns its URL.
func (s *Service) Upload(ctx context.Context, uploadName *string, img Image) (string, error) {
	if img.Open == nil || img.Size == 0 {
		return "", ErrMissing
	}
	key := ""
	if uploadName != nil {
		key = *uploadName
		if !ValidUploadName(key) {
			return "", ErrInvalidName
		}
	}
	if _, ok := allowedTypes[img.ContentType]; !ok {
		metrics.IncUploadRejected(metrics.KindImage, "INVALID_IMAGE_TYPE")
		return "", ErrInvalidType
	}
	if img.Size > s.MaxByteSize {
		metrics.IncUploadRejected(metrics.KindImage, "EXCEEDED_IMAGE_SIZE")
		return "", ErrTooLarge
	}
	if strings.TrimSpace(key) == "" {
		key = ident.New(ident.Image)
	}

	body, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open image: %w", ErrInternal, err)
	}
	defer body.Close()

	if err := s.Store.Put(ctx, key, body, img.ContentType, img.Size); err != nil {
		return "", fmt.Errorf("%w: store image: %w", ErrInternal, err)
	}
	metrics.ObserveUpload(metrics.KindImage, img.Size)
	return s.Store.URL(key), nil
}

// Delete removes the image addressed by url. The url must have been produced by
// this store and must not address an indexed file.
func (s *Service) Delete(ctx context.Context, url string) error {
	key, ok := s.Store.KeyFromURL(strings.TrimSpace(url))
	if !ok || ident.HasKind(key, ident.File) {
		return ErrInvalidURL
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete image: %w", ErrInternal, err)
	}
	metrics.IncDelete(metrics.KindImage)
	return nil
}

// ValidUploadName reports whether name may be used as an image key: letters,
// digits and underscores, with dashes only between them or leading. File keys
// are reserved.
func ValidUploadName(name string) bool {
	return uploadNamePattern.MatchString(name) && !ident.HasKind(name, ident.File)
}
