package images

import "errors"

var (
	ErrMissing     = errors.New("image is required")
	ErrInvalidName = errors.New("invalid upload name")
	ErrInvalidType = errors.New("unsupported image type")
	ErrTooLarge    = errors.New("image exceeds maximum size")
	ErrInvalidURL  = errors.New("invalid image url")
	ErrInternal    = errors.New("internal failure")
)
