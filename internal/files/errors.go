package files

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid file reference")
	ErrNotFound         = errors.New("file content not found")
	ErrPolicyViolation  = errors.New("upload policy violation")
	ErrInternal         = errors.New("internal failure")

	// ErrRecordNotFound is returned by repositories when no row matches.
	ErrRecordNotFound = errors.New("file record not found")
)

// PolicyCode identifies which upload rule was broken.
type PolicyCode string

const (
	CodeMaxFileCount          PolicyCode = "MAX_FILE_COUNT"
	CodeUnsupportedFileFormat PolicyCode = "UNSUPPORTED_FILE_FORMAT"
	CodeExceededFileSize      PolicyCode = "EXCEEDED_FILE_SIZE"
)

// PolicyError reports a rejected upload. It matches ErrPolicyViolation.
type PolicyError struct {
	Code PolicyCode
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPolicyViolation.Error(), e.Code)
}

func (e *PolicyError) Is(target error) bool {
	return target == ErrPolicyViolation
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
