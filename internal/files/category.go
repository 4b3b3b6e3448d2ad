package files

import (
	"fmt"
	"strings"
)

// Category is the coarse classification derived from a content type.
type Category string

const (
	CategoryText        Category = "text"
	CategoryApplication Category = "application"
	CategoryImage       Category = "image"
	CategoryAudio       Category = "audio"
	CategoryVideo       Category = "video"
	// CategoryPDF is never produced by Classify. It exists so "pdf" can be
	// used as a search filter, which matches content types like application/pdf.
	CategoryPDF Category = "pdf"
)

var categories = []Category{
	CategoryText,
	CategoryApplication,
	CategoryImage,
	CategoryAudio,
	CategoryVideo,
	CategoryPDF,
}

// Classify returns the first segment of a MIME type, e.g. "image" for "image/png".
func Classify(contentType string) (Category, error) {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return "", fmt.Errorf("%w: content type is required", ErrInvalidInput)
	}
	primary, _, _ := strings.Cut(contentType, "/")
	return Category(primary), nil
}

// IsValidCategory reports whether candidate names a known category, ignoring case
// and surrounding whitespace.
func IsValidCategory(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	for _, c := range categories {
		if strings.EqualFold(string(c), candidate) {
			return true
		}
	}
	return false
}

// Categories lists the known categories in declaration order.
func Categories() []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}
