package ident

import (
	"strings"

	"github.com/google/uuid"
)

// Kind namespaces generated identifiers by the type of object they address.
type Kind string

const (
	// File prefixes identifiers of indexed files.
	File Kind = "fid"
	// Image prefixes generated keys of unindexed images.
	Image Kind = "iid"
)

// New returns a random identifier of the form "<kind>-<uuid v4>".
func New(kind Kind) string {
	return string(kind) + "-" + uuid.NewString()
}

// HasKind reports whether id was generated for the given kind.
func HasKind(id string, kind Kind) bool {
	return strings.HasPrefix(id, string(kind)+"-") && len(id) > len(kind)+1
}
