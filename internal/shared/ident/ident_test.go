package ident

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewPrefixesKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   Kind
		prefix string
	}{
		{kind: File, prefix: "fid-"},
		{kind: Image, prefix: "iid-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			id := New(tt.kind)
			if !strings.HasPrefix(id, tt.prefix) {
				t.Fatalf("New(%q) = %q, want prefix %q", tt.kind, id, tt.prefix)
			}
			if _, err := uuid.Parse(strings.TrimPrefix(id, tt.prefix)); err != nil {
				t.Fatalf("expected uuid body, got %q: %v", id, err)
			}
			if !HasKind(id, tt.kind) {
				t.Fatalf("HasKind(%q, %q) = false", id, tt.kind)
			}
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New(File)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d calls: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestHasKindRejectsBarePrefix(t *testing.T) {
	if HasKind("fid-", File) {
		t.Fatalf("expected bare prefix to be rejected")
	}
	if HasKind("iid-123", File) {
		t.Fatalf("expected image id to be rejected as file id")
	}
}
