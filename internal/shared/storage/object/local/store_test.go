package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"filemanager-backend/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	store := New(t.TempDir(), "http://files.test/objects/")
	ctx := context.Background()
	payload := []byte("hello world")

	if err := store.Put(ctx, "fid-1.txt", bytes.NewReader(payload), "text/plain", int64(len(payload))); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := store.Open(ctx, "fid-1.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected %q, got %q", payload, got)
	}

	if err := store.Delete(ctx, "fid-1.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, "fid-1.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "fid-1.txt"); err != nil {
		t.Fatalf("expected deleting a missing object to succeed, got %v", err)
	}
}

func TestPutRejectsShortBody(t *testing.T) {
	store := New(t.TempDir(), "")
	err := store.Put(context.Background(), "fid-2.bin", bytes.NewReader([]byte("abc")), "application/octet-stream", 10)
	if err == nil {
		t.Fatalf("expected size mismatch error")
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir(), "")
	for _, key := range []string{"", "../escape.txt", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); err == nil || errors.Is(err, object.ErrNotFound) {
			t.Fatalf("expected invalid key error for %q, got %v", key, err)
		}
	}
}

func TestURLRoundTrip(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir(), "http://files.test/objects")
	url := store.URL("iid-123")
	if url != "http://files.test/objects/iid-123" {
		t.Fatalf("unexpected url %q", url)
	}
	key, ok := store.KeyFromURL(url)
	if !ok || key != "iid-123" {
		t.Fatalf("KeyFromURL(%q) = %q, %v", url, key, ok)
	}
	if _, ok := store.KeyFromURL("http://files.test/objects/"); ok {
		t.Fatalf("expected empty key to be rejected")
	}
	if _, ok := store.KeyFromURL("http://elsewhere.test/iid-123"); ok {
		t.Fatalf("expected foreign url to be rejected")
	}
}
