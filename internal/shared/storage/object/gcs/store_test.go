package gcs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestURLAndKeyFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  string
		key     string
		wantURL string
	}{
		{name: "no prefix", key: "fid-1.pdf", wantURL: "https://storage.googleapis.com/media/fid-1.pdf"},
		{name: "prefix", prefix: "files", key: "fid-1.pdf", wantURL: "https://storage.googleapis.com/media/files/fid-1.pdf"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &Store{bucket: "media", prefix: tt.prefix}
			url := store.URL(tt.key)
			if url != tt.wantURL {
				t.Fatalf("URL(%q) = %q, want %q", tt.key, url, tt.wantURL)
			}
			key, ok := store.KeyFromURL(url)
			if !ok || key != tt.key {
				t.Fatalf("KeyFromURL(%q) = %q, %v", url, key, ok)
			}
		})
	}
}

func TestKeyFromURLRejectsOtherBuckets(t *testing.T) {
	store := &Store{bucket: "media"}
	if _, ok := store.KeyFromURL("https://storage.googleapis.com/other/fid-1.pdf"); ok {
		t.Fatalf("expected other bucket to be rejected")
	}
	if _, ok := store.KeyFromURL("https://storage.googleapis.com/media/"); ok {
		t.Fatalf("expected empty key to be rejected")
	}
}

type failingReader struct {
	err error
}

func (r failingReader) Read(p []byte) (int, error) { return 0, r.err }

type recordingWriter struct {
	bytes.Buffer
	ctx              context.Context
	closed           bool
	cancelledAtClose bool
}

func (w *recordingWriter) Close() error {
	w.closed = true
	w.cancelledAtClose = w.ctx.Err() != nil
	return nil
}

func TestCopyOrAbortCancelsBeforeClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := &recordingWriter{ctx: ctx}
	readErr := errors.New("client went away")

	_, err := copyOrAbort(w, failingReader{err: readErr}, cancel)
	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if !w.closed || !w.cancelledAtClose {
		t.Fatalf("expected writer closed after cancel, closed=%v cancelled=%v", w.closed, w.cancelledAtClose)
	}
}

func TestCopyOrAbortLeavesSuccessfulWriteOpen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := &recordingWriter{ctx: ctx}

	n, err := copyOrAbort(w, strings.NewReader("payload"), cancel)
	if err != nil || n != 7 {
		t.Fatalf("expected 7 bytes, got %d, %v", n, err)
	}
	if w.closed || ctx.Err() != nil {
		t.Fatalf("expected writer left for the caller to commit")
	}
	if w.String() != "payload" {
		t.Fatalf("unexpected content %q", w.String())
	}
}
