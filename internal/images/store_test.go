package images_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/garnizeh/mentormatch/internal/images"
)

// minimal valid magic bytes; DetectContentType only looks at the prefix
var (
	pngHeader  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	jpegHeader = append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 16)...)
	gifHeader  = append([]byte("GIF89a"), make([]byte, 16)...)
)

func newStore(t *testing.T, maxBytes int64) *images.Store {
	t.Helper()
	s, err := images.NewStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSaveAndPath(t *testing.T) {
	s := newStore(t, 1<<20)

	if _, ok := s.Path(7); ok {
		t.Fatalf("expected no image before upload")
	}

	if err := s.Save(7, bytes.NewReader(pngHeader)); err != nil {
		t.Fatalf("Save png: %v", err)
	}
	p, ok := s.Path(7)
	if !ok {
		t.Fatalf("expected stored image")
	}
	if !strings.HasSuffix(p, "7.png") {
		t.Fatalf("unexpected path %q", p)
	}

	// re-upload as JPEG replaces the PNG
	if err := s.Save(7, bytes.NewReader(jpegHeader)); err != nil {
		t.Fatalf("Save jpeg: %v", err)
	}
	p2, ok := s.Path(7)
	if !ok {
		t.Fatalf("expected stored image after replace")
	}
	if !strings.HasSuffix(p2, "7.jpg") {
		t.Fatalf("unexpected path after replace %q", p2)
	}
	if _, err := os.Stat(p); err == nil {
		t.Fatalf("old png still present at %q", p)
	}
}

func TestSave_RejectsUnsupportedType(t *testing.T) {
	s := newStore(t, 1<<20)
	if err := s.Save(1, bytes.NewReader(gifHeader)); !errors.Is(err, images.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, ok := s.Path(1); ok {
		t.Fatalf("rejected image must not be stored")
	}
}

func TestSave_RejectsOversize(t *testing.T) {
	s := newStore(t, 64)
	big := append(append([]byte{}, pngHeader...), make([]byte, 128)...)
	if err := s.Save(1, bytes.NewReader(big)); !errors.Is(err, images.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
