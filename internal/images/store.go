// Package images stores profile images on disk, one file per user id.
package images

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var (
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// extensions by sniffed content type; only JPEG and PNG are accepted.
var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Save reads an image from r and stores it under the user's id, replacing
// any previous image regardless of its format. The content type is sniffed
// from the payload, not taken from the request.
func (s *Store) Save(userID int64, r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return ErrTooLarge
	}

	ext, ok := extByType[http.DetectContentType(data)]
	if !ok {
		return ErrUnsupportedType
	}

	// drop a previous image with the other extension before writing
	for _, other := range extByType {
		if other == ext {
			continue
		}
		_ = os.Remove(s.filename(userID, other))
	}

	if err := os.WriteFile(s.filename(userID, ext), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	return nil
}

// Path returns the stored image path for a user, or false when no image
// exists (never uploaded, or file removed out of band).
func (s *Store) Path(userID int64) (string, bool) {
	for _, ext := range extByType {
		p := s.filename(userID, ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func (s *Store) filename(userID int64, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d%s", userID, ext))
}
