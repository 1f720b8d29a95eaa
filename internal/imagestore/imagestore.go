package imagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

// MaxImageBytes bounds uploaded image payloads (5 MiB).
const MaxImageBytes = 5 << 20

// Store persists an image and returns a URL it will be served from.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (url string, err error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DiskStore writes images under a local directory served at /uploads/.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return "/uploads/" + name, nil
}

// Dir is the directory the file server should expose.
func (s *DiskStore) Dir() string { return s.dir }

var _ Store = (*DiskStore)(nil)
