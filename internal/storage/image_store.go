package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL path prefix under which stored images are
// exposed. Image references persisted in the catalog always carry it.
const PublicPrefix = "/uploads/"

// ImageStore persists uploaded product images and resolves their public
// references.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Presigner is an optional capability of stores whose objects are not
// served from local disk. The HTTP layer redirects to the presigned URL
// when the configured store implements it.
type Presigner interface {
	PresignGet(ctx context.Context, ref string, expiry time.Duration) (string, error)
}

// RefKey strips the public prefix from an image reference, yielding the
// storage key. References without the prefix are returned unchanged.
func RefKey(ref string) string {
	return strings.TrimPrefix(ref, PublicPrefix)
}

// FileStore saves uploaded images to disk under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes the image and returns its public reference.
func (f *FileStore) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	target := filepath.Join(f.basePath, safeFilename(name))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return PublicPrefix + filepath.Base(target), nil
}

// Remove deletes the file behind the reference. A missing file is not an
// error; removal runs best-effort after catalog deletes.
func (f *FileStore) Remove(_ context.Context, ref string) error {
	key := safeFilename(RefKey(ref))
	err := os.Remove(filepath.Join(f.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// BasePath returns the directory images are served from.
func (f *FileStore) BasePath() string {
	return f.basePath
}

func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "image"
	}
	return name
}
