package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements ObjectStorage on the local filesystem. Keys map
// to files under the configured directory; URLs are built from the public
// base URL so clients can fetch them straight back from the API server.
type LocalStorage struct {
	dir           string
	publicBaseURL string
}

// NewLocalStorage creates a local filesystem storage rooted at dir.
// Parameters:
//   - dir: directory for stored files, created if missing.
//   - publicBaseURL: URL prefix the files are served under.
// Returns:
//   - *LocalStorage: initialized storage.
//   - error: non-nil if the directory cannot be created.
func NewLocalStorage(dir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		dir:           dir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// path resolves a key to a file path, refusing keys that escape the root.
func (s *LocalStorage) path(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}

// Save writes the object to disk under the given key.
// Parameters:
//   - ctx: unused, present for interface symmetry.
//   - key: object key, relative to the storage root.
//   - reader: object content.
//   - size: declared content size, not enforced here.
//   - contentType: declared MIME type, not stored.
// Returns:
//   - error: non-nil if the write fails.
func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(target)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Open returns a reader for the stored object.
func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(target)
}

// URL returns the public URL for the object.
func (s *LocalStorage) URL(key string) string {
	return fmt.Sprintf("%s/uploads/%s", s.publicBaseURL, key)
}

// Delete removes the stored object. Missing objects are not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists checks whether the object is present on disk.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	target, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Dir returns the storage root directory, used for static file serving.
func (s *LocalStorage) Dir() string {
	return s.dir
}
