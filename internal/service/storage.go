package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore persists uploaded recipe images. The S3-backed store lives in
// the config package.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// DiskImageStore writes images below a local directory, for development
// setups without object storage.
type DiskImageStore struct {
	root    string
	baseURL string
}

func NewDiskImageStore(root, baseURL string) *DiskImageStore {
	return &DiskImageStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskImageStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *DiskImageStore) Save(_ context.Context, key, _ string, body io.Reader) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return f.Close()
}

func (s *DiskImageStore) Remove(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskImageStore) URL(key string) string {
	return s.baseURL + "/" + key
}
