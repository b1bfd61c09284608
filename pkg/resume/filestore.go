package resume

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps uploads in a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	if dir == "" {
		dir = "uploads"
	}
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload dir: %w", err)
	}
	dst := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}
	return dst, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *DiskStore) Remove(_ context.Context, uri string) error {
	if uri == "" {
		return nil
	}
	if err := os.Remove(uri); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
