package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/apperrors"
)

// FilesystemStore writes artifacts to a directory, one file per key.
// Enabled when the operator configures an artifact directory.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates the directory if needed and returns a store
// rooted at it.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

// path maps a key to a file inside the store directory. Keys are generated
// internally (UUID-based), but Base guards against traversal anyway.
func (s *FilesystemStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *FilesystemStore) Put(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FilesystemStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrArtifactNotFound
	}
	return data, err
}

func (s *FilesystemStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FilesystemStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

func (s *FilesystemStore) DeleteOlderThan(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
