package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each collection as a <name>.json file under a data
// directory. It is the fallback when Redis is unreachable, and mirrors the
// original flat-file document layout.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, ErrCollectionMissing
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save writes the whole document via a temp file and rename so a crash
// mid-write never leaves a truncated collection behind.
func (s *FileStore) Save(_ context.Context, name string, data []byte) error {
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(name))
}

func (s *FileStore) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}
