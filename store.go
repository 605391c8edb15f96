package poproject

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

//go:generate mockgen -source=$GOFILE -package mock_poproject -destination=test/mock/$GOFILE

// Store is the file access every operation goes through.
type Store interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces path with data, creating parent directories.
	WriteFile(path string, data []byte) error
	Remove(path string) error
	// Exists reports whether path is an existing file or directory.
	Exists(path string) bool
}

// FileStore is the Store backed by the local filesystem.
type FileStore struct{}

func (FileStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (FileStore) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	// atomic keeps the mode of a replaced file; a new one starts private.
	if os.IsNotExist(statErr) {
		return os.Chmod(path, 0o644)
	}
	return nil
}

func (FileStore) Remove(path string) error {
	return os.Remove(path)
}

func (FileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
