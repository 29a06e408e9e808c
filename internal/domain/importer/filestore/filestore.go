// Package filestore abstracts access to uploaded files. The import
// engine only ever reads a file's bytes and deletes it best-effort once
// the run finishes.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore provides raw bytes for an uploaded file and best-effort
// deletion after import.
type FileStore interface {
	Read(name string) ([]byte, error)
	Remove(name string) error
}

// Local is a FileStore over a directory on disk.
type Local struct {
	root string
}

// NewLocal creates a FileStore rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Read returns the bytes of the named upload.
func (l *Local) Read(name string) ([]byte, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes the named upload. A missing file is not an error.
func (l *Local) Remove(name string) error {
	path, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload %s: %w", name, err)
	}
	return nil
}

// resolve joins name under the root and rejects path traversal.
func (l *Local) resolve(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	return filepath.Join(l.root, cleaned), nil
}
