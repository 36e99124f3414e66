package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Collection persists a mapping of identifier to record as one JSON
// document. Every mutation rewrites the whole file; readers never see a
// partial write because the document is replaced with a rename.
type Collection[T any] struct {
	path string
}

// NewCollection creates the data directory if needed and binds the
// collection to <dir>/<name>.json.
func NewCollection[T any](dir, name string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Collection[T]{path: filepath.Join(dir, name+".json")}, nil
}

// Path returns the document location on disk.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the whole document. A missing file is an empty collection;
// any other failure is surfaced so startup can abort.
func (c *Collection[T]) Load() (map[string]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]T), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}

	records := make(map[string]T)
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.path, err)
	}
	return records, nil
}

// Save replaces the whole document atomically via a temp file rename.
func (c *Collection[T]) Save(records map[string]T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.path, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", c.path, err)
	}
	return nil
}
