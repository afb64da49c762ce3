// Package store provides JSON persistence for the save data the game keeps
// between sessions: the collectable ledger, best times and replay files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when no record exists under the name.
var ErrNotFound = errors.New("record not found")

// JSONStore reads and writes named JSON records under a root directory.
type JSONStore struct {
	dir string
}

// NewJSONStore creates a store rooted at dir. The directory is created on
// first save, not here, so a read-only session never touches the disk.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *JSONStore) Dir() string { return s.dir }

// Load decodes the named record into v. Returns ErrNotFound when the file
// does not exist; other failures (including malformed JSON) are wrapped.
func (s *JSONStore) Load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Save encodes v as indented JSON under the name, creating the root
// directory if needed.
func (s *JSONStore) Save(name string, v any) error {
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a record exists under the name.
func (s *JSONStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
