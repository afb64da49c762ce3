package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// Loader loads game configuration from JSON files using the fs.FS interface.
type Loader struct {
	fsys fs.FS
	log  *log.Logger
}

// NewLoader creates a config loader rooted at a filesystem path.
func NewLoader(basePath string, logger *log.Logger) *Loader {
	return &Loader{fsys: os.DirFS(basePath), log: logger}
}

// NewFSLoader creates a config loader from an fs.FS (embedded or on-disk).
func NewFSLoader(fsys fs.FS, logger *log.Logger) *Loader {
	return &Loader{fsys: fsys, log: logger}
}

// LoadTuning loads tuning.json, falling back to the shipped defaults when
// the file is absent. A present-but-corrupt file is an error: silently
// playing with half-applied constants would be worse than failing.
func (l *Loader) LoadTuning() (*Tuning, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("tuning.json not found, using defaults")
			return DefaultTuning(), nil
		}
		return nil, fmt.Errorf("failed to read tuning.json: %w", err)
	}

	cfg := DefaultTuning()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.json: %w", err)
	}
	return cfg, nil
}
