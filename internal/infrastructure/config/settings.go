package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Settings holds user-facing preferences persisted between sessions.
// Mutating setters clamp their input and flush immediately; a failed flush
// keeps the in-memory value authoritative and leaves the dirty flag set so
// the next successful save picks the change up.
type Settings struct {
	MusicVolume    float64 `json:"music_volume"`
	SoundVolume    float64 `json:"sound_volume"`
	SelectedLevel  int     `json:"selected_level"`
	SelectedSkin   int     `json:"selected_skin"`
	SelectedWeapon int     `json:"selected_weapon"`
	GhostEnabled   bool    `json:"ghost_enabled"`
	UnlockedLevels []int   `json:"unlocked_levels"`

	path  string
	log   *log.Logger
	dirty bool
}

// LoadSettings reads settings from path. A missing or corrupt file falls
// back to defaults with a warning; startup is never blocked by bad settings.
func LoadSettings(path string, logger *log.Logger) *Settings {
	s := &Settings{
		MusicVolume:    0.5,
		SoundVolume:    0.5,
		GhostEnabled:   true,
		UnlockedLevels: []int{0},
		path:           path,
		log:            logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read settings, using defaults", "path", path, "err", err)
		}
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		logger.Warn("corrupt settings file, using defaults", "path", path, "err", err)
		return s
	}
	if len(s.UnlockedLevels) == 0 {
		s.UnlockedLevels = []int{0}
	}
	return s
}

// SetMusicVolume clamps to [0,1] in 0.1 steps and flushes.
func (s *Settings) SetMusicVolume(v float64) {
	s.MusicVolume = clampVolume(v)
	s.Flush()
}

// SetSoundVolume clamps to [0,1] in 0.1 steps and flushes.
func (s *Settings) SetSoundVolume(v float64) {
	s.SoundVolume = clampVolume(v)
	s.Flush()
}

// SetSelectedLevel stores the level the player will enter next.
func (s *Settings) SetSelectedLevel(level int) {
	if level < 0 {
		level = 0
	}
	s.SelectedLevel = level
	s.Flush()
}

// SetSelectedSkin stores the equipped player skin index.
func (s *Settings) SetSelectedSkin(idx int) {
	s.SelectedSkin = idx
	s.Flush()
}

// SetSelectedWeapon stores the equipped weapon index.
func (s *Settings) SetSelectedWeapon(idx int) {
	s.SelectedWeapon = idx
	s.Flush()
}

// SetGhostEnabled toggles ghost playback and flushes.
func (s *Settings) SetGhostEnabled(on bool) {
	s.GhostEnabled = on
	s.Flush()
}

// IsUnlocked reports whether a level may be entered from the level list.
func (s *Settings) IsUnlocked(level int) bool {
	for _, l := range s.UnlockedLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Unlock marks a level as playable (idempotent) and flushes.
func (s *Settings) Unlock(level int) {
	if s.IsUnlocked(level) {
		return
	}
	s.UnlockedLevels = append(s.UnlockedLevels, level)
	s.Flush()
}

// Flush writes the settings to disk. Errors are logged, not returned: the
// in-memory state stays authoritative for the rest of the session.
func (s *Settings) Flush() {
	s.dirty = true
	if s.path == "" {
		return
	}
	if err := s.save(); err != nil {
		s.log.Error("failed to save settings", "path", s.path, "err", err)
		return
	}
	s.dirty = false
}

// Dirty reports whether there are unflushed changes.
func (s *Settings) Dirty() bool { return s.dirty }

func (s *Settings) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func clampVolume(v float64) float64 {
	v = math.Round(v*10) / 10
	return math.Max(0, math.Min(1, v))
}
