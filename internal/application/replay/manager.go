package replay

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

// Manager persists recordings in two slots per level: "last" is
// overwritten after every run, "best" only when the run improves on the
// level's best time.
type Manager struct {
	store *store.JSONStore
	log   *log.Logger
	times *store.BestTimes
}

func NewManager(s *store.JSONStore, times *store.BestTimes, logger *log.Logger) *Manager {
	return &Manager{store: s, log: logger, times: times}
}

func slotName(slot string, level int) string {
	return fmt.Sprintf("replay_%s_level%d.json", slot, level)
}

func (m *Manager) loadSlot(slot string, level int) (*Recording, error) {
	var rec Recording
	if err := m.store.Load(slotName(slot, level), &rec); err != nil {
		return nil, err
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("replay %s level %d: unsupported version %d", slot, level, rec.Version)
	}
	return &rec, nil
}

// Last returns the most recent recording of a level, or ErrNotFound.
func (m *Manager) Last(level int) (*Recording, error) { return m.loadSlot("last", level) }

// Best returns the fastest recording of a level, or ErrNotFound.
func (m *Manager) Best(level int) (*Recording, error) { return m.loadSlot("best", level) }

// SaveLast overwrites the level's last-run slot. Every run lands here,
// cleared or not, so an instant retry always races the previous attempt.
func (m *Manager) SaveLast(rec *Recording) {
	if err := m.store.Save(slotName("last", rec.Level), rec); err != nil {
		m.log.Error("failed to save replay", "slot", "last", "level", rec.Level, "err", err)
	}
}

// CommitRun persists a cleared run. The last slot is always overwritten;
// the best slot only when the clear time beats the level's recorded best.
// It returns whether the run set a new best.
func (m *Manager) CommitRun(rec *Recording) bool {
	m.SaveLast(rec)
	if !m.times.Update(rec.Level, rec.DurationFrames) {
		return false
	}
	if err := m.store.Save(slotName("best", rec.Level), rec); err != nil {
		m.log.Error("failed to save replay", "slot", "best", "level", rec.Level, "err", err)
	}
	return true
}

// Ghost builds a playback ghost for a level from the last run, falling
// back to the best run. A missing or unreadable slot is not an error;
// there is simply no ghost to race.
func (m *Manager) Ghost(level int) *Ghost {
	for _, slot := range []string{"last", "best"} {
		rec, err := m.loadSlot(slot, level)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				m.log.Warn("skipping unreadable replay", "slot", slot, "level", level, "err", err)
			}
			continue
		}
		if len(rec.VisualFrames) == 0 {
			continue
		}
		return NewGhost(rec)
	}
	return nil
}
