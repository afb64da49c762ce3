package store

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/log"
)

const bestTimesFile = "best_times.json"

// BestTimes tracks the fastest clear per level, measured in simulation
// frames so that comparisons are deterministic.
type BestTimes struct {
	store *JSONStore
	log   *log.Logger
	times map[string]int
}

// LoadBestTimes reads the table, tolerating a missing or corrupt file.
func LoadBestTimes(s *JSONStore, logger *log.Logger) *BestTimes {
	b := &BestTimes{store: s, log: logger, times: map[string]int{}}
	err := s.Load(bestTimesFile, &b.times)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("corrupt best times file, starting fresh", "err", err)
		b.times = map[string]int{}
	}
	return b
}

// Best returns the best time in frames for a level, or false when none is
// recorded yet.
func (b *BestTimes) Best(level int) (int, bool) {
	frames, ok := b.times[strconv.Itoa(level)]
	return frames, ok
}

// Update records a clear time. It persists and returns true only when the
// run improves on (or first sets) the level's best.
func (b *BestTimes) Update(level, frames int) bool {
	key := strconv.Itoa(level)
	if prev, ok := b.times[key]; ok && frames >= prev {
		return false
	}
	b.times[key] = frames
	if err := b.store.Save(bestTimesFile, b.times); err != nil {
		b.log.Error("failed to save best times", "err", err)
	}
	return true
}
