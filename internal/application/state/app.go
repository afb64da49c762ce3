package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/replay"
	"github.com/pmellweg/ninja/internal/infrastructure/assets"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

// Logical screen size; the window scales this up.
const (
	ScreenW = 320
	ScreenH = 240
)

// App bundles the services every state needs: persistence, input, assets
// and the state stack itself. It is created once in cmd and shared.
type App struct {
	Log          *log.Logger
	Tuning       *config.Tuning
	Settings     *config.Settings
	Collectables *store.Collectables
	BestTimes    *store.BestTimes
	Replays      *replay.Manager
	Assets       assets.Provider
	Router       *input.Router
	States       *Manager

	// LevelDir holds the level files, named 0.json, 1.json, ...
	LevelDir string
	// Seed for the next run's RNG; recorded into replays.
	Seed uint64
	// RecordPath, when set, receives a copy of the next finished run.
	RecordPath string
	// WatchLevel enables hot reload of the current level file.
	WatchLevel bool

	// Quit asks the outer driver to terminate after this frame.
	Quit func()
}

// LevelPath returns the file path of a level.
func (a *App) LevelPath(level int) string {
	return filepath.Join(a.LevelDir, fmt.Sprintf("%d.json", level))
}

// LevelCount counts the consecutively numbered level files on disk.
func (a *App) LevelCount() int {
	n := 0
	for {
		if _, err := os.Stat(a.LevelPath(n)); err != nil {
			return n
		}
		n++
	}
}
