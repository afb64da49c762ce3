package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/pmellweg/ninja/internal/application/game"
	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/replay"
	"github.com/pmellweg/ninja/internal/application/state"
	"github.com/pmellweg/ninja/internal/infrastructure/assets"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

var (
	flagLevel  int
	flagRecord string
	flagWatch  bool
	flagSeed   uint64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Starts the game window. Without flags it opens the main menu;
with --level it jumps straight into a run of that level.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "skip the menu and start this level")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "also write the next finished run to this file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the current level when its file changes")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "simulation seed (0 picks one from the clock)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	saves := store.NewJSONStore(filepath.Join(flagDataDir, "save"))
	settings := config.LoadSettings(filepath.Join(flagDataDir, "save", "settings.json"), logger)
	collect := store.LoadCollectables(saves, logger)
	times := store.LoadBestTimes(saves, logger)

	tuning, err := config.NewLoader(flagDataDir, logger).LoadTuning()
	if err != nil {
		return err
	}

	bindings, err := input.LoadBindings(filepath.Join(flagDataDir, "bindings.yaml"), logger)
	if err != nil {
		return err
	}

	art, err := assets.LoadDir(filepath.Join(flagDataDir, "images"), logger)
	if err != nil {
		return err
	}

	app := &state.App{
		Log:          logger,
		Tuning:       tuning,
		Settings:     settings,
		Collectables: collect,
		BestTimes:    times,
		Replays:      replay.NewManager(saves, times, logger),
		Assets:       art,
		Router:       input.NewRouter(bindings),
		States:       state.NewManager(logger),
		LevelDir:     filepath.Join(flagDataDir, "maps"),
		Seed:         seed,
		RecordPath:   flagRecord,
		WatchLevel:   flagWatch,
	}

	g := game.New(app)

	if flagLevel >= 0 {
		settings.SetSelectedLevel(flagLevel)
		run, err := state.NewGame(app, flagLevel)
		if err != nil {
			return fmt.Errorf("start level %d: %w", flagLevel, err)
		}
		app.States.Set(run)
	}

	logger.Info("starting", "seed", seed, "levels", app.LevelCount())

	ebiten.SetWindowSize(state.ScreenW*3, state.ScreenH*3)
	ebiten.SetWindowTitle("ninja")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}

	settings.Flush()
	collect.Flush()
	return nil
}
