package state

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/replay"
	"github.com/pmellweg/ninja/internal/application/sim"
	"github.com/pmellweg/ninja/internal/domain/effects"
	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
	"github.com/pmellweg/ninja/internal/infrastructure/watch"
)

const cameraLag = 30.0

// Game runs one level: it steps the simulation with the polled gameplay
// input, records the run, advances the ghost and renders the world.
type Game struct {
	app      *App
	sim      *sim.Simulation
	recorder *replay.Recorder
	ghost    *replay.Ghost
	watcher  *watch.Watcher
	level    int
	seed     uint64
	gun      bool

	scrollX, scrollY float64
	ghostFrame       replay.VisualFrame
	ghostVisible     bool
	finished         bool
}

// NewGame starts a run of the given level.
func NewGame(app *App, level int) (*Game, error) {
	g := &Game{app: app, level: level, seed: app.Seed}
	g.gun = app.Settings.SelectedWeapon == 1 && app.Collectables.Gun

	s := sim.New(sim.Options{
		Logger:       app.Log,
		Tuning:       app.Tuning,
		Rand:         rng.New(g.seed),
		Collectables: app.Collectables,
		Skin:         app.Settings.SelectedSkin,
		GunEquipped:  g.gun,
	})
	if err := s.LoadLevelFile(app.LevelPath(level), level); err != nil {
		return nil, err
	}
	g.sim = s
	g.recorder = replay.NewRecorder(level, app.Settings.SelectedSkin, g.seed, g.gun)
	if app.Settings.GhostEnabled {
		g.ghost = app.Replays.Ghost(level)
	}

	if app.WatchLevel {
		w, err := watch.New(app.LevelPath(level), app.Log)
		if err != nil {
			app.Log.Warn("level watch disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	g.snapCamera()
	return g, nil
}

func (g *Game) Name() string { return "game" }

func (g *Game) OnEnter(State) {}

func (g *Game) OnExit(State) {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) HandleActions(actions []input.Action) {
	for _, a := range actions {
		switch a {
		case input.ActionPauseToggle:
			g.app.States.Push(NewPause(g.app))
		case input.ActionRestart:
			g.restart()
		}
	}
}

// restart abandons the current attempt and starts the level over.
func (g *Game) restart() {
	if err := g.sim.Restart(); err != nil {
		g.app.Log.Error("restart failed", "level", g.level, "err", err)
		return
	}
	g.recorder = replay.NewRecorder(g.level, g.app.Settings.SelectedSkin, g.seed, g.gun)
	if g.ghost != nil {
		g.ghost.Reset()
	}
	g.finished = false
	g.snapCamera()
}

func (g *Game) Update(float64) {
	if g.watcher != nil {
		select {
		case <-g.watcher.Changed():
			g.reloadLevel()
		default:
		}
	}
	if g.finished {
		return
	}

	frame := g.app.Router.GameplayFrame()
	ev := g.recorder.Step(g.sim, frame)

	if g.ghost != nil {
		if ev.Respawned {
			g.ghost.Reset()
		}
		g.ghostFrame, g.ghostVisible = g.ghost.Advance()
	}

	g.updateCamera()

	switch {
	case ev.LevelCompleted:
		g.finishRun(true)
	case ev.GameOver:
		g.finishRun(false)
	}
}

// reloadLevel re-reads the level file after an external edit. The run
// restarts from scratch; a broken file keeps the current level running.
func (g *Game) reloadLevel() {
	if err := g.sim.LoadLevelFile(g.app.LevelPath(g.level), g.level); err != nil {
		g.app.Log.Warn("level reload failed, keeping current level", "err", err)
		return
	}
	g.app.Log.Info("level reloaded", "level", g.level)
	g.recorder = replay.NewRecorder(g.level, g.app.Settings.SelectedSkin, g.seed, g.gun)
	if g.ghost != nil {
		g.ghost.Reset()
	}
	g.finished = false
	g.snapCamera()
}

// finishRun seals the recording and returns to the menu. Only a cleared
// run may touch the best slot and unlock the next level.
func (g *Game) finishRun(cleared bool) {
	g.finished = true
	rec := g.recorder.Finish()

	if cleared {
		improved := g.app.Replays.CommitRun(rec)
		g.app.Log.Info("level cleared",
			"level", g.level, "frames", rec.DurationFrames, "best", improved)
		if g.level+1 < g.app.LevelCount() {
			g.app.Settings.Unlock(g.level + 1)
		}
	} else {
		g.app.Replays.SaveLast(rec)
		g.app.Log.Info("game over", "level", g.level, "frames", rec.DurationFrames)
	}

	if g.app.RecordPath != "" {
		if err := replay.WriteFile(g.app.RecordPath, rec); err != nil {
			g.app.Log.Error("failed to write replay file", "path", g.app.RecordPath, "err", err)
		}
	}

	g.app.States.Set(NewMenu(g.app))
}

func (g *Game) updateCamera() {
	p := g.sim.Player().Rect()
	g.scrollX += (p.CenterX() - ScreenW/2 - g.scrollX) / cameraLag
	g.scrollY += (p.CenterY() - ScreenH/2 - g.scrollY) / cameraLag
}

func (g *Game) snapCamera() {
	p := g.sim.Player().Rect()
	g.scrollX = p.CenterX() - ScreenW/2
	g.scrollY = p.CenterY() - ScreenH/2
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSky)

	shake := float64(g.sim.Screenshake())
	camX := g.scrollX + shakeFloat()*shake - shake/2
	camY := g.scrollY + shakeFloat()*shake - shake/2

	g.drawOffgrid(screen, camX, camY)
	g.drawTiles(screen, camX, camY)
	g.drawCoins(screen, camX, camY)
	g.drawFlags(screen, camX, camY)
	g.drawGhost(screen, camX, camY)
	g.drawEnemies(screen, camX, camY)
	g.drawPlayer(screen, camX, camY)
	g.drawProjectiles(screen, camX, camY)
	g.drawParticles(screen, camX, camY)
	g.drawHUD(screen)
	g.drawTransition(screen)
}

func (g *Game) drawOffgrid(screen *ebiten.Image, camX, camY float64) {
	for _, tile := range g.sim.Tiles().Offgrid() {
		x, y := tile.Pos.X-camX, tile.Pos.Y-camY
		name := fmt.Sprintf("tiles/%s/%d", tile.Kind, tile.Variant)
		if img := g.app.Assets.Image(name); img != nil {
			drawSprite(screen, img, x, y, false, nil)
			continue
		}
		ebitenutil.DrawRect(screen, x, y, 16, 16, colorDecor)
	}
}

func (g *Game) drawTiles(screen *ebiten.Image, camX, camY float64) {
	ts := g.sim.Tiles().TileSize()
	startX := int(math.Floor(camX / float64(ts)))
	startY := int(math.Floor(camY / float64(ts)))
	endX := int(camX+ScreenW)/ts + 1
	endY := int(camY+ScreenH)/ts + 1

	for ty := startY; ty <= endY; ty++ {
		for tx := startX; tx <= endX; tx++ {
			tile, ok := g.sim.Tiles().TileAt(tilemap.GridPos{X: tx, Y: ty})
			if !ok {
				continue
			}
			x := float64(tx*ts) - camX
			y := float64(ty*ts) - camY

			name := fmt.Sprintf("tiles/%s/%d", tile.Kind, tile.Variant)
			if img := g.app.Assets.Image(name); img != nil {
				drawSprite(screen, img, x, y, false, nil)
				continue
			}

			c := colorDecor
			switch tile.Kind {
			case tilemap.KindGrass:
				c = colorGrass
			case tilemap.KindStone:
				c = colorStone
			case tilemap.KindFlag:
				c = colorFlag
			}
			ebitenutil.DrawRect(screen, x, y, float64(ts), float64(ts), c)
		}
	}
}

func (g *Game) drawCoins(screen *ebiten.Image, camX, camY float64) {
	for _, coin := range g.sim.Coins() {
		x, y := coin.Rect.X-camX, coin.Rect.Y-camY
		if img := g.app.Assets.Image("tiles/coin/0"); img != nil {
			drawSprite(screen, img, x, y, false, nil)
			continue
		}
		ebitenutil.DrawRect(screen, x+4, y+4, 8, 8, colorCoin)
	}
}

func (g *Game) drawFlags(screen *ebiten.Image, camX, camY float64) {
	for _, flag := range g.sim.Flags() {
		x, y := flag.X-camX, flag.Y-camY
		if img := g.app.Assets.Image("tiles/flag/0"); img != nil {
			drawSprite(screen, img, x, y, false, nil)
			continue
		}
		ebitenutil.DrawRect(screen, x+6, y, 3, flag.H, colorFlag)
	}
}

func (g *Game) drawGhost(screen *ebiten.Image, camX, camY float64) {
	if !g.ghostVisible {
		return
	}
	f := g.ghostFrame
	x, y := f.X-camX, f.Y-camY
	name := fmt.Sprintf("entities/player/%s/%s", skinPath(g.ghost.Skin()), f.Action)
	if frames := g.app.Assets.Animation(name); len(frames) > 0 {
		spec := entity.SpecFor(entity.TypePlayer, entity.Action(f.Action))
		idx := min(f.Anim/spec.Duration, len(frames)-1)
		tint := &ebiten.ColorScale{}
		tint.Scale(0.6, 0.6, 1, 0.45)
		drawSprite(screen, frames[idx], x, y, f.Flip, tint)
		return
	}
	ebitenutil.DrawRect(screen, x, y, entity.PlayerSize.X, entity.PlayerSize.Y, colorGhost)
}

func (g *Game) drawEnemies(screen *ebiten.Image, camX, camY float64) {
	for _, u := range g.sim.Enemies() {
		e := u.Enemy
		if !e.Alive {
			continue
		}
		x, y := e.Pos.X-camX, e.Pos.Y-camY
		name := fmt.Sprintf("entities/enemy/%s", e.Action)
		if frames := g.app.Assets.Animation(name); len(frames) > 0 {
			idx := min(e.Anim.ImageIndex(), len(frames)-1)
			drawSprite(screen, frames[idx], x, y, e.Flip, nil)
			continue
		}
		ebitenutil.DrawRect(screen, x, y, e.Size.X, e.Size.Y, colorEnemy)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, camX, camY float64) {
	if g.sim.Dead() > 0 {
		return
	}
	p := g.sim.Player()
	x, y := p.Pos.X-camX, p.Pos.Y-camY
	name := fmt.Sprintf("entities/player/%s/%s", skinPath(p.Skin), p.Action)
	if frames := g.app.Assets.Animation(name); len(frames) > 0 {
		idx := min(p.Anim.ImageIndex(), len(frames)-1)
		drawSprite(screen, frames[idx], x, y, p.Flip, nil)
		return
	}
	ebitenutil.DrawRect(screen, x, y, p.Size.X, p.Size.Y, colorPlayer)
}

func (g *Game) drawProjectiles(screen *ebiten.Image, camX, camY float64) {
	for _, p := range g.sim.Projectiles() {
		x, y := p.Pos.X-camX, p.Pos.Y-camY
		c := colorBolt
		if p.Owner == effects.OwnerEnemy {
			c = color.RGBA{255, 120, 120, 255}
		}
		ebitenutil.DrawRect(screen, x-2, y-1, 4, 2, c)
		ebitenutil.DrawLine(screen, x, y, x-p.Velocity*3, y, c)
	}
}

func (g *Game) drawParticles(screen *ebiten.Image, camX, camY float64) {
	for _, p := range g.sim.Particles().Particles() {
		c := colorDust
		if p.Kind == effects.ParticleLeaf {
			c = colorLeaf
		}
		ebitenutil.DrawRect(screen, p.Pos.X-camX-1, p.Pos.Y-camY-1, 2, 2, c)
	}
	for _, s := range g.sim.Particles().Sparks() {
		x, y := s.Pos.X-camX, s.Pos.Y-camY
		ebitenutil.DrawLine(screen, x, y,
			x+math.Cos(s.Angle)*s.Speed*3, y+math.Sin(s.Angle)*s.Speed*3, colorSparkFX)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.sim.Player()
	hud := fmt.Sprintf("Level %d  Lives %d  Coins %d  %5.1fs",
		g.level, p.Lives, g.app.Collectables.Coins, float64(g.recorder.Frames())/60)
	ebitenutil.DebugPrint(screen, hud)
	if g.app.Collectables.Gun {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Ammo %d", g.app.Collectables.Ammo), 0, 14)
	}
}

// drawTransition fades the screen around level entry, respawn and exit.
func (g *Game) drawTransition(screen *ebiten.Image) {
	t := g.sim.Transition()
	if t == 0 {
		return
	}
	span := float64(g.app.Tuning.Flow.TransitionMax)
	alpha := uint8(255 * math.Min(1, math.Abs(float64(t))/span))
	ebitenutil.DrawRect(screen, 0, 0, ScreenW, ScreenH, color.RGBA{0, 0, 0, alpha})
}

func skinPath(idx int) string {
	if idx < 0 || idx >= len(store.SkinPaths) {
		return store.SkinPaths[0]
	}
	return store.SkinPaths[idx]
}

func drawSprite(screen, img *ebiten.Image, x, y float64, flip bool, tint *ebiten.ColorScale) {
	op := &ebiten.DrawImageOptions{}
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(img.Bounds().Dx()), 0)
	}
	op.GeoM.Translate(x, y)
	if tint != nil {
		op.ColorScale = *tint
	}
	screen.DrawImage(img, op)
}

// shakeFloat is a cheap render-only jitter source. The simulation RNG is
// never used for rendering, so replays stay deterministic.
var shakeState uint32 = 1

func shakeFloat() float64 {
	shakeState = shakeState*1103515245 + 12345
	return float64(shakeState&0x7fffffff) / float64(0x7fffffff)
}
