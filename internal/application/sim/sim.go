// Package sim runs one level of the game world: the player, the enemies
// and their policies, projectiles, collectables and cosmetic effects, all
// stepped at a fixed 60 Hz tick. Every piece of randomness flows through
// one injected RNG service, so a run is fully determined by the level,
// the seed and the per-tick input frames.
package sim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/policy"
	"github.com/pmellweg/ninja/internal/domain/effects"
	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
	"github.com/pmellweg/ninja/internal/infrastructure/store"
)

// enemyShotSpawnOffset is how far in front of an enemy's center its bolts
// appear.
const enemyShotSpawnOffset = 15

// EnemyUnit pairs a live enemy with the behavior policy driving it.
type EnemyUnit struct {
	Enemy  *entity.Enemy
	Policy policy.Kind
}

// Coin is an uncollected pickup on the map.
type Coin struct {
	Rect geom.Rect
}

// Simulation owns all mutable state of a running level. It is not safe
// for concurrent use; one goroutine steps it.
type Simulation struct {
	log     *log.Logger
	tun     *config.Tuning
	rand    *rng.Service
	collect *store.Collectables

	level    int
	pristine *tilemap.LevelData
	tiles    *tilemap.Tilemap

	players []*entity.Player
	player  *entity.Player
	enemies []EnemyUnit

	particles   *effects.ParticleSystem
	projectiles *effects.ProjectileSystem

	coins        []Coin
	flags        []geom.Rect
	skin         int
	gunEquipped  bool

	tick        int
	screenshake int
	dead        int
	transition  int
	endpoint    bool

	events StepEvents
}

// Options configures a new simulation.
type Options struct {
	Logger       *log.Logger
	Tuning       *config.Tuning
	Rand         *rng.Service
	Collectables *store.Collectables
	Skin         int
	GunEquipped  bool
}

// New creates a simulation with no level loaded.
func New(opts Options) *Simulation {
	s := &Simulation{
		log:         opts.Logger,
		tun:         opts.Tuning,
		rand:        opts.Rand,
		collect:     opts.Collectables,
		skin:        opts.Skin,
		gunEquipped: opts.GunEquipped,
	}
	s.particles = effects.NewParticleSystem(s.tun, s.rand)
	s.projectiles = effects.NewProjectileSystem(s.tun)
	s.projectiles.OnImpact = func(pos geom.Vec2, direction float64) {
		s.particles.SpawnImpactSparks(pos, direction)
	}
	s.projectiles.OnPlayerHit = func(*entity.Player) {
		s.killPlayer()
	}
	s.projectiles.OnEnemyHit = func(e *entity.Enemy) {
		s.killEnemy(e)
	}
	return s
}

// LoadLevelFile loads and starts the level stored at path.
func (s *Simulation) LoadLevelFile(path string, level int) error {
	data, err := tilemap.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load level %d: %w", level, err)
	}
	data.Level = level
	return s.LoadLevel(data)
}

// LoadLevel starts a run of the given level data with fresh lives. The
// data is copied before the spawner extraction consumes it, so the same
// LevelData can be loaded again.
func (s *Simulation) LoadLevel(data *tilemap.LevelData) error {
	s.pristine = data.Clone()
	return s.applyLevel(data.Clone(), s.tun.Flow.StartLives, false)
}

// spawner variants: 0 player, then one per enemy policy.
var spawnerPolicies = map[int]policy.Kind{
	1: policy.Scripted,
	2: policy.Patrol,
	3: policy.Shooter,
}

func (s *Simulation) applyLevel(data *tilemap.LevelData, lives int, respawn bool) error {
	respawnPos := geom.Vec2{}
	if respawn && s.player != nil {
		respawnPos = s.player.RespawnPos
	}

	s.level = data.Level
	s.tiles = data.Tiles
	s.players = nil
	s.player = nil
	s.enemies = nil
	s.coins = nil
	s.flags = nil
	s.particles.Reset()
	s.projectiles.Reset()
	s.tick = 0
	s.screenshake = 0
	s.dead = 0
	s.endpoint = false
	s.transition = s.tun.Flow.TransitionStart

	for _, f := range s.tiles.Extract([]tilemap.KindVariant{{Kind: tilemap.KindFlag, Variant: 0}}, true) {
		s.flags = append(s.flags, geom.Rect{X: f.Pos.X, Y: f.Pos.Y, W: 16, H: 16})
	}
	for _, tree := range s.tiles.Extract([]tilemap.KindVariant{{Kind: tilemap.KindLargeDecor, Variant: 2}}, true) {
		s.particles.AddLeafSpawner(geom.Rect{X: tree.Pos.X + 4, Y: tree.Pos.Y + 4, W: 23, H: 13})
	}

	spawners := []tilemap.KindVariant{
		{Kind: tilemap.KindSpawners, Variant: 0},
		{Kind: tilemap.KindSpawners, Variant: 1},
		{Kind: tilemap.KindSpawners, Variant: 2},
		{Kind: tilemap.KindSpawners, Variant: 3},
	}
	playerID, enemyID := 0, 0
	for _, sp := range s.tiles.Extract(spawners, false) {
		if sp.Variant == 0 {
			p := entity.NewPlayer(playerID, sp.Pos, lives)
			p.Skin = s.skin
			s.players = append(s.players, p)
			playerID++
			continue
		}
		kind, ok := spawnerPolicies[sp.Variant]
		if !ok {
			return fmt.Errorf("level %d: spawner variant %d has no policy", s.level, sp.Variant)
		}
		s.enemies = append(s.enemies, EnemyUnit{Enemy: entity.NewEnemy(enemyID, sp.Pos), Policy: kind})
		enemyID++
	}
	if len(s.players) == 0 {
		return fmt.Errorf("level %d has no player spawner", s.level)
	}
	s.player = s.players[0]

	if respawn {
		s.player.Pos = respawnPos
		s.player.RespawnPos = respawnPos
		s.player.AirTime = 0
	}

	for _, c := range s.tiles.Extract([]tilemap.KindVariant{{Kind: tilemap.KindCoin, Variant: 0}}, false) {
		s.coins = append(s.coins, Coin{Rect: geom.Rect{X: c.Pos.X, Y: c.Pos.Y, W: 16, H: 16}})
	}

	s.log.Debug("level loaded",
		"level", s.level,
		"enemies", len(s.enemies),
		"coins", len(s.coins),
		"flags", len(s.flags),
		"respawn", respawn)
	return nil
}

// respawn reloads the level, keeping the player's remaining lives and
// saved respawn position.
func (s *Simulation) respawn() error {
	return s.applyLevel(s.pristine.Clone(), s.player.Lives, true)
}

// Restart reloads the level from scratch with fresh lives.
func (s *Simulation) Restart() error {
	return s.applyLevel(s.pristine.Clone(), s.tun.Flow.StartLives, false)
}

// killPlayer begins the death sequence once. Further calls while the
// dead counter runs are ignored.
func (s *Simulation) killPlayer() {
	if s.dead > 0 {
		return
	}
	s.dead = 1
	s.player.Lives--
	s.shake(16)
	s.particles.SpawnHitSparks(s.player.Rect().Center())
	s.events.PlayerDied = true
}

// killEnemy destroys an enemy, credits a coin and emits the hit burst.
func (s *Simulation) killEnemy(e *entity.Enemy) {
	e.Alive = false
	s.shake(16)
	s.collect.AddCoins(1)
	center := e.Rect().Center()
	s.particles.SpawnHitSparks(center)
	s.particles.AddSpark(effects.Spark{Pos: center, Angle: 0, Speed: 5 + s.rand.Float64()})
	s.particles.AddSpark(effects.Spark{Pos: center, Angle: math.Pi, Speed: 5 + s.rand.Float64()})
	s.events.EnemiesKilled++
}

func (s *Simulation) shake(frames int) {
	if frames > s.screenshake {
		s.screenshake = frames
	}
}

// Accessors used by rendering, snapshots and replay.

func (s *Simulation) Tick() int                               { return s.tick }
func (s *Simulation) Level() int                              { return s.level }
func (s *Simulation) Tiles() *tilemap.Tilemap                 { return s.tiles }
func (s *Simulation) Player() *entity.Player                  { return s.player }
func (s *Simulation) Players() []*entity.Player               { return s.players }
func (s *Simulation) Enemies() []EnemyUnit                    { return s.enemies }
func (s *Simulation) Coins() []Coin                           { return s.coins }
func (s *Simulation) Flags() []geom.Rect                      { return s.flags }
func (s *Simulation) Particles() *effects.ParticleSystem      { return s.particles }
func (s *Simulation) Projectiles() []effects.Projectile       { return s.projectiles.Projectiles() }
func (s *Simulation) Rand() *rng.Service                      { return s.rand }
func (s *Simulation) Collectables() *store.Collectables       { return s.collect }
func (s *Simulation) Skin() int                               { return s.skin }
func (s *Simulation) Dead() int                               { return s.dead }
func (s *Simulation) Transition() int                         { return s.transition }
func (s *Simulation) Screenshake() int                        { return s.screenshake }
func (s *Simulation) Endpoint() bool                          { return s.endpoint }

// RestoreState writes a captured state back, replacing the live entity
// and projectile collections. The RNG state is restored separately by the
// snapshot service.
func (s *Simulation) RestoreState(players []*entity.Player, enemies []EnemyUnit, projectiles []effects.Projectile, tick, dead, transition int, endpoint bool) {
	s.players = players
	if len(players) > 0 {
		s.player = players[0]
	}
	s.enemies = enemies
	s.projectiles.SetProjectiles(projectiles)
	s.tick = tick
	s.dead = dead
	s.transition = transition
	s.endpoint = endpoint
}

// SetGunEquipped switches the equipped weapon between fists and gun.
func (s *Simulation) SetGunEquipped(v bool) { s.gunEquipped = v }

// playerMovement converts the held directions into the intent vector the
// physics step consumes.
func playerMovement(f input.Frame) geom.Vec2 {
	var m geom.Vec2
	if f.Left {
		m.X -= 1
	}
	if f.Right {
		m.X += 1
	}
	return m
}
