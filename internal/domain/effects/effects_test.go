package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
)

func createTestParticleSystem() *ParticleSystem {
	return NewParticleSystem(config.DefaultTuning(), rng.New(1))
}

func TestSparkDecays(t *testing.T) {
	s := Spark{Angle: 0, Speed: 1.0}

	dead := false
	steps := 0
	for !dead {
		dead = s.Update(0.1)
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 0.0, s.Speed)
	// Travelled along its angle while shrinking.
	assert.Greater(t, s.Pos.X, 0.0)
	assert.Equal(t, 0.0, s.Pos.Y)
}

func TestParticleDiesWithAnimation(t *testing.T) {
	p := NewParticle(ParticleDust, geom.Vec2{}, geom.Vec2{X: 1}, 0)

	dead := false
	steps := 0
	for !dead {
		dead = p.Update()
		steps++
		require.Less(t, steps, 1000)
	}
	// One movement step per animation tick.
	assert.Equal(t, float64(steps), p.Pos.X)
}

func TestLeafSway(t *testing.T) {
	leaf := NewParticle(ParticleLeaf, geom.Vec2{}, leafVelocity, 0)
	drift := NewParticle(ParticleDust, geom.Vec2{}, leafVelocity, 0)

	for i := 0; i < 30; i++ {
		leaf.Update()
		drift.Update()
	}
	// The sway term separates the leaf from a plain drifting particle.
	assert.NotEqual(t, drift.Pos.X, leaf.Pos.X)
	assert.Equal(t, drift.Pos.Y, leaf.Pos.Y)
}

func TestLeafSpawnerRate(t *testing.T) {
	s := createTestParticleSystem()
	s.AddLeafSpawner(geom.Rect{X: 0, Y: 0, W: 23, H: 13})

	// With a gate of area/49999 per frame, thousands of frames shed at
	// least one leaf with overwhelming probability.
	seen := false
	for i := 0; i < 20000 && !seen; i++ {
		s.Update()
		for _, p := range s.Particles() {
			if p.Kind == ParticleLeaf {
				seen = true
				break
			}
		}
	}
	assert.True(t, seen)
}

func TestHitSparksCounts(t *testing.T) {
	s := createTestParticleSystem()
	tun := config.DefaultTuning()

	s.SpawnHitSparks(geom.Vec2{X: 10, Y: 10})
	assert.Len(t, s.Sparks(), tun.Effects.HitSparkCount)
	assert.Len(t, s.Particles(), tun.Effects.HitSparkCount)

	s.SpawnImpactSparks(geom.Vec2{}, -1.5)
	assert.Len(t, s.Sparks(), tun.Effects.HitSparkCount+tun.Effects.ImpactSparkCount)
}

func TestParticleSystemCompaction(t *testing.T) {
	s := createTestParticleSystem()
	s.AddSpark(Spark{Speed: 0.1})
	s.AddSpark(Spark{Speed: 50})

	s.Update()
	// The weak spark decays to zero on the first frame, the strong one
	// survives it.
	assert.Len(t, s.Sparks(), 1)
	assert.Greater(t, s.Sparks()[0].Speed, 0.0)
}

func TestProjectileFlightAndAgeOut(t *testing.T) {
	tm := tilemap.New(16)
	tun := config.DefaultTuning()
	ps := NewProjectileSystem(tun)

	ps.Spawn(geom.Vec2{X: 0, Y: 8}, 1.5, OwnerEnemy)
	ps.Update(tm, nil, nil)
	require.Len(t, ps.Projectiles(), 1)
	assert.Equal(t, 1.5, ps.Projectiles()[0].Pos.X)
	assert.Equal(t, 8.0, ps.Projectiles()[0].Pos.Y)

	for i := 0; i < tun.Projectile.MaxAge; i++ {
		ps.Update(tm, nil, nil)
	}
	assert.Empty(t, ps.Projectiles())
}

func TestProjectileHitsWall(t *testing.T) {
	tm := tilemap.New(16)
	tm.Set(tilemap.Tile{Kind: tilemap.KindStone, Pos: tilemap.GridPos{X: 1, Y: 0}})
	ps := NewProjectileSystem(config.DefaultTuning())

	var impacts int
	var impactDir float64
	ps.OnImpact = func(pos geom.Vec2, direction float64) {
		impacts++
		impactDir = direction
	}

	ps.Spawn(geom.Vec2{X: 10, Y: 8}, 3, OwnerPlayer)
	for i := 0; i < 5; i++ {
		ps.Update(tm, nil, nil)
	}
	assert.Empty(t, ps.Projectiles())
	assert.Equal(t, 1, impacts)
	assert.Equal(t, 3.0, impactDir)
}

func TestProjectileOwnerRules(t *testing.T) {
	tm := tilemap.New(16)
	tun := config.DefaultTuning()

	player := entity.NewPlayer(0, geom.Vec2{X: 20, Y: 0}, 3)
	enemy := entity.NewEnemy(1, geom.Vec2{X: 20, Y: 0})

	tests := []struct {
		name      string
		owner     Owner
		dashing   int
		wantPHit  bool
		wantEHit  bool
	}{
		{"enemy bolt hits player", OwnerEnemy, 0, true, false},
		{"enemy bolt passes dashing player", OwnerEnemy, 55, false, false},
		{"player bolt hits enemy", OwnerPlayer, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewProjectileSystem(tun)
			pHit, eHit := false, false
			ps.OnPlayerHit = func(*entity.Player) { pHit = true }
			ps.OnEnemyHit = func(*entity.Enemy) { eHit = true }

			player.Dashing = tt.dashing
			ps.Spawn(geom.Vec2{X: 18, Y: 4}, 3, tt.owner)
			ps.Update(tm, []*entity.Player{player}, []*entity.Enemy{enemy})

			assert.Equal(t, tt.wantPHit, pHit)
			assert.Equal(t, tt.wantEHit, eHit)
			if tt.wantPHit || tt.wantEHit {
				assert.Empty(t, ps.Projectiles())
			} else {
				assert.Len(t, ps.Projectiles(), 1)
			}
		})
	}
}

func TestProjectileIgnoresDeadEnemies(t *testing.T) {
	tm := tilemap.New(16)
	enemy := entity.NewEnemy(1, geom.Vec2{X: 20, Y: 0})
	enemy.Alive = false

	ps := NewProjectileSystem(config.DefaultTuning())
	hit := false
	ps.OnEnemyHit = func(*entity.Enemy) { hit = true }

	ps.Spawn(geom.Vec2{X: 18, Y: 4}, 3, OwnerPlayer)
	ps.Update(tm, nil, []*entity.Enemy{enemy})
	assert.False(t, hit)
	assert.Len(t, ps.Projectiles(), 1)
}
