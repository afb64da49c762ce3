package sim

import (
	"math"

	"github.com/pmellweg/ninja/internal/application/input"
	"github.com/pmellweg/ninja/internal/application/policy"
	"github.com/pmellweg/ninja/internal/domain/effects"
	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
)

// StepEvents reports what happened during one tick, for sounds and flow
// control. The simulation itself never plays audio or switches states.
type StepEvents struct {
	Jumped         bool
	Dashed         bool
	PlayerShot     bool
	ShotDenied     bool
	EnemyShots     int
	EnemiesKilled  int
	CoinsCollected int
	PlayerDied     bool
	Respawned      bool
	LevelCompleted bool
	GameOver       bool
}

// Step advances the simulation by one fixed tick.
func (s *Simulation) Step(frame input.Frame) StepEvents {
	s.events = StepEvents{}
	s.tick++

	if s.screenshake > 0 {
		s.screenshake--
	}

	s.updateFlow()
	if s.events.LevelCompleted || s.events.GameOver {
		return s.events
	}

	movement := playerMovement(frame)
	if s.dead == 0 {
		if frame.Jump && s.player.Jump(s.tun.Physics) {
			s.events.Jumped = true
		}
		if frame.Dash && s.player.Dash(s.tun.Dash) {
			s.events.Dashed = true
		}
	}

	s.updateEnemies()

	if s.dead == 0 {
		if s.player.Update(s.tiles, movement, s.tun, s.rand, s.particles) {
			s.killPlayer()
		}
		if frame.Shoot {
			s.playerShoot()
		}
		s.collectCoins()
	}

	s.projectiles.Update(s.tiles, s.players, s.enemyEntities())
	s.compactEnemies()
	s.particles.Update()

	return s.events
}

// updateFlow advances the endpoint, transition and death counters.
func (s *Simulation) updateFlow() {
	flow := s.tun.Flow

	for _, f := range s.flags {
		if s.player.Rect().Overlaps(f) {
			s.endpoint = true
		}
	}
	if s.endpoint {
		s.transition++
		if s.transition > flow.TransitionMax {
			s.events.LevelCompleted = true
			return
		}
	} else if s.transition < 0 {
		s.transition++
	}

	if s.dead > 0 {
		s.dead++
		if s.dead >= flow.DeadFadeStart {
			s.transition = min(flow.TransitionMax, s.transition+1)
		}
		if s.dead > flow.RespawnThreshold {
			if s.player.Lives >= 1 {
				if err := s.respawn(); err != nil {
					s.log.Error("respawn failed", "err", err)
				} else {
					s.events.Respawned = true
				}
			} else {
				s.events.GameOver = true
			}
		}
	}
}

func (s *Simulation) updateEnemies() {
	ctx := &policy.Context{
		Tiles:  s.tiles,
		Player: s.player,
		Level:  s.level,
		Rand:   s.rand,
		Tun:    s.tun,
	}

	for _, u := range s.enemies {
		e := u.Enemy
		if !e.Alive {
			continue
		}
		d := policy.ForKind(u.Policy).Decide(e, ctx)
		e.Update(s.tiles, d.Movement, s.tun.Physics)
		if d.Shoot {
			s.enemyShoot(e, d.ShootDirection)
		}

		// A dashing player kills on contact.
		if s.dead == 0 && s.player.DashActive(s.tun.Dash) && e.Rect().Overlaps(s.player.Rect()) {
			s.killEnemy(e)
		}
	}
}

// enemyShoot fires a bolt from the enemy's gun muzzle at the speed scaled
// for the current level.
func (s *Simulation) enemyShoot(e *entity.Enemy, direction int) {
	en := s.tun.Enemy
	speed := en.ShootBase * (1 + en.ShootScale*math.Log(float64(s.level+1)))
	pos := geom.Vec2{
		X: e.Rect().CenterX() + float64(direction)*enemyShotSpawnOffset,
		Y: e.Rect().CenterY(),
	}
	s.projectiles.Spawn(pos, float64(direction)*speed, effects.OwnerEnemy)
	s.events.EnemyShots++
}

// playerShoot fires the equipped gun if the player owns one and has ammo.
func (s *Simulation) playerShoot() {
	if !s.gunEquipped || !s.collect.Gun {
		return
	}
	if s.player.ShootCooldown > 0 {
		return
	}
	if !s.collect.SpendAmmo() {
		s.events.ShotDenied = true
		return
	}
	s.player.ShootCooldown = s.tun.Projectile.ShootCooldown

	direction := 1.0
	if s.player.Flip {
		direction = -1.0
	}
	muzzle := geom.Vec2{
		X: s.player.Rect().CenterX() + direction*(s.player.Size.X/2+4),
		Y: s.player.Rect().CenterY(),
	}
	s.projectiles.Spawn(muzzle, direction*s.tun.Projectile.PlayerShotSpeed, effects.OwnerPlayer)
	s.particles.SpawnImpactSparks(muzzle, direction)
	s.events.PlayerShot = true
}

func (s *Simulation) collectCoins() {
	kept := s.coins[:0]
	for _, c := range s.coins {
		if c.Rect.Overlaps(s.player.Rect()) {
			s.collect.AddCoins(1)
			s.events.CoinsCollected++
			continue
		}
		kept = append(kept, c)
	}
	s.coins = kept
}

// enemyEntities returns the living enemies for projectile collision.
func (s *Simulation) enemyEntities() []*entity.Enemy {
	out := make([]*entity.Enemy, 0, len(s.enemies))
	for _, u := range s.enemies {
		out = append(out, u.Enemy)
	}
	return out
}

// compactEnemies drops dead enemies after the frame's iteration is done.
func (s *Simulation) compactEnemies() {
	kept := s.enemies[:0]
	for _, u := range s.enemies {
		if u.Enemy.Alive {
			kept = append(kept, u)
		}
	}
	s.enemies = kept
}
