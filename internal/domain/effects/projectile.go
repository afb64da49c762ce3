package effects

import (
	"encoding/json"
	"fmt"

	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
)

// Owner says which side fired a projectile. Bolts never hit their own side.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// MarshalJSON writes the owner by name for replay files.
func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON reads the owner by name.
func (o *Owner) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "player":
		*o = OwnerPlayer
	case "enemy":
		*o = OwnerEnemy
	default:
		return fmt.Errorf("unknown projectile owner %q", s)
	}
	return nil
}

// Projectile is a straight-line horizontal bolt. No gravity, no vertical
// motion; position is a point for collision purposes.
type Projectile struct {
	Pos      geom.Vec2 `json:"pos"`
	Velocity float64   `json:"velocity"`
	Age      int       `json:"age"`
	Owner    Owner     `json:"owner"`
}

// ProjectileSystem owns all live bolts. Hit outcomes are reported through
// the callback fields; the system itself only despawns the bolt.
type ProjectileSystem struct {
	projectiles []Projectile
	tun         *config.Tuning

	// OnImpact fires when a bolt strikes a solid tile.
	OnImpact func(pos geom.Vec2, direction float64)
	// OnPlayerHit fires when an enemy bolt strikes a non-dashing player.
	OnPlayerHit func(p *entity.Player)
	// OnEnemyHit fires when a player bolt strikes a living enemy.
	OnEnemyHit func(e *entity.Enemy)
}

// NewProjectileSystem creates an empty system.
func NewProjectileSystem(tun *config.Tuning) *ProjectileSystem {
	return &ProjectileSystem{tun: tun}
}

// Spawn adds a bolt at pos travelling horizontally at velocity.
func (s *ProjectileSystem) Spawn(pos geom.Vec2, velocity float64, owner Owner) {
	s.projectiles = append(s.projectiles, Projectile{Pos: pos, Velocity: velocity, Owner: owner})
}

// Update advances every bolt one frame and compacts the expired ones out
// in a single pass. A bolt is removed when it outlives its maximum age,
// embeds in a solid tile, or strikes a valid target.
func (s *ProjectileSystem) Update(tm *tilemap.Tilemap, players []*entity.Player, enemies []*entity.Enemy) {
	kept := s.projectiles[:0]
	for i := range s.projectiles {
		p := &s.projectiles[i]
		p.Pos.X += p.Velocity
		p.Age++

		if _, solid := tm.SolidCheck(p.Pos); solid {
			if s.OnImpact != nil {
				s.OnImpact(p.Pos, p.Velocity)
			}
			continue
		}
		if p.Age > s.tun.Projectile.MaxAge {
			continue
		}
		if s.hit(p, players, enemies) {
			continue
		}
		kept = append(kept, *p)
	}
	s.projectiles = kept
}

func (s *ProjectileSystem) hit(p *Projectile, players []*entity.Player, enemies []*entity.Enemy) bool {
	switch p.Owner {
	case OwnerEnemy:
		for _, pl := range players {
			if !pl.Alive || pl.DashActive(s.tun.Dash) {
				continue
			}
			if pl.Rect().ContainsPoint(p.Pos) {
				if s.OnPlayerHit != nil {
					s.OnPlayerHit(pl)
				}
				return true
			}
		}
	case OwnerPlayer:
		for _, e := range enemies {
			if !e.Alive {
				continue
			}
			if e.Rect().ContainsPoint(p.Pos) {
				if s.OnEnemyHit != nil {
					s.OnEnemyHit(e)
				}
				return true
			}
		}
	}
	return false
}

// Projectiles returns the live bolts in spawn order.
func (s *ProjectileSystem) Projectiles() []Projectile { return s.projectiles }

// SetProjectiles replaces the live bolts, used by snapshot restore.
func (s *ProjectileSystem) SetProjectiles(ps []Projectile) {
	s.projectiles = append(s.projectiles[:0], ps...)
}

// Reset drops all live bolts.
func (s *ProjectileSystem) Reset() {
	s.projectiles = s.projectiles[:0]
}
