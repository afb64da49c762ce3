// Package snapshot captures and restores the full mutable state of a
// running simulation. Because every entropy source is the one shared RNG
// service, restoring a snapshot and replaying the same inputs reproduces
// a run exactly.
package snapshot

import (
	"fmt"

	"github.com/pmellweg/ninja/internal/application/policy"
	"github.com/pmellweg/ninja/internal/application/sim"
	"github.com/pmellweg/ninja/internal/domain/effects"
	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
)

// PlayerSnapshot is the captured state of one player.
type PlayerSnapshot struct {
	ID            int               `json:"id"`
	Pos           [2]float64        `json:"pos"`
	Velocity      [2]float64        `json:"velocity"`
	Collisions    entity.Collisions `json:"collisions"`
	Flip          bool              `json:"flip"`
	Action        string            `json:"action"`
	AnimFrame     int               `json:"anim"`
	LastMovement  [2]float64        `json:"last_movement"`
	AirTime       int               `json:"air_time"`
	Jumps         int               `json:"jumps"`
	WallSlide     bool              `json:"wall_slide"`
	Dashing       int               `json:"dashing"`
	Lives         int               `json:"lifes"`
	RespawnPos    [2]float64        `json:"respawn_pos"`
	ShootCooldown int               `json:"shoot_cooldown"`
	Skin          int               `json:"skin"`
}

// EnemySnapshot is the captured state of one enemy.
type EnemySnapshot struct {
	ID         int               `json:"id"`
	Pos        [2]float64        `json:"pos"`
	Velocity   [2]float64        `json:"velocity"`
	Collisions entity.Collisions `json:"collisions"`
	Flip       bool              `json:"flip"`
	Action     string            `json:"action"`
	AnimFrame  int               `json:"anim"`
	Walking    int               `json:"walking"`
	Policy     string            `json:"policy"`
}

// Snapshot is a value copy of everything the Step function mutates.
type Snapshot struct {
	Tick        int                  `json:"tick"`
	RNGState    []byte               `json:"rng_state"`
	Players     []PlayerSnapshot     `json:"players"`
	Enemies     []EnemySnapshot      `json:"enemies"`
	Projectiles []effects.Projectile `json:"projectiles"`
	Score       int                  `json:"score"`
	Ammo        int                  `json:"ammo"`
	DeadCount   int                  `json:"dead_count"`
	Transition  int                  `json:"transition"`
	Endpoint    bool                 `json:"endpoint"`
}

// Capture copies the simulation's live state into a snapshot.
func Capture(s *sim.Simulation) Snapshot {
	snap := Snapshot{
		Tick:       s.Tick(),
		RNGState:   s.Rand().State(),
		Score:      s.Collectables().Coins,
		Ammo:       s.Collectables().Ammo,
		DeadCount:  s.Dead(),
		Transition: s.Transition(),
		Endpoint:   s.Endpoint(),
	}
	for _, p := range s.Players() {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:            p.ID,
			Pos:           [2]float64{p.Pos.X, p.Pos.Y},
			Velocity:      [2]float64{p.Velocity.X, p.Velocity.Y},
			Collisions:    p.Collisions,
			Flip:          p.Flip,
			Action:        string(p.Action),
			AnimFrame:     p.Anim.Frame,
			LastMovement:  [2]float64{p.LastMovement.X, p.LastMovement.Y},
			AirTime:       p.AirTime,
			Jumps:         p.Jumps,
			WallSlide:     p.WallSlide,
			Dashing:       p.Dashing,
			Lives:         p.Lives,
			RespawnPos:    [2]float64{p.RespawnPos.X, p.RespawnPos.Y},
			ShootCooldown: p.ShootCooldown,
			Skin:          p.Skin,
		})
	}
	for _, u := range s.Enemies() {
		e := u.Enemy
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID:         e.ID,
			Pos:        [2]float64{e.Pos.X, e.Pos.Y},
			Velocity:   [2]float64{e.Velocity.X, e.Velocity.Y},
			Collisions: e.Collisions,
			Flip:       e.Flip,
			Action:     string(e.Action),
			AnimFrame:  e.Anim.Frame,
			Walking:    e.Walking,
			Policy:     u.Policy.String(),
		})
	}
	snap.Projectiles = append(snap.Projectiles, s.Projectiles()...)
	return snap
}

// Restore writes a snapshot back into the simulation, replacing the live
// entities, projectiles and RNG state.
func Restore(s *sim.Simulation, snap Snapshot) error {
	if err := s.Rand().SetState(snap.RNGState); err != nil {
		return fmt.Errorf("restore rng: %w", err)
	}

	players := make([]*entity.Player, 0, len(snap.Players))
	for _, ps := range snap.Players {
		p := entity.NewPlayer(ps.ID, geom.Vec2{X: ps.Pos[0], Y: ps.Pos[1]}, ps.Lives)
		p.Velocity = geom.Vec2{X: ps.Velocity[0], Y: ps.Velocity[1]}
		p.Collisions = ps.Collisions
		p.Flip = ps.Flip
		p.SetAction(entity.Action(ps.Action))
		p.Anim.Frame = ps.AnimFrame
		p.LastMovement = geom.Vec2{X: ps.LastMovement[0], Y: ps.LastMovement[1]}
		p.AirTime = ps.AirTime
		p.Jumps = ps.Jumps
		p.WallSlide = ps.WallSlide
		p.Dashing = ps.Dashing
		p.RespawnPos = geom.Vec2{X: ps.RespawnPos[0], Y: ps.RespawnPos[1]}
		p.ShootCooldown = ps.ShootCooldown
		p.Skin = ps.Skin
		players = append(players, p)
	}

	enemies := make([]sim.EnemyUnit, 0, len(snap.Enemies))
	for _, es := range snap.Enemies {
		kind, err := policy.KindFromName(es.Policy)
		if err != nil {
			return fmt.Errorf("restore enemy %d: %w", es.ID, err)
		}
		e := entity.NewEnemy(es.ID, geom.Vec2{X: es.Pos[0], Y: es.Pos[1]})
		e.Velocity = geom.Vec2{X: es.Velocity[0], Y: es.Velocity[1]}
		e.Collisions = es.Collisions
		e.Flip = es.Flip
		e.SetAction(entity.Action(es.Action))
		e.Anim.Frame = es.AnimFrame
		e.Walking = es.Walking
		enemies = append(enemies, sim.EnemyUnit{Enemy: e, Policy: kind})
	}

	s.RestoreState(players, enemies, snap.Projectiles, snap.Tick, snap.DeadCount, snap.Transition, snap.Endpoint)
	s.Collectables().Coins = snap.Score
	s.Collectables().Ammo = snap.Ammo
	return nil
}
