package entity

import (
	"math"

	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
)

// FXSink receives cosmetic particle spawns from entity updates. Effects
// never feed back into physics.
type FXSink interface {
	SpawnParticle(pos, velocity geom.Vec2, frame int)
}

// Player is the controlled entity.
type Player struct {
	PhysicsEntity
	AirTime       int
	Jumps         int
	WallSlide     bool
	Dashing       int
	Lives         int
	RespawnPos    geom.Vec2
	ShootCooldown int
	Skin          int
}

// PlayerSize is the player collision box in pixels.
var PlayerSize = geom.Vec2{X: 8, Y: 15}

// NewPlayer creates a player at pos; pos doubles as the respawn point.
func NewPlayer(id int, pos geom.Vec2, lives int) *Player {
	return &Player{
		PhysicsEntity: NewPhysicsEntity(TypePlayer, id, pos, PlayerSize),
		Jumps:         1,
		Lives:         lives,
		RespawnPos:    pos,
	}
}

// Update runs the player frame on top of the shared physics step and
// reports whether the fall-death threshold was exceeded this frame.
func (p *Player) Update(tm *tilemap.Tilemap, movement geom.Vec2, tun *config.Tuning, rand *rng.Service, fx FXSink) bool {
	p.PhysicsEntity.Update(tm, movement, tun.Physics)

	if p.ShootCooldown > 0 {
		p.ShootCooldown--
	}

	p.AirTime++
	fatal := p.AirTime > tun.Physics.AirTimeFatal

	if p.Collisions.Down {
		p.AirTime = 0
		p.Jumps = 1
	}

	p.WallSlide = false
	if (p.Collisions.Right || p.Collisions.Left) && p.AirTime > 4 {
		p.WallSlide = true
		p.Velocity.Y = math.Min(p.Velocity.Y, tun.Physics.WallSlideMaxSpeed)
		// Face the wall being slid on.
		p.Flip = !p.Collisions.Right
		p.SetAction(ActionWallSlide)
	}
	if !p.WallSlide {
		switch {
		case p.AirTime > 4:
			p.SetAction(ActionJump)
		case movement.X != 0:
			p.SetAction(ActionRun)
		default:
			p.SetAction(ActionIdle)
		}
	}

	p.updateDash(tun, rand, fx)

	if p.Velocity.X > 0 {
		p.Velocity.X = math.Max(p.Velocity.X-tun.Physics.Friction, 0)
	} else {
		p.Velocity.X = math.Min(p.Velocity.X+tun.Physics.Friction, 0)
	}

	return fatal
}

func (p *Player) updateDash(tun *config.Tuning, rand *rng.Service, fx FXSink) {
	dash := tun.Dash
	mag := abs(p.Dashing)

	// Particle burst at the start and end of the active dash window.
	if mag == dash.Duration || mag == dash.ActiveThreshold {
		for i := 0; i < tun.Effects.DashBurstCount; i++ {
			angle := rand.Float64() * math.Pi * 2
			speed := rand.Float64()*tun.Effects.DashBurstSpeedSpread + tun.Effects.DashBurstSpeedMin
			vel := geom.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
			fx.SpawnParticle(p.Rect().Center(), vel, rand.IntN(8))
		}
	}

	if p.Dashing > 0 {
		p.Dashing = max(0, p.Dashing-1)
	}
	if p.Dashing < 0 {
		p.Dashing = min(0, p.Dashing+1)
	}

	if mag = abs(p.Dashing); mag > dash.ActiveThreshold {
		dir := float64(p.Dashing / mag)
		p.Velocity.X = dir * dash.Speed
		if mag == dash.DecelTrigger {
			p.Velocity.X *= dash.FirstTickDamping
		}
		trail := geom.Vec2{X: dir * rand.Float64() * dash.TrailSpeed}
		fx.SpawnParticle(p.Rect().Center(), trail, rand.IntN(8))
	}
}

// Jump applies either a wall jump or a regular jump and reports whether a
// jump actually happened. A wall slide consumes the attempt even when the
// player is not pushing into the wall.
func (p *Player) Jump(phys config.PhysicsTuning) bool {
	if p.WallSlide {
		if p.Flip && p.LastMovement.X < 0 {
			p.Velocity.X = phys.WallJumpVX
			p.Velocity.Y = phys.WallJumpVY
			p.AirTime = 5
			p.Jumps = max(0, p.Jumps-1)
			return true
		}
		if !p.Flip && p.LastMovement.X > 0 {
			p.Velocity.X = -phys.WallJumpVX
			p.Velocity.Y = phys.WallJumpVY
			p.AirTime = 5
			p.Jumps = max(0, p.Jumps-1)
			return true
		}
		return false
	}
	if p.Jumps > 0 {
		p.Velocity.Y = phys.JumpVelocity
		p.Jumps--
		p.AirTime = 5
		return true
	}
	return false
}

// Dash starts a dash in the facing direction unless one is already running.
func (p *Player) Dash(dash config.DashTuning) bool {
	if p.Dashing != 0 {
		return false
	}
	if p.Flip {
		p.Dashing = -dash.Duration
	} else {
		p.Dashing = dash.Duration
	}
	return true
}

// DashActive reports whether the dash makes the player lethal to enemies
// and immune to projectiles this frame.
func (p *Player) DashActive(dash config.DashTuning) bool {
	return abs(p.Dashing) >= dash.ActiveThreshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
