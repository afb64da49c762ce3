// Package policy implements enemy behavior: each frame a policy inspects
// one enemy and its surroundings and decides movement and shooting. The
// policy set is closed; an unknown kind is a configuration bug.
package policy

import (
	"fmt"
	"math"

	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
)

// Kind selects a behavior policy.
type Kind uint8

const (
	// Scripted is the default enemy: random walk bouts with edge and wall
	// turnaround, and a line-of-sight shot when a bout ends.
	Scripted Kind = iota
	// Patrol walks continuously with the same turnaround rules and never
	// shoots.
	Patrol
	// Shooter is a stationary turret that tracks the player and fires on a
	// probability gate while the player is inside its range window.
	Shooter
)

var kindNames = map[Kind]string{
	Scripted: "scripted",
	Patrol:   "patrol",
	Shooter:  "shooter",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", k)
}

// KindFromName resolves a persisted policy name.
func KindFromName(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q", name)
}

// Decision is a policy's output for one frame. ShootDirection is the sign
// of the shot, never a speed.
type Decision struct {
	Movement       geom.Vec2
	Shoot          bool
	ShootDirection int
}

// Context is the world as a policy sees it.
type Context struct {
	Tiles  *tilemap.Tilemap
	Player *entity.Player
	Level  int
	Rand   *rng.Service
	Tun    *config.Tuning
}

// Policy decides one enemy's intent per frame. Policies may mutate the
// enemy's facing and walk timer; that shared state is part of the contract.
type Policy interface {
	Decide(e *entity.Enemy, ctx *Context) Decision
}

// ForKind returns the policy implementation for a kind. Unknown kinds
// panic: they can only come from broken wiring, not from gameplay.
func ForKind(k Kind) Policy {
	switch k {
	case Scripted:
		return scriptedPolicy{}
	case Patrol:
		return patrolPolicy{}
	case Shooter:
		return shooterPolicy{}
	}
	panic(fmt.Sprintf("policy: no implementation for %v", k))
}

// walkSpeed scales enemy speed with the level number.
func walkSpeed(ctx *Context) float64 {
	e := ctx.Tun.Enemy
	return e.DirectionBase * (1 + e.DirectionScale*math.Log(float64(ctx.Level+1)))
}

// groundAhead probes one tile-ish below and ahead of the enemy's facing
// edge for solid footing.
func groundAhead(e *entity.Enemy, ctx *Context) bool {
	dx := 7.0
	if e.Flip {
		dx = -7.0
	}
	probe := geom.Vec2{X: e.Rect().CenterX() + dx, Y: e.Pos.Y + 23}
	_, solid := ctx.Tiles.SolidCheck(probe)
	return solid
}

// walk applies the shared turnaround rules and returns this frame's
// movement: reverse at cliff edges, reverse on wall contact, otherwise
// advance in the facing direction.
func walk(e *entity.Enemy, ctx *Context) geom.Vec2 {
	if !groundAhead(e, ctx) {
		e.Flip = !e.Flip
		return geom.Vec2{}
	}
	if e.Collisions.Right || e.Collisions.Left {
		e.Flip = !e.Flip
		return geom.Vec2{}
	}
	speed := walkSpeed(ctx)
	if e.Flip {
		speed = -speed
	}
	return geom.Vec2{X: speed}
}

type scriptedPolicy struct{}

func (scriptedPolicy) Decide(e *entity.Enemy, ctx *Context) Decision {
	var d Decision
	if e.Walking > 0 {
		d.Movement = walk(e, ctx)
		e.Walking = max(0, e.Walking-1)
		if e.Walking == 0 {
			d.Shoot, d.ShootDirection = lineOfSightShot(e, ctx)
		}
		return d
	}
	if ctx.Rand.Float64() < ctx.Tun.Enemy.WalkStartChance {
		e.Walking = ctx.Rand.IntRange(ctx.Tun.Enemy.WalkMinFrames, ctx.Tun.Enemy.WalkMaxFrames)
	}
	return d
}

// lineOfSightShot fires only when the player is nearly level with the
// enemy and on the side it faces.
func lineOfSightShot(e *entity.Enemy, ctx *Context) (bool, int) {
	dx := ctx.Player.Pos.X - e.Pos.X
	dy := ctx.Player.Pos.Y - e.Pos.Y
	if math.Abs(dy) >= ctx.Tun.Enemy.ShootBandY {
		return false, 0
	}
	if e.Flip && dx < 0 {
		return true, -1
	}
	if !e.Flip && dx > 0 {
		return true, 1
	}
	return false, 0
}

type patrolPolicy struct{}

func (patrolPolicy) Decide(e *entity.Enemy, ctx *Context) Decision {
	return Decision{Movement: walk(e, ctx)}
}

type shooterPolicy struct{}

func (shooterPolicy) Decide(e *entity.Enemy, ctx *Context) Decision {
	var d Decision
	dx := ctx.Player.Pos.X - e.Pos.X
	dy := ctx.Player.Pos.Y - e.Pos.Y

	e.Flip = dx <= 0

	if ctx.Rand.Float64() < ctx.Tun.Enemy.ShooterChance {
		if math.Abs(dx) < ctx.Tun.Enemy.ShooterRangeX && math.Abs(dy) < ctx.Tun.Enemy.ShooterRangeY {
			d.Shoot = true
			d.ShootDirection = 1
			if dx <= 0 {
				d.ShootDirection = -1
			}
		}
	}
	return d
}
