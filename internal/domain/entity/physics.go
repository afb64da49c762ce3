// Package entity implements the simulated actors: a shared physics body
// with axis-separated tile collision, and the player and enemy built on it.
package entity

import (
	"math"

	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
)

// Type discriminates entity variants.
type Type uint8

const (
	TypePlayer Type = iota
	TypeEnemy
)

func (t Type) String() string {
	switch t {
	case TypePlayer:
		return "player"
	case TypeEnemy:
		return "enemy"
	}
	return "unknown"
}

// Collisions records which sides touched a solid tile this frame. Flags are
// reset at the start of every update; at most one flag per axis can be set.
type Collisions struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// PhysicsEntity is the shared simulated body. Position is mutated only by
// the entity's own update step.
type PhysicsEntity struct {
	ID           int
	Type         Type
	Pos          geom.Vec2
	Size         geom.Vec2
	Velocity     geom.Vec2
	Collisions   Collisions
	Flip         bool
	Action       Action
	Alive        bool
	LastMovement geom.Vec2
	Anim         Anim
}

// NewPhysicsEntity creates a body at pos with the idle animation running.
func NewPhysicsEntity(t Type, id int, pos geom.Vec2, size geom.Vec2) PhysicsEntity {
	e := PhysicsEntity{
		ID:    id,
		Type:  t,
		Pos:   pos,
		Size:  size,
		Alive: true,
	}
	e.SetAction(ActionIdle)
	return e
}

// Rect returns the entity's current collision box.
func (e *PhysicsEntity) Rect() geom.Rect {
	return geom.Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// SetAction switches the animation state, restarting the clock only when
// the action actually changes.
func (e *PhysicsEntity) SetAction(a Action) {
	if a == e.Action {
		return
	}
	e.Action = a
	e.Anim = Anim{Spec: SpecFor(e.Type, a)}
}

// Update runs one physics frame:
//
//  1. reset collision flags
//  2. frame movement = intent + velocity
//  3. move and clamp on the X axis
//  4. move and clamp on the Y axis
//  5. face the direction of intent
//  6. integrate gravity; a vertical contact zeroes vertical velocity
//  7. advance the animation clock
func (e *PhysicsEntity) Update(tm *tilemap.Tilemap, movement geom.Vec2, phys config.PhysicsTuning) {
	e.Collisions = Collisions{}
	frame := geom.Vec2{X: movement.X + e.Velocity.X, Y: movement.Y + e.Velocity.Y}

	e.Pos.X += frame.X
	if frame.X != 0 {
		r := e.Rect()
		for _, tr := range tm.PhysicsRectsAround(e.Pos) {
			if !r.Overlaps(tr) {
				continue
			}
			if frame.X > 0 {
				r.X = tr.X - r.W
				e.Collisions.Right = true
			} else {
				r.X = tr.Right()
				e.Collisions.Left = true
			}
			e.Pos.X = r.X
		}
	}

	e.Pos.Y += frame.Y
	if frame.Y != 0 {
		r := e.Rect()
		for _, tr := range tm.PhysicsRectsAround(e.Pos) {
			if !r.Overlaps(tr) {
				continue
			}
			if frame.Y > 0 {
				r.Y = tr.Y - r.H
				e.Collisions.Down = true
			} else {
				r.Y = tr.Bottom()
				e.Collisions.Up = true
			}
			e.Pos.Y = r.Y
		}
	}

	if movement.X > 0 {
		e.Flip = false
	} else if movement.X < 0 {
		e.Flip = true
	}
	e.LastMovement = movement

	e.Velocity.Y = math.Min(phys.MaxFallSpeed, e.Velocity.Y+phys.Gravity)
	if e.Collisions.Down || e.Collisions.Up {
		e.Velocity.Y = 0
	}

	e.Anim.Update()
}
