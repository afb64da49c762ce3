package entity

import (
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/domain/tilemap"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
)

// Enemy is a hostile entity. Its movement and shooting decisions come from
// a behavior policy each frame; the entity itself only runs physics and
// picks the matching animation.
type Enemy struct {
	PhysicsEntity
	Walking int
}

// EnemySize is the enemy collision box in pixels.
var EnemySize = geom.Vec2{X: 8, Y: 15}

// NewEnemy creates an enemy at pos.
func NewEnemy(id int, pos geom.Vec2) *Enemy {
	return &Enemy{
		PhysicsEntity: NewPhysicsEntity(TypeEnemy, id, pos, EnemySize),
	}
}

// Update runs the shared physics step with the policy-decided movement.
func (e *Enemy) Update(tm *tilemap.Tilemap, movement geom.Vec2, phys config.PhysicsTuning) {
	e.PhysicsEntity.Update(tm, movement, phys)
	if movement.X != 0 {
		e.SetAction(ActionRun)
	} else {
		e.SetAction(ActionIdle)
	}
}
