// Package effects implements the transient cosmetic and combat objects:
// sparks, particles with leaf spawner zones, and projectiles. All three
// live in ordered slices that are updated and compacted in a single pass
// per frame.
package effects

import (
	"math"

	"github.com/pmellweg/ninja/internal/domain/geom"
)

// Spark is a radial line effect that shrinks as it travels.
type Spark struct {
	Pos   geom.Vec2
	Angle float64
	Speed float64
}

// Update moves the spark along its angle and decays its speed, reporting
// whether it has fully decayed.
func (s *Spark) Update(decay float64) bool {
	s.Pos.X += math.Cos(s.Angle) * s.Speed
	s.Pos.Y += math.Sin(s.Angle) * s.Speed
	s.Speed = math.Max(0, s.Speed-decay)
	return s.Speed == 0
}
