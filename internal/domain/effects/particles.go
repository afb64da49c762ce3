package effects

import (
	"math"

	"github.com/pmellweg/ninja/internal/domain/entity"
	"github.com/pmellweg/ninja/internal/domain/geom"
	"github.com/pmellweg/ninja/internal/infrastructure/config"
	"github.com/pmellweg/ninja/internal/infrastructure/rng"
)

// ParticleKind discriminates particle animations.
type ParticleKind uint8

const (
	ParticleDust ParticleKind = iota
	ParticleLeaf
)

var particleSpecs = map[ParticleKind]entity.AnimSpec{
	ParticleDust: {Frames: 4, Duration: 6},
	ParticleLeaf: {Frames: 18, Duration: 20},
}

// leafVelocity is the slow downward-left drift of spawned leaves.
var leafVelocity = geom.Vec2{X: -0.1, Y: 0.3}

// Particle is a short-lived animated effect. It dies when its non-looping
// animation finishes.
type Particle struct {
	Kind     ParticleKind
	Pos      geom.Vec2
	Velocity geom.Vec2
	Anim     entity.Anim
}

// NewParticle creates a particle with its animation clock pre-advanced to
// frame, which staggers the lifetimes of particles spawned together.
func NewParticle(kind ParticleKind, pos, velocity geom.Vec2, frame int) Particle {
	return Particle{
		Kind:     kind,
		Pos:      pos,
		Velocity: velocity,
		Anim:     entity.Anim{Spec: particleSpecs[kind], Frame: frame},
	}
}

// Update advances the particle one frame and reports whether it is done.
// Leaves additionally sway horizontally on a sine of their animation clock.
func (p *Particle) Update() bool {
	p.Pos = p.Pos.Add(p.Velocity)
	if p.Kind == ParticleLeaf {
		p.Pos.X += math.Sin(float64(p.Anim.Frame)*0.035) * 0.3
	}
	p.Anim.Update()
	return p.Anim.Done
}

// ParticleSystem owns all live particles and sparks plus the leaf spawner
// zones extracted from tree decor.
type ParticleSystem struct {
	particles []Particle
	sparks    []Spark
	spawners  []geom.Rect
	tun       *config.Tuning
	rand      *rng.Service
}

// NewParticleSystem creates an empty system sharing the simulation RNG.
func NewParticleSystem(tun *config.Tuning, rand *rng.Service) *ParticleSystem {
	return &ParticleSystem{tun: tun, rand: rand}
}

// AddLeafSpawner registers a zone that sheds leaves at a rate proportional
// to its area.
func (s *ParticleSystem) AddLeafSpawner(r geom.Rect) {
	s.spawners = append(s.spawners, r)
}

// SpawnParticle adds a dust particle. Satisfies the sink entities emit
// dash trails and bursts through.
func (s *ParticleSystem) SpawnParticle(pos, velocity geom.Vec2, frame int) {
	s.particles = append(s.particles, NewParticle(ParticleDust, pos, velocity, frame))
}

// AddSpark adds a single spark.
func (s *ParticleSystem) AddSpark(sp Spark) {
	s.sparks = append(s.sparks, sp)
}

// SpawnHitSparks emits the circular spark-and-particle burst used when an
// entity takes a hit.
func (s *ParticleSystem) SpawnHitSparks(center geom.Vec2) {
	for i := 0; i < s.tun.Effects.HitSparkCount; i++ {
		angle := s.rand.Float64() * math.Pi * 2
		speed := s.rand.Float64() * s.tun.Effects.SparkSpeedMax
		s.sparks = append(s.sparks, Spark{Pos: center, Angle: angle, Speed: 2 + s.rand.Float64()})
		vel := geom.Vec2{
			X: math.Cos(angle+math.Pi) * speed * 0.5,
			Y: math.Sin(angle+math.Pi) * speed * 0.5,
		}
		s.particles = append(s.particles, NewParticle(ParticleDust, center, vel, s.rand.IntN(8)))
	}
}

// SpawnImpactSparks emits the small directional burst of a projectile
// striking a wall. Sparks fan out against the travel direction.
func (s *ParticleSystem) SpawnImpactSparks(pos geom.Vec2, direction float64) {
	for i := 0; i < s.tun.Effects.ImpactSparkCount; i++ {
		angle := s.rand.Float64() - 0.5
		if direction < 0 {
			angle += math.Pi
		}
		s.sparks = append(s.sparks, Spark{Pos: pos, Angle: angle, Speed: 2 + s.rand.Float64()})
	}
}

// Update runs the leaf spawners and advances every particle and spark,
// compacting the slices in place as effects expire.
func (s *ParticleSystem) Update() {
	for _, zone := range s.spawners {
		if s.rand.Float64()*s.tun.Effects.LeafSpawnScale < zone.W*zone.H {
			pos := geom.Vec2{
				X: zone.X + s.rand.Float64()*zone.W,
				Y: zone.Y + s.rand.Float64()*zone.H,
			}
			s.particles = append(s.particles, NewParticle(ParticleLeaf, pos, leafVelocity, s.rand.IntN(21)))
		}
	}

	kept := s.particles[:0]
	for i := range s.particles {
		if !s.particles[i].Update() {
			kept = append(kept, s.particles[i])
		}
	}
	s.particles = kept

	keptSparks := s.sparks[:0]
	for i := range s.sparks {
		if !s.sparks[i].Update(s.tun.Effects.SparkDecay) {
			keptSparks = append(keptSparks, s.sparks[i])
		}
	}
	s.sparks = keptSparks
}

// Particles returns the live particles in update order.
func (s *ParticleSystem) Particles() []Particle { return s.particles }

// Sparks returns the live sparks in update order.
func (s *ParticleSystem) Sparks() []Spark { return s.sparks }

// Reset drops all live effects and spawner zones.
func (s *ParticleSystem) Reset() {
	s.particles = s.particles[:0]
	s.sparks = s.sparks[:0]
	s.spawners = s.spawners[:0]
}
