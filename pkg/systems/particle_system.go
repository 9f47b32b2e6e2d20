package systems

import (
	"math/rand"
	"time"

	"github.com/gonewx/backdrop/pkg/components"
	"github.com/gonewx/backdrop/pkg/ecs"
)

// ParticleSystem drives every attached emitter layer and its particles.
// It follows the emitter primitive contract of the layer tree:
//
//   - an emitter starts giving birth at its layer BeginTime
//   - cell.BirthRate * layer.BirthRate particles are born per second per cell
//   - a particle lives (cell.Lifetime ± range) * layer.Lifetime seconds
//   - velocity, spin and scale are sampled at birth, acceleration is applied
//     every frame
//
// Setting the layer multipliers to zero therefore stops births while already
// emitted particles age out on their own.
//
// The system processes a frame in two phases:
//  1. Update all particles (integrate, expire)
//  2. Update all emitters (spawn new particles, drop dead IDs)
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	rng *rand.Rand
}

// NewParticleSystem creates a new ParticleSystem instance.
// rng may be nil, in which case a time-seeded source is used; pass a seeded
// source for reproducible emission.
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ParticleSystem{
		EntityManager: em,
		rng:           rng,
	}
}

// Update advances all particles by dt and lets emitters spawn for the frame
// that ends at render time now. Both are in seconds.
func (ps *ParticleSystem) Update(now, dt float64) {
	if dt <= 0 {
		return
	}
	ps.updateParticles(dt)
	ps.EntityManager.RemoveMarkedEntities()
	ps.updateEmitters(now, dt)
}

// updateParticles integrates every particle and destroys the expired ones.
func (ps *ParticleSystem) updateParticles(dt float64) {
	particleEntities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, particleID := range particleEntities {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}

		particle.Age += dt
		if particle.Age >= particle.Lifetime {
			ps.EntityManager.DestroyEntity(particleID)
			continue
		}

		// 半隐式欧拉：先更新速度再更新位置
		particle.VelocityX += particle.AccelerationX * dt
		particle.VelocityY += particle.AccelerationY * dt
		position.X += particle.VelocityX * dt
		position.Y += particle.VelocityY * dt

		particle.Rotation += particle.Spin * dt
	}
}
