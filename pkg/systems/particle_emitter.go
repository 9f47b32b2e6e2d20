package systems

import (
	"log"
	"math"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/components"
	"github.com/gonewx/backdrop/pkg/ecs"
)

// particle_emitter.go - 粒子发射器相关方法
//
// 本文件包含 ParticleSystem 的发射器管理功能：
//  - 发射器更新逻辑（updateEmitters）
//  - 粒子生成逻辑（spawnParticle）
//  - 发射位置与方向采样（spawnPoint, launchVelocity）
//  - 发射器创建与销毁（CreateEmitter, DestroyEmitter）
//  - 粒子清理（cleanupDestroyedParticles）

// maxSpawnPerFrame 单帧单个 cell 的最大发射数量，避免长帧卡顿后一次性爆发
const maxSpawnPerFrame = 1000

// updateEmitters processes all emitter entities, spawning new particles.
// Emitters are never removed here: a stopped layer stays attached until the
// owner removes it.
func (ps *ParticleSystem) updateEmitters(now, dt float64) {
	for _, emitterID := range ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager) {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok || emitter.Layer == nil {
			continue
		}

		ps.cleanupDestroyedParticles(emitter)

		layer := emitter.Layer
		if len(emitter.SpawnAccumulators) != len(layer.Cells) {
			emitter.SpawnAccumulators = make([]float64, len(layer.Cells))
		}

		// 只计算 BeginTime 之后的那部分帧时间
		active := math.Min(dt, now-layer.Config.BeginTime)
		if active <= 0 || !layer.Emitting() {
			continue
		}

		for i, cell := range layer.Cells {
			rate := cell.BirthRate * layer.BirthRate
			if rate <= 0 {
				continue
			}
			emitter.SpawnAccumulators[i] += rate * active

			spawned := 0
			for emitter.SpawnAccumulators[i] >= 1 {
				emitter.SpawnAccumulators[i]--
				if spawned >= maxSpawnPerFrame {
					continue
				}
				if ps.spawnParticle(emitterID, emitter, cell) {
					spawned++
				}
			}
			if spawned >= maxSpawnPerFrame {
				log.Printf("[ParticleSystem] 警告：%s/%s 单帧发射达到上限 %d", layer.Name, cell.Name, maxSpawnPerFrame)
			}
		}
	}
}

// spawnParticle creates one particle of cell. It reports false when the
// sampled lifetime is not positive, which is how a zero lifetime multiplier
// suppresses births.
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent, cell effect.CellConfig) bool {
	layer := emitter.Layer

	lifetime := ps.spread(cell.Lifetime, cell.LifetimeRange) * layer.Lifetime
	if lifetime <= 0 {
		return false
	}

	x, y := ps.spawnPoint(layer.Config)
	vx, vy := ps.launchVelocity(cell)

	scale := ps.spread(cell.Scale, cell.ScaleRange)
	if scale < 0 {
		scale = 0
	}

	particleID := ps.EntityManager.CreateEntity()
	ps.EntityManager.AddComponent(particleID, &components.ParticleComponent{
		Emitter:       emitterID,
		VelocityX:     vx,
		VelocityY:     vy,
		AccelerationX: cell.XAcceleration,
		AccelerationY: cell.YAcceleration,
		Spin:          ps.spread(cell.Spin, cell.SpinRange),
		Scale:         scale,
		Lifetime:      lifetime,
		Image:         cell.Contents,
	})
	ps.EntityManager.AddComponent(particleID, &components.PositionComponent{X: x, Y: y})

	emitter.ActiveParticles = append(emitter.ActiveParticles, particleID)
	emitter.TotalLaunched++
	return true
}

// spawnPoint samples a birth position inside the emitter shape.
func (ps *ParticleSystem) spawnPoint(cfg effect.LayerConfig) (float64, float64) {
	x, y := cfg.Position.X, cfg.Position.Y
	switch cfg.Shape {
	case effect.ShapeLine:
		x += (ps.rng.Float64() - 0.5) * cfg.Size.Width
	case effect.ShapeRectangle:
		x += (ps.rng.Float64() - 0.5) * cfg.Size.Width
		y += (ps.rng.Float64() - 0.5) * cfg.Size.Height
	case effect.ShapeCircle:
		// 均匀分布在圆形区域内：半径使用 sqrt 随机，角度均匀
		r := math.Sqrt(ps.rng.Float64()) * cfg.Size.Width / 2
		ang := ps.rng.Float64() * 2 * math.Pi
		x += r * math.Cos(ang)
		y += r * math.Sin(ang)
	}
	return x, y
}

// launchVelocity samples the initial velocity. The direction is the emission
// longitude ± emission range, measured from the surface's up axis (-y).
func (ps *ParticleSystem) launchVelocity(cell effect.CellConfig) (float64, float64) {
	angle := cell.EmissionLongitude + ps.spread(0, cell.EmissionRange)
	speed := ps.spread(cell.Velocity, cell.VelocityRange)
	return speed * math.Sin(angle), -speed * math.Cos(angle)
}

// spread returns a uniform sample in [base-r, base+r].
func (ps *ParticleSystem) spread(base, r float64) float64 {
	if r == 0 {
		return base
	}
	return base + r*(2*ps.rng.Float64()-1)
}

// cleanupDestroyedParticles removes dead particle IDs from emitter's active list
func (ps *ParticleSystem) cleanupDestroyedParticles(emitter *components.EmitterComponent) {
	alive := emitter.ActiveParticles[:0]
	for _, particleID := range emitter.ActiveParticles {
		if ecs.HasComponent[*components.ParticleComponent](ps.EntityManager, particleID) {
			alive = append(alive, particleID)
		}
	}
	emitter.ActiveParticles = alive
}

// CreateEmitter creates an emitter entity driven by layer. The layer is
// referenced, not copied.
func (ps *ParticleSystem) CreateEmitter(layer *effect.EmitterLayer) ecs.EntityID {
	emitterID := ps.EntityManager.CreateEntity()
	ps.EntityManager.AddComponent(emitterID, &components.EmitterComponent{
		Layer:             layer,
		SpawnAccumulators: make([]float64, len(layer.Cells)),
	})
	log.Printf("[ParticleSystem] 创建发射器 %d: %s (%d cells)", emitterID, layer.Name, len(layer.Cells))
	return emitterID
}

// DestroyEmitter removes an emitter together with every particle it is still
// tracking. Removal is immediate.
func (ps *ParticleSystem) DestroyEmitter(emitterID ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID); ok {
		for _, particleID := range emitter.ActiveParticles {
			ps.EntityManager.DestroyEntity(particleID)
		}
		emitter.ActiveParticles = nil
	}
	ps.EntityManager.DestroyEntity(emitterID)
	ps.EntityManager.RemoveMarkedEntities()
}

// ActiveCount returns how many live particles an emitter is tracking.
func (ps *ParticleSystem) ActiveCount(emitterID ecs.EntityID) int {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
	if !ok {
		return 0
	}
	ps.cleanupDestroyedParticles(emitter)
	return len(emitter.ActiveParticles)
}
