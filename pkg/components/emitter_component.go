package components

import (
	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/ecs"
)

// EmitterComponent represents an emitter layer attached to the layer tree.
//
// The emitter does not copy its configuration: Layer points at the node owned
// by the effect handle, so a Stop (birth rate and lifetime multipliers set to
// zero) is visible on the next update without any notification.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	// Layer is the attached node (owned by the effect handle)
	Layer *effect.EmitterLayer

	// Spawn timing (发射时机)
	// SpawnAccumulators[i] 累积 Cells[i] 尚未发射的粒子份额
	SpawnAccumulators []float64

	// Particle tracking (粒子追踪)
	ActiveParticles []ecs.EntityID // 当前存活的粒子
	TotalLaunched   int            // 累计发射数量
}
