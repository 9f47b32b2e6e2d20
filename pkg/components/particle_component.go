package components

import (
	"image"

	"github.com/gonewx/backdrop/pkg/ecs"
)

// ParticleComponent represents a single particle instance spawned by an
// emitter cell. Position is kept in a separate PositionComponent.
//
// All kinematic values are sampled once at birth from the cell's base ± range
// and only integrated afterwards.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Emitter is the entity that spawned this particle
	Emitter ecs.EntityID

	// Velocity (速度, 点/秒)
	VelocityX float64
	VelocityY float64

	// Acceleration (加速度, 点/秒²)
	AccelerationX float64
	AccelerationY float64

	// Rotation (旋转, 弧度)
	Rotation float64 // Current rotation angle
	Spin     float64 // Rotation speed in radians per second

	// Scale (缩放倍数, 1.0 = 原始尺寸)
	Scale float64

	// Lifecycle (生命周期, 秒)
	Age      float64
	Lifetime float64

	// Image is the particle texture; nil renders nothing (透明粒子)
	Image image.Image
}
