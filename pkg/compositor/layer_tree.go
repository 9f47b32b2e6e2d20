// Package compositor hosts effect layers on an ebiten screen.
//
// LayerTree is the rendering surface effects attach to: it owns the child
// layer list and a monotonic render clock, and drives the built-in emitter
// primitive (birth rate, lifetime, emission shape, per-cell kinematics)
// through the ECS particle system.
//
//	tree := compositor.NewLayerTree(effect.Rect{Width: 800, Height: 600}, compositor.Options{})
//	h, err := effect.Select(effect.Snow).ReadyFor(tree).Run()
//	...
//	tree.Update(1.0 / 60)
//	tree.Draw(screen)
//
// A LayerTree is not safe for concurrent use; drive it from the ebiten update
// goroutine.
package compositor

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/backdrop/internal/effect"
	"github.com/gonewx/backdrop/pkg/ecs"
	"github.com/gonewx/backdrop/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// Options configures a LayerTree.
type Options struct {
	// Rand drives particle sampling. Nil means Seed is used instead.
	Rand *rand.Rand
	// Seed seeds a private source when Rand is nil; zero means time-seeded.
	Seed int64
}

// sublayer 子图层及其发射器实体
type sublayer struct {
	layer   *effect.EmitterLayer
	emitter ecs.EntityID
}

// LayerTree is an effect.Surface backed by an ECS world.
type LayerTree struct {
	bounds effect.Rect
	clock  float64

	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem

	sublayers []sublayer
}

var _ effect.Surface = (*LayerTree)(nil)

// NewLayerTree creates an empty layer tree covering bounds.
func NewLayerTree(bounds effect.Rect, opts Options) *LayerTree {
	rng := opts.Rand
	if rng == nil && opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	em := ecs.NewEntityManager()
	return &LayerTree{
		bounds:         bounds,
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em, rng),
		renderSystem:   systems.NewRenderSystem(em),
	}
}

// Bounds implements effect.Surface.
func (t *LayerTree) Bounds() effect.Rect {
	return t.bounds
}

// SetBounds resizes the tree. Attached layers keep their placement.
func (t *LayerTree) SetBounds(bounds effect.Rect) {
	t.bounds = bounds
}

// RenderTime implements effect.Surface. The clock starts at 0 and only moves
// forward with Update.
func (t *LayerTree) RenderTime() float64 {
	return t.clock
}

// AddSublayer implements effect.Surface.
func (t *LayerTree) AddSublayer(layer *effect.EmitterLayer) error {
	if layer == nil {
		return fmt.Errorf("compositor: nil layer")
	}
	if t.indexOf(layer) >= 0 {
		return effect.ErrLayerAttached
	}

	emitterID := t.particleSystem.CreateEmitter(layer)
	t.sublayers = append(t.sublayers, sublayer{layer: layer, emitter: emitterID})
	log.Printf("[LayerTree] 添加子图层 %s (beginTime=%.2f, 共 %d 层)", layer.Name, layer.Config.BeginTime, len(t.sublayers))
	return nil
}

// RemoveSublayer implements effect.Surface. The layer's particles vanish with
// it.
func (t *LayerTree) RemoveSublayer(layer *effect.EmitterLayer) error {
	i := t.indexOf(layer)
	if i < 0 {
		return effect.ErrLayerNotAttached
	}

	t.particleSystem.DestroyEmitter(t.sublayers[i].emitter)
	t.sublayers = append(t.sublayers[:i], t.sublayers[i+1:]...)
	log.Printf("[LayerTree] 移除子图层 %s (剩余 %d 层)", layer.Name, len(t.sublayers))
	return nil
}

// Sublayers returns the attached layers in attach order.
func (t *LayerTree) Sublayers() []*effect.EmitterLayer {
	layers := make([]*effect.EmitterLayer, len(t.sublayers))
	for i, s := range t.sublayers {
		layers[i] = s.layer
	}
	return layers
}

// ParticleCount returns the number of live particles emitted by layer, or 0
// when layer is not attached.
func (t *LayerTree) ParticleCount(layer *effect.EmitterLayer) int {
	i := t.indexOf(layer)
	if i < 0 {
		return 0
	}
	return t.particleSystem.ActiveCount(t.sublayers[i].emitter)
}

// TotalParticles returns the number of live particles across all layers.
func (t *LayerTree) TotalParticles() int {
	total := 0
	for _, s := range t.sublayers {
		total += t.particleSystem.ActiveCount(s.emitter)
	}
	return total
}

// Update advances the render clock by dt seconds and steps every emitter.
// Non-positive dt is ignored.
func (t *LayerTree) Update(dt float64) {
	if dt <= 0 {
		return
	}
	t.clock += dt
	t.particleSystem.Update(t.clock, dt)
}

// Draw renders every particle onto screen.
func (t *LayerTree) Draw(screen *ebiten.Image) {
	t.renderSystem.Draw(screen)
}

// Close tears the surface down: every layer is detached and uploaded textures
// are released. Handles that still reference a layer see ErrLayerNotAttached
// on removal.
func (t *LayerTree) Close() {
	for len(t.sublayers) > 0 {
		_ = t.RemoveSublayer(t.sublayers[len(t.sublayers)-1].layer)
	}
	t.renderSystem.Release()
}

func (t *LayerTree) indexOf(layer *effect.EmitterLayer) int {
	for i, s := range t.sublayers {
		if s.layer == layer {
			return i
		}
	}
	return -1
}
