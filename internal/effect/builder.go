package effect

import (
	"log"
	"math"
)

// Descriptor is the immutable configuration of one effect variant for one
// surface size: a single emitter layer placement and its cells.
type Descriptor struct {
	variant Variant
	layer   LayerConfig
	cells   []CellConfig
}

// Variant returns the profile the descriptor was built from.
func (d Descriptor) Variant() Variant { return d.variant }

// Layer returns the emitter layer placement.
func (d Descriptor) Layer() LayerConfig { return d.layer }

// Cells returns a copy of the emitter cells.
func (d Descriptor) Cells() []CellConfig {
	out := make([]CellConfig, len(d.cells))
	copy(out, d.cells)
	return out
}

// Build constructs the descriptor of variant v for a surface of the given
// bounds. It never fails and never touches a surface: negative sizes are
// treated as zero, and an asset that cannot be resolved leaves the cell
// without contents. An unknown variant yields a descriptor with no cells.
func Build(v Variant, bounds Rect, assets AssetSource) Descriptor {
	return build(v, bounds, assets, Tuning{})
}

func build(v Variant, bounds Rect, assets AssetSource, tuning Tuning) Descriptor {
	bounds.Width = math.Max(bounds.Width, 0)
	bounds.Height = math.Max(bounds.Height, 0)

	cell, place, ok := Profile(v)
	if !ok {
		log.Printf("[Effect] 未知效果 %v，生成空描述", v)
		return Descriptor{variant: v}
	}

	if !tuning.IsZero() {
		tuned := tuning.Apply(cell)
		if err := tuned.Validate(); err != nil {
			log.Printf("[Effect] 忽略无效调参 (%s): %v", v, err)
		} else {
			cell = tuned
		}
	}

	if assets != nil {
		cell.Contents = assets.Image(cell.ContentsID)
	}
	if cell.Contents == nil {
		log.Printf("[Effect] 警告：资源 '%s' 不可用，%s 粒子将透明渲染", cell.ContentsID, v)
	}

	return Descriptor{
		variant: v,
		layer:   place(bounds),
		cells:   []CellConfig{cell},
	}
}

// Buildable is a selected variant waiting for its target surface.
type Buildable struct {
	variant Variant
	tuning  Tuning
	assets  AssetSource
}

// Select picks the effect variant to build.
func Select(v Variant) Buildable {
	return Buildable{variant: v}
}

// WithTuning returns a copy of b that applies t over the profile.
func (b Buildable) WithTuning(t Tuning) Buildable {
	b.tuning = t
	return b
}

// WithAssets returns a copy of b that resolves images from src.
func (b Buildable) WithAssets(src AssetSource) Buildable {
	b.assets = src
	return b
}

// Variant returns the selected variant.
func (b Buildable) Variant() Variant { return b.variant }

// Descriptor builds the descriptor for the given bounds without binding it.
func (b Buildable) Descriptor(bounds Rect) Descriptor {
	return build(b.variant, bounds, b.assets, b.tuning)
}

// ReadyFor builds the descriptor against the surface bounds and returns a
// handle in the Configured state. The surface is only queried.
func (b Buildable) ReadyFor(surface Surface) *Handle {
	var bounds Rect
	if surface != nil {
		bounds = surface.Bounds()
	}
	return &Handle{
		desc:    b.Descriptor(bounds),
		surface: surface,
		state:   StateConfigured,
	}
}
