package effect

import "image"

// Surface is the rendering surface an effect attaches to. It is owned by the
// caller and must be mutated from a single goroutine.
type Surface interface {
	// Bounds returns the visible area of the surface.
	Bounds() Rect
	// RenderTime reads the surface's monotonic render clock, in seconds.
	RenderTime() float64
	// AddSublayer appends an emitter node to the surface's child-layer list.
	AddSublayer(layer *EmitterLayer) error
	// RemoveSublayer detaches a node. Surfaces return ErrLayerNotAttached for
	// nodes they do not hold.
	RemoveSublayer(layer *EmitterLayer) error
}

// AssetSource resolves particle images by asset ID. A nil image means the
// asset is unavailable and particles render transparent.
type AssetSource interface {
	Image(id string) image.Image
}

// AssetFunc adapts a function to AssetSource.
type AssetFunc func(id string) image.Image

// Image calls f(id).
func (f AssetFunc) Image(id string) image.Image {
	return f(id)
}

// EmitterLayer is the render node attached to a surface. The compositor reads
// it every frame; BirthRate and Lifetime multiply the per-cell values.
type EmitterLayer struct {
	Name   string
	Config LayerConfig
	Cells  []CellConfig

	BirthRate float64
	Lifetime  float64
}

func newEmitterLayer(d Descriptor) *EmitterLayer {
	return &EmitterLayer{
		Name:      d.variant.String(),
		Config:    d.layer,
		Cells:     d.Cells(),
		BirthRate: 1,
		Lifetime:  1,
	}
}

// Emitting reports whether the node can still give birth to particles.
func (l *EmitterLayer) Emitting() bool {
	return l.BirthRate > 0 && l.Lifetime > 0
}
