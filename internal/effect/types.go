// Package effect builds decorative particle-effect descriptors and binds them
// to a rendering surface.
//
// An effect is selected by Variant, turned into an immutable Descriptor (one
// emitter layer placement plus its emitter cells) and attached to a Surface
// through a Handle. The Handle owns the attached EmitterLayer node; it never
// owns the Surface.
//
//	h, err := effect.Select(effect.Snow).ReadyFor(tree).Run()
//	if err != nil {
//	    log.Printf("[Effect] run failed: %v", err)
//	}
//	...
//	_ = h.Stop()    // no further births, live particles finish their lifetime
//	_ = h.Dispose() // remove the node from the surface
//
// Coordinates follow the screen convention: origin at the top-left of the
// surface, y grows downward, angles in radians.
package effect

import "image"

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is a position in surface coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Shape is the geometry particles are emitted from.
type Shape int

const (
	// ShapePoint emits every particle at the layer position.
	ShapePoint Shape = iota
	// ShapeLine emits along a horizontal segment of Size.Width centred on the position.
	ShapeLine
	// ShapeRectangle emits anywhere inside a Size box centred on the position.
	ShapeRectangle
	// ShapeCircle emits inside a disk of diameter Size.Width centred on the position.
	ShapeCircle
)

var shapeNames = map[Shape]string{
	ShapePoint:     "point",
	ShapeLine:      "line",
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// CellConfig is the template of one particle kind: its visual asset and
// kinematics. Every "…Range" field is a symmetric spread around the base value
// (base ± range).
//
// Velocity is measured along the emission direction. With EmissionLongitude = 0
// the emission direction points toward the top of the surface (-y), so a
// negative velocity moves particles down the screen and a positive one moves
// them up.
type CellConfig struct {
	Name string

	// ContentsID is the asset ID Contents was resolved from.
	ContentsID string
	// Contents is the particle image. nil renders transparent particles.
	Contents image.Image

	Lifetime      float64 // seconds
	LifetimeRange float64
	BirthRate     float64 // particles per second

	Scale      float64
	ScaleRange float64

	Velocity      float64 // points per second
	VelocityRange float64

	Spin      float64 // radians per second
	SpinRange float64

	XAcceleration float64 // points per second²
	YAcceleration float64

	EmissionLongitude float64 // radians, 0 = toward -y
	EmissionRange     float64 // half-angle spread in radians
}

// Validate reports rates or lifetimes that an emitter cannot honour.
func (c CellConfig) Validate() error {
	switch {
	case c.Lifetime < 0:
		return &ConfigError{Field: "lifetime", Value: c.Lifetime}
	case c.LifetimeRange < 0:
		return &ConfigError{Field: "lifetimeRange", Value: c.LifetimeRange}
	case c.BirthRate < 0:
		return &ConfigError{Field: "birthRate", Value: c.BirthRate}
	}
	return nil
}

// MaxLifetime is the longest a single particle of this cell can live.
func (c CellConfig) MaxLifetime() float64 {
	return c.Lifetime + c.LifetimeRange
}

// LayerConfig places the emission source relative to the target surface.
type LayerConfig struct {
	Position Point // centre of the emitter shape
	Size     Size
	Shape    Shape

	// BeginTime is the render-clock time the emitter starts at. It is stamped
	// when the layer is attached.
	BeginTime float64
}

// LineEndpoints returns the two ends of a line emitter.
func (l LayerConfig) LineEndpoints() (Point, Point) {
	half := l.Size.Width / 2
	return Point{X: l.Position.X - half, Y: l.Position.Y},
		Point{X: l.Position.X + half, Y: l.Position.Y}
}

// Bounds returns the box the emitter can place a new particle in.
func (l LayerConfig) Bounds() Rect {
	w, h := l.Size.Width, l.Size.Height
	switch l.Shape {
	case ShapePoint:
		w, h = 0, 0
	case ShapeLine:
		h = 0
	case ShapeCircle:
		h = w
	}
	return Rect{X: l.Position.X - w/2, Y: l.Position.Y - h/2, Width: w, Height: h}
}
