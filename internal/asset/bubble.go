// Package asset renders the procedural particle images used by the effects.
//
// Images are drawn with the gogpu/gg software rasterizer, so the same options
// always produce the same pixels.
package asset

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// DefaultBubbleRadius is the radius of the stock bubble image (80x80 raster).
const DefaultBubbleRadius = 40

// Highlight arcs drawn inside the outer ring, as fractions of the radius.
// Both run from π/2 to π, the lower-left quadrant with y pointing down.
const (
	highlightOuterRatio = 0.75
	highlightInnerRatio = 0.7
)

// BubbleOptions configures RenderBubble.
type BubbleOptions struct {
	Radius    float64
	LineWidth float64 // inner arcs; the outer ring is twice as wide
	Stroke    gg.RGBA // outer ring and highlight arcs
	Fill      gg.RGBA // ring interior
}

// DefaultBubbleOptions returns the translucent light-gray bubble (gray 0.75):
// stroke alpha 0.75, fill alpha 0.15.
func DefaultBubbleOptions() BubbleOptions {
	return BubbleOptions{
		Radius:    DefaultBubbleRadius,
		LineWidth: 1,
		Stroke:    gg.RGBA{R: 0.75, G: 0.75, B: 0.75, A: 0.75},
		Fill:      gg.RGBA{R: 0.75, G: 0.75, B: 0.75, A: 0.15},
	}
}

// RenderBubble draws a ringed bubble on a transparent square raster of side
// 2*Radius: a full outer ring, stroked and lightly filled, and two quarter
// arcs at 0.75r and 0.7r in the lower-left quadrant suggesting highlight and
// refraction.
func RenderBubble(opts BubbleOptions) (*image.RGBA, error) {
	if opts.Radius <= 0 || math.IsNaN(opts.Radius) || math.IsInf(opts.Radius, 0) {
		return nil, fmt.Errorf("asset: invalid bubble radius %v", opts.Radius)
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	side := int(math.Ceil(opts.Radius * 2))
	dc := gg.NewContext(side, side)
	defer dc.Close()

	c := opts.Radius
	ringWidth := opts.LineWidth * 2
	// 外圈笔画宽度的一半留在画布内
	r := opts.Radius - ringWidth/2

	dc.SetLineWidth(opts.LineWidth)
	dc.SetRGBA(opts.Stroke.R, opts.Stroke.G, opts.Stroke.B, opts.Stroke.A)

	// 左下方两道四分之一弧：高光与折射
	dc.DrawArc(c, c, r*highlightOuterRatio, math.Pi/2, math.Pi)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("asset: stroke highlight arc: %w", err)
	}

	dc.DrawArc(c, c, r*highlightInnerRatio, math.Pi/2, math.Pi)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("asset: stroke refraction arc: %w", err)
	}

	// 外圈：先填充再描边
	dc.DrawCircle(c, c, r)
	dc.SetRGBA(opts.Fill.R, opts.Fill.G, opts.Fill.B, opts.Fill.A)
	if err := dc.FillPreserve(); err != nil {
		return nil, fmt.Errorf("asset: fill ring: %w", err)
	}
	dc.SetRGBA(opts.Stroke.R, opts.Stroke.G, opts.Stroke.B, opts.Stroke.A)
	dc.SetLineWidth(ringWidth)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("asset: stroke ring: %w", err)
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("asset: flush: %w", err)
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("asset: unexpected image type %T", dc.Image())
	}
	return img, nil
}
