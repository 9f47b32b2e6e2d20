package effect

import "math"

// Asset IDs the built-in profiles resolve their particle images from.
const (
	SnowflakeAssetID = "IMAGE_SNOWFLAKE"
	BubbleAssetID    = "IMAGE_BUBBLE"
)

// Profile offsets of the emission line relative to the surface edges.
const (
	snowLineOffsetAbove   = 100.0 // snow line sits this far above the top edge
	bubbleLineOffsetBelow = 50.0  // bubble line sits this far below the bottom edge
)

// Placement computes the emitter layer geometry for a surface.
type Placement func(bounds Rect) LayerConfig

// Profile is the pure mapping from a variant to its cell template and layer
// placement. The returned cell carries ContentsID but no Contents; images are
// resolved by Build.
func Profile(v Variant) (CellConfig, Placement, bool) {
	switch v {
	case Snow:
		return snowCell(), snowPlacement, true
	case Bubble:
		return bubbleCell(), bubblePlacement, true
	}
	return CellConfig{}, nil, false
}

func snowCell() CellConfig {
	return CellConfig{
		Name:          "snow",
		ContentsID:    SnowflakeAssetID,
		Lifetime:      20,
		BirthRate:     20,
		Scale:         0.4,
		ScaleRange:    0.3,
		Velocity:      -50,
		VelocityRange: 50,
		Spin:          0,
		SpinRange:     0.5,
		XAcceleration: 5,
		YAcceleration: 10,
		EmissionRange: math.Pi,
	}
}

func bubbleCell() CellConfig {
	return CellConfig{
		Name:          "bubble",
		ContentsID:    BubbleAssetID,
		Lifetime:      20,
		BirthRate:     12,
		Scale:         0.4,
		ScaleRange:    0.3,
		Velocity:      50,
		VelocityRange: 20,
		Spin:          0.2,
		SpinRange:     0.8,
		XAcceleration: 10,
		YAcceleration: -15,
		EmissionRange: math.Pi,
	}
}

// 雪花：发射线横跨整个宽度，位于顶边上方
func snowPlacement(b Rect) LayerConfig {
	return LayerConfig{
		Position: Point{X: b.X + b.Width/2, Y: b.Y - snowLineOffsetAbove},
		Size:     Size{Width: b.Width},
		Shape:    ShapeLine,
	}
}

// 气泡：发射线横跨整个宽度，位于底边下方
func bubblePlacement(b Rect) LayerConfig {
	return LayerConfig{
		Position: Point{X: b.X + b.Width/2, Y: b.Y + b.Height + bubbleLineOffsetBelow},
		Size:     Size{Width: b.Width},
		Shape:    ShapeLine,
	}
}
