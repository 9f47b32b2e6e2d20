package asset

import (
	"image"
	"log"

	"github.com/gonewx/backdrop/internal/effect"
)

// BubbleSource serves the procedural bubble for effect.BubbleAssetID and
// delegates every other ID to Next. The bubble is rendered once, on first use.
type BubbleSource struct {
	Next    effect.AssetSource
	Options BubbleOptions

	bubble   image.Image
	rendered bool
}

// NewBubbleSource wraps next with the default bubble options.
func NewBubbleSource(next effect.AssetSource) *BubbleSource {
	return &BubbleSource{Next: next, Options: DefaultBubbleOptions()}
}

// Image implements effect.AssetSource.
func (s *BubbleSource) Image(id string) image.Image {
	if id != effect.BubbleAssetID {
		if s.Next == nil {
			return nil
		}
		return s.Next.Image(id)
	}

	if !s.rendered {
		s.rendered = true
		img, err := RenderBubble(s.Options)
		if err != nil {
			log.Printf("[Asset] 警告：气泡贴图渲染失败: %v", err)
			return nil
		}
		s.bubble = img
	}
	return s.bubble
}
