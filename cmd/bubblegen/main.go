// Package main renders the procedural bubble particle to a PNG file, for
// inspecting the asset outside the game loop.
//
// Usage:
//
//	go run ./cmd/bubblegen [flags]
//
// Flags:
//
//	--out <path>       Output PNG path (default bubble.png)
//	--radius <r>       Bubble radius in pixels (default 40)
//	--line-width <w>   Inner arc stroke width, the outer ring is doubled (default 1)
//	--verbose          Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/gonewx/backdrop/internal/asset"
)

var (
	outFlag       = flag.String("out", "bubble.png", "Output PNG path")
	radiusFlag    = flag.Float64("radius", asset.DefaultBubbleRadius, "Bubble radius in pixels")
	lineWidthFlag = flag.Float64("line-width", 1, "Inner arc stroke width in pixels")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(*outFlag, *radiusFlag, *lineWidthFlag); err != nil {
		fmt.Fprintf(os.Stderr, "bubblegen: %v\n", err)
		os.Exit(1)
	}
}

func run(out string, radius, lineWidth float64) error {
	opts := asset.DefaultBubbleOptions()
	opts.Radius = radius
	opts.LineWidth = lineWidth

	img, err := asset.RenderBubble(opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	log.Printf("[BubbleGen] 已写入 %s (%dx%d)", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
