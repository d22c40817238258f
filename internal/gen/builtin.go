package gen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"image"
	"image/color"
	"image/png"

	"stageai/api/internal/config"
)

// builtinBackend renders a deterministic placeholder PNG seeded by the
// prompt. It stands in for a real diffusion model in deployments that
// have none reachable.
type builtinBackend struct {
	width  int
	height int
}

func newBuiltinBackend(cfg config.ImageConfig) *builtinBackend {
	return &builtinBackend{width: cfg.Width, height: cfg.Height}
}

func (b *builtinBackend) Render(_ context.Context, prompt string) ([]byte, error) {
	seed := sha256.Sum256([]byte(prompt))

	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			base := seed[(x/32+y/32)%len(seed)]
			img.Set(x, y, color.RGBA{
				R: base ^ uint8(x),
				G: base ^ uint8(y),
				B: seed[(x+y)%len(seed)],
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
