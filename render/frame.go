package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/gridgames/snake-game/game/engine"
)

// Options controls frame rendering.
type Options struct {
	// MaxWidth scales the frame down to at most this many pixels wide,
	// keeping the aspect ratio. Zero renders at board resolution.
	MaxWidth int
}

// Board palette.
var (
	colorBackground = [3]float64{0.07, 0.09, 0.11}
	colorGridLine   = [3]float64{0.13, 0.16, 0.19}
	colorBody       = [3]float64{0.22, 0.66, 0.32}
	colorHead       = [3]float64{0.38, 0.85, 0.45}
	colorFood       = [3]float64{0.86, 0.22, 0.20}
	colorGameOver   = [3]float64{0.90, 0.90, 0.90}
)

// Frame draws the current board as an image at native resolution: one pixel
// per board pixel, so cells are config.CellSize squares.
func Frame(state *engine.GameState, config *engine.GameConfig) image.Image {
	dc := gg.NewContext(config.Width, config.Height)

	dc.SetRGB(colorBackground[0], colorBackground[1], colorBackground[2])
	dc.Clear()

	// Grid lines
	dc.SetRGB(colorGridLine[0], colorGridLine[1], colorGridLine[2])
	dc.SetLineWidth(1)
	for x := 0; x <= config.Width; x += config.CellSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(config.Height))
		dc.Stroke()
	}
	for y := 0; y <= config.Height; y += config.CellSize {
		dc.DrawLine(0, float64(y), float64(config.Width), float64(y))
		dc.Stroke()
	}

	cell := float64(config.CellSize)
	inset := cell * 0.08

	// Body, tail first so the head is drawn on top.
	for i, seg := range state.Body {
		if i == len(state.Body)-1 {
			dc.SetRGB(colorHead[0], colorHead[1], colorHead[2])
		} else {
			dc.SetRGB(colorBody[0], colorBody[1], colorBody[2])
		}
		dc.DrawRoundedRectangle(float64(seg.X)+inset, float64(seg.Y)+inset,
			cell-2*inset, cell-2*inset, cell*0.2)
		dc.Fill()
	}

	if state.Food != nil {
		dc.SetRGB(colorFood[0], colorFood[1], colorFood[2])
		dc.DrawCircle(float64(state.Food.X)+cell/2, float64(state.Food.Y)+cell/2, cell*0.35)
		dc.Fill()
	}

	if state.GameOver {
		dc.SetRGB(colorGameOver[0], colorGameOver[1], colorGameOver[2])
		dc.DrawStringAnchored(fmt.Sprintf("GAME OVER - score %d", state.Score()),
			float64(config.Width)/2, float64(config.Height)/2, 0.5, 0.5)
	}

	return dc.Image()
}

// FramePNG renders the board and encodes it as PNG, scaling down when the
// options ask for a narrower frame.
func FramePNG(state *engine.GameState, config *engine.GameConfig, opts Options) ([]byte, error) {
	img := Frame(state, config)

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
