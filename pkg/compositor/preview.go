package compositor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
)

var (
	previewBackground = color.RGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	cropFill          = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0x1a}
)

// PreviewStage renders the photo the way the editor shows it: scaled to
// display size, effects applied, with the pending crop rectangle on top.
type PreviewStage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewPreviewStage creates a new preview stage.
func NewPreviewStage(renderer ports.Renderer, logger ports.Logger) *PreviewStage {
	return &PreviewStage{
		renderer: renderer,
		logger:   logger.WithComponent("preview"),
	}
}

// Execute scales the source to display size before applying effects, so
// blur radii are in display pixels as in the live preview.
func (s *PreviewStage) Execute(ctx context.Context, input pipeline.PreviewInput) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Source == nil {
		return nil, fmt.Errorf("preview: no source image")
	}
	w := int(math.Round(input.Display.Width))
	h := int(math.Round(input.Display.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("preview: invalid display size %dx%d", w, h)
	}

	scaled := s.renderer.ResizeImage(input.Source, w, h)

	layer := s.renderer.CreateCanvas(w, h, color.Transparent)
	if deg := input.Effects.Rotation(); deg != 0 {
		layer.DrawImageRotated(scaled, deg)
	} else {
		layer.DrawImage(scaled, 0, 0)
	}
	adjusted := effects.Apply(layer.ToImage(), input.Effects)

	canvas := s.renderer.CreateCanvas(w, h, previewBackground)
	canvas.DrawImage(adjusted, 0, 0)
	if r := input.Crop; r != nil {
		canvas.DrawRect(r.X, r.Y, r.Width, r.Height, cropFill)
		canvas.DrawRectStroke(r.X, r.Y, r.Width, r.Height, highlightColor, 2)
	}

	s.logger.Debug("Rendered preview %dx%d", w, h)
	return canvas.ToImage(), nil
}

var _ pipeline.Stage[pipeline.PreviewInput, image.Image] = (*PreviewStage)(nil)
