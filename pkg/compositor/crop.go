package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
)

// CropStage cuts a planned region out of the loaded image.
type CropStage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	count    int
}

// NewCropStage creates a new crop stage.
func NewCropStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *CropStage {
	return &CropStage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("crop"),
	}
}

// Execute draws the source region scaled into a canvas of the planned output
// size and bakes in the recolouring ops of the descriptor.
func (s *CropStage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.CropResult{}, err
	}
	if input.Source == nil {
		return pipeline.CropResult{}, fmt.Errorf("crop: no source image")
	}
	r := input.Region
	if r.Width <= 0 || r.Height <= 0 {
		return pipeline.CropResult{}, fmt.Errorf("crop: empty region %dx%d", r.Width, r.Height)
	}

	s.logger.Debug("Cropping source (%.1f, %.1f) %.1fx%.1f into %dx%d",
		r.Source.X, r.Source.Y, r.Source.Width, r.Source.Height, r.Width, r.Height)

	canvas := s.renderer.CreateCanvas(r.Width, r.Height, color.Transparent)
	canvas.DrawImageRegion(input.Source, r.Source, float64(r.Width), float64(r.Height))

	img := image.Image(effects.Apply(canvas.ToImage(), input.Effects))

	s.count++
	if s.sink.Enabled() {
		if js, err := json.MarshalIndent(r, "", "  "); err == nil {
			s.sink.SaveCropJSON(js)
		}
		s.sink.SaveCrop(s.count, img)
	}

	return pipeline.CropResult{
		Image: img,
		Size:  geom.Size{Width: float64(r.Width), Height: float64(r.Height)},
	}, nil
}

var _ pipeline.Stage[pipeline.CropInput, pipeline.CropResult] = (*CropStage)(nil)
