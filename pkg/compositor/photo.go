// Package compositor rasterizes editor state into images: the adjusted
// photo export, the cropped photo and the flattened poster.
package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
)

// Default export file names.
const (
	PhotoFileName  = "edited-image.png"
	PosterFileName = "poster.png"
)

// PhotoStage renders the loaded image at natural resolution with the
// effect descriptor baked in.
type PhotoStage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewPhotoStage creates a new photo export stage.
func NewPhotoStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *PhotoStage {
	return &PhotoStage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("photo-export"),
	}
}

// Execute draws the source once, rotated about the centre when the
// descriptor rotates, applies the recolouring ops and encodes PNG.
func (s *PhotoStage) Execute(ctx context.Context, input pipeline.PhotoInput) (pipeline.ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ExportResult{}, err
	}
	if input.Source == nil {
		return pipeline.ExportResult{}, fmt.Errorf("photo export: no source image")
	}

	name := input.FileName
	if name == "" {
		name = PhotoFileName
	}

	bounds := input.Source.Bounds()
	s.logger.Debug("Rendering %dx%d with %s", bounds.Dx(), bounds.Dy(), input.Effects)

	canvas := s.renderer.CreateCanvas(bounds.Dx(), bounds.Dy(), color.Transparent)
	if deg := input.Effects.Rotation(); deg != 0 {
		canvas.DrawImageRotated(input.Source, deg)
	} else {
		canvas.DrawImage(input.Source, 0, 0)
	}

	img := image.Image(effects.Apply(canvas.ToImage(), input.Effects))

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.ExportResult{}, fmt.Errorf("encode %s: %w", name, err)
	}

	if s.sink.Enabled() {
		if js, err := descriptorJSON(input.Effects); err == nil {
			s.sink.SaveDescriptorJSON(js)
		}
		s.sink.SaveExport(name, img)
	}

	return pipeline.ExportResult{FileName: name, Image: img, Data: data}, nil
}

func descriptorJSON(d effects.Descriptor) ([]byte, error) {
	return json.MarshalIndent(struct {
		Filter    string       `json:"filter"`
		Transform string       `json:"transform"`
		Ops       []effects.Op `json:"ops"`
	}{d.CSSFilter(), d.CSSTransform(), d.Ops}, "", "  ")
}

var _ pipeline.Stage[pipeline.PhotoInput, pipeline.ExportResult] = (*PhotoStage)(nil)
