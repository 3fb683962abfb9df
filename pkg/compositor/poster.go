package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/user/picx/pkg/config"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

// highlightColor is the editor blue used for selection and crop outlines.
var highlightColor = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}

// PosterStage flattens a scene onto a white canvas.
type PosterStage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewPosterStage creates a new poster stage.
func NewPosterStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *PosterStage {
	return &PosterStage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("poster-export"),
	}
}

// Execute draws the elements in ascending position.y order. Text is drawn
// left-anchored on its baseline; images are scaled into their box and are
// never clipped, whatever their cropping flag says.
func (s *PosterStage) Execute(ctx context.Context, input pipeline.PosterInput) (pipeline.ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ExportResult{}, err
	}
	if input.Width <= 0 || input.Height <= 0 {
		return pipeline.ExportResult{}, fmt.Errorf("poster: invalid canvas %dx%d", input.Width, input.Height)
	}

	name := input.FileName
	if name == "" {
		name = PosterFileName
	}

	order := scene.SortForDrawing(append([]scene.Element(nil), input.Elements...))
	s.logger.Debug("Drawing %d elements on %dx%d", len(order), input.Width, input.Height)

	canvas := s.renderer.CreateCanvas(input.Width, input.Height, color.White)
	drawn := make([]pipeline.DrawnElement, 0, len(order))

	for _, el := range order {
		pos := el.Place().Position
		switch e := el.(type) {
		case *scene.TextElement:
			style := textStyle(e.Style)
			canvas.DrawText(e.Content, pos.X, pos.Y, style)
			if input.Overlays && input.Selection.Selected() == e.ID {
				w, h := canvas.MeasureText(e.Content, style)
				canvas.DrawRectStroke(pos.X-2, pos.Y-h-2, w+4, h+4, highlightColor, 2)
			}
			drawn = append(drawn, pipeline.DrawnElement{ID: e.ID, Kind: e.Kind().String(), Position: pos, Content: e.Content})

		case *scene.ImageElement:
			if e.Raster != nil {
				canvas.DrawImageScaled(e.Raster, pos.X, pos.Y, e.Size.Width, e.Size.Height)
			}
			if input.Overlays {
				if e.Cropping {
					canvas.DrawRectStroke(pos.X, pos.Y, e.Size.Width, e.Size.Height, highlightColor, 2)
				}
				if input.Selection.Selected() == e.ID {
					canvas.DrawRectStroke(pos.X-2, pos.Y-2, e.Size.Width+4, e.Size.Height+4, highlightColor, 2)
				}
			}
			drawn = append(drawn, pipeline.DrawnElement{ID: e.ID, Kind: e.Kind().String(), Position: pos, Size: e.Size})
		}
	}

	img := canvas.ToImage()
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.ExportResult{}, fmt.Errorf("encode %s: %w", name, err)
	}

	if s.sink.Enabled() {
		if js, err := json.MarshalIndent(drawn, "", "  "); err == nil {
			s.sink.SaveSceneJSON(js)
		}
		s.sink.SaveExport(name, img)
	}

	return pipeline.ExportResult{FileName: name, Image: img, Data: data}, nil
}

// textStyle maps an element style onto the canvas text style.
// Alignment is not applied: x is always the left edge.
func textStyle(st scene.TextStyle) ports.TextStyle {
	return ports.TextStyle{
		FontSize:   st.FontSize,
		FontFamily: st.FontFamily,
		Bold:       isBold(st.FontWeight),
		Color:      config.ParseColor(st.Color),
		Align:      ports.AlignLeft,
	}
}

func isBold(weight string) bool {
	w := strings.ToLower(strings.TrimSpace(weight))
	if w == "bold" || w == "bolder" {
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

var _ pipeline.Stage[pipeline.PosterInput, pipeline.ExportResult] = (*PosterStage)(nil)
