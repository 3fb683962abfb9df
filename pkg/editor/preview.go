package editor

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"image"

	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { margin: 0; width: {{.Width}}px; height: {{.Height}}px; position: relative; background: #f9fafb; overflow: hidden; }
  img { position: absolute; left: 0; top: 0; width: {{.Width}}px; height: {{.Height}}px; filter: {{.Filter}}; transform: {{.Transform}}; }
  .crop { position: absolute; box-sizing: border-box; border: 2px solid #3b82f6; background: rgba(59, 130, 246, 0.1); }
</style>
</head>
<body>
<img src="{{.Source}}" alt="preview">
{{- with .Crop}}
<div class="crop" style="left: {{.X}}px; top: {{.Y}}px; width: {{.Width}}px; height: {{.Height}}px"></div>
{{- end}}
</body>
</html>
`))

type previewData struct {
	Width     float64
	Height    float64
	Filter    template.CSS
	Transform template.CSS
	Source    template.URL
	Crop      *cropBox
}

type cropBox struct {
	X, Y, Width, Height float64
}

// PreviewHTML renders the live preview: the image at display size with the
// effect descriptor as CSS filter and transform, plus the crop rectangle.
func (p *Photo) PreviewHTML() (string, error) {
	p.mu.Lock()
	img := p.image
	uri := p.dataURI
	d := p.adj.Descriptor()
	rect, hasRect := p.crop.Rect()
	p.mu.Unlock()

	if img == nil {
		return "", ErrNoImage
	}

	data := previewData{
		Width:     img.Display.Width,
		Height:    img.Display.Height,
		Filter:    template.CSS(d.CSSFilter()),
		Transform: template.CSS(d.CSSTransform()),
		Source:    template.URL(uri),
	}
	if hasRect {
		data.Crop = &cropBox{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

// Snapshot renders the preview without a browser: the image scaled to
// display size with the effects applied and the crop rectangle, if any.
func (p *Photo) Snapshot(ctx context.Context) (image.Image, error) {
	p.mu.Lock()
	img := p.image
	input := pipeline.PreviewInput{Effects: p.adj.Descriptor()}
	if rect, ok := p.crop.Rect(); ok {
		input.Crop = &rect
	}
	p.mu.Unlock()

	if img == nil {
		return nil, ErrNoImage
	}
	input.Source = img.Raster
	input.Display = img.Display
	return p.previewStage.Execute(ctx, input)
}

// CapturePreview renders the preview HTML in a browser and returns the screenshot.
func (p *Photo) CapturePreview(ctx context.Context, capturer ports.PreviewCapturer) (image.Image, error) {
	html, err := p.PreviewHTML()
	if err != nil {
		return nil, err
	}
	img, _ := p.Image()
	return capturer.CapturePreview(ctx, html, int(img.Display.Width+0.5), int(img.Display.Height+0.5))
}
