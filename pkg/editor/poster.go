package editor

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/picx/pkg/compositor"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

// PosterOptions configures a poster session.
type PosterOptions struct {
	// Width and Height are the container size, which is also the export size.
	Width     int
	Height    int
	OutputDir string
	FileName  string
}

// Poster is the poster composition session. Not safe for concurrent use.
type Poster struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
	stage    pipeline.Stage[pipeline.PosterInput, pipeline.ExportResult]

	opts     PosterOptions
	scene    *scene.Scene
	template string
}

// NewPoster creates a poster session with an empty scene and no template.
func NewPoster(renderer ports.Renderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, opts PosterOptions) *Poster {
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FileName == "" {
		opts.FileName = compositor.PosterFileName
	}
	return &Poster{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("poster"),
		stage:    compositor.NewPosterStage(renderer, sink, logger),
		opts:     opts,
		scene:    scene.New(),
	}
}

// Scene returns the scene being edited.
func (p *Poster) Scene() *scene.Scene {
	return p.scene
}

// Templates lists the template catalog.
func (p *Poster) Templates() []scene.Template {
	return scene.Templates()
}

// SelectTemplate records the chosen template. Unknown ids are ignored.
func (p *Poster) SelectTemplate(id string) bool {
	if _, ok := scene.FindTemplate(id); !ok {
		p.logger.Debug("Ignoring unknown template %s", id)
		return false
	}
	p.template = id
	return true
}

// Template returns the selected template.
func (p *Poster) Template() (scene.Template, bool) {
	if p.template == "" {
		return scene.Template{}, false
	}
	return scene.FindTemplate(p.template)
}

// ContainerSize returns the container size in pixels.
func (p *Poster) ContainerSize() (int, int) {
	return p.opts.Width, p.opts.Height
}

// SetContainerSize records a resized container. Non-positive sizes are ignored.
func (p *Poster) SetContainerSize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	p.opts.Width, p.opts.Height = width, height
	return true
}

// AddText adds a text element of kind and selects it.
func (p *Poster) AddText(kind scene.TextKind) *scene.TextElement {
	el := p.scene.AddText(kind)
	p.logger.Debug("Added %s %s", kind, el.ID)
	return el
}

// AddImage decodes data and adds it as an image element.
func (p *Poster) AddImage(data []byte, source string) (*scene.ImageElement, error) {
	raster, err := p.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return p.AddImageRaster(raster, source), nil
}

// AddImageRaster adds an already decoded raster as an image element.
func (p *Poster) AddImageRaster(raster image.Image, source string) *scene.ImageElement {
	el := p.scene.AddImage(raster, source)
	p.logger.Debug("Added image %s", el.ID)
	return el
}

// Select selects the element with id.
func (p *Poster) Select(id string) bool {
	return p.scene.Select(id)
}

// BeginDrag starts dragging id, which must be selected.
func (p *Poster) BeginDrag(id string) bool {
	if !p.scene.BeginDrag(id) {
		p.logger.Debug("Ignoring drag of unselected element %s", id)
		return false
	}
	return true
}

// UpdateDrag moves the dragged element to pt, in container coordinates.
func (p *Poster) UpdateDrag(pt geom.Point) bool {
	return p.scene.UpdateDrag(pt)
}

// EndDrag ends the drag.
func (p *Poster) EndDrag() bool {
	return p.scene.EndDrag()
}

// EditText replaces the content of a text element.
func (p *Poster) EditText(id, content string) bool {
	return p.scene.EditText(id, content)
}

// UpdateTextStyle replaces one style field of a text element.
func (p *Poster) UpdateTextStyle(id string, field scene.StyleField, value string) (bool, error) {
	return p.scene.UpdateTextStyle(id, field, value)
}

// ResizeImage replaces the size of an image element.
func (p *Poster) ResizeImage(id string, width, height float64) (bool, error) {
	return p.scene.ResizeImage(id, width, height)
}

// ToggleCrop flips the crop indicator of an image element.
func (p *Poster) ToggleCrop(id string) bool {
	return p.scene.ToggleCrop(id)
}

// Export flattens the scene at container size and writes it to the output
// directory. Returns the written path.
func (p *Poster) Export(ctx context.Context) (string, error) {
	if p.template == "" {
		return "", ErrNoTemplate
	}

	result, err := p.stage.Execute(ctx, pipeline.PosterInput{
		Width:    p.opts.Width,
		Height:   p.opts.Height,
		Elements: p.scene.Elements(),
		FileName: p.opts.FileName,
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(p.opts.OutputDir, result.FileName)
	if err := p.fs.WriteFile(path, result.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	p.logger.Info("Saved %s", path)
	return path, nil
}

// Snapshot renders the scene as the editor shows it, with the selection
// ring and crop indicators.
func (p *Poster) Snapshot(ctx context.Context) (image.Image, error) {
	result, err := p.stage.Execute(ctx, pipeline.PosterInput{
		Width:     p.opts.Width,
		Height:    p.opts.Height,
		Elements:  p.scene.Elements(),
		FileName:  "snapshot.png",
		Overlays:  true,
		Selection: p.scene.Selection(),
	})
	if err != nil {
		return nil, err
	}
	return result.Image, nil
}
