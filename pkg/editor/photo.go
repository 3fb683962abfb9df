// Package editor holds the two editing sessions: Photo adjusts and crops a
// single loaded image, Poster composes a scene of text and image elements.
// Both export through the compositor and deliver files through a
// ports.FileSystem.
package editor

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"net/mail"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/compositor"
	"github.com/user/picx/pkg/crop"
	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/pipeline"
	"github.com/user/picx/pkg/ports"
)

// DefaultShareMessage is sent when the caller gives no message.
const DefaultShareMessage = "Here is your edited image!"

// LoadedImage is the decoded raster with its natural and on-screen sizes.
// It is replaced, never mutated, on load and on crop.
type LoadedImage struct {
	Raster  image.Image
	Natural geom.Size
	Display geom.Size
}

// PhotoOptions configures a photo session.
type PhotoOptions struct {
	// DisplayMaxWidth and DisplayMaxHeight bound the on-screen image.
	// Crop rectangles are given in that display space.
	DisplayMaxWidth  float64
	DisplayMaxHeight float64
	OutputDir        string
	FileName         string
}

// Photo is the photo adjustment session.
//
// Mutating methods are meant to be called from one goroutine, the event
// loop. BeginLoad/CompleteLoad may complete on another goroutine.
type Photo struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	relay    ports.Relay
	logger   ports.Logger

	exportStage  pipeline.Stage[pipeline.PhotoInput, pipeline.ExportResult]
	cropStage    pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	previewStage pipeline.Stage[pipeline.PreviewInput, image.Image]

	opts PhotoOptions
	seq  Sequence

	mu      sync.Mutex
	image   *LoadedImage
	dataURI string
	adj     adjust.Adjustments
	crop    *crop.Engine
}

// NewPhoto creates a photo session. relay may be nil when sharing is not used.
func NewPhoto(renderer ports.Renderer, fs ports.FileSystem, relay ports.Relay, sink ports.DebugSink, logger ports.Logger, opts PhotoOptions) *Photo {
	if opts.DisplayMaxWidth <= 0 {
		opts.DisplayMaxWidth = 900
	}
	if opts.DisplayMaxHeight <= 0 {
		opts.DisplayMaxHeight = 500
	}
	if opts.FileName == "" {
		opts.FileName = compositor.PhotoFileName
	}
	return &Photo{
		renderer:     renderer,
		fs:           fs,
		relay:        relay,
		logger:       logger.WithComponent("photo"),
		exportStage:  compositor.NewPhotoStage(renderer, sink, logger),
		cropStage:    compositor.NewCropStage(renderer, sink, logger),
		previewStage: compositor.NewPreviewStage(renderer, logger),
		opts:         opts,
		adj:          adjust.Defaults(),
		crop:         crop.New(),
	}
}

// BeginLoad starts a load request. Only the latest request's completion is applied.
func (p *Photo) BeginLoad() Ticket {
	return p.seq.Begin()
}

// CompleteLoad decodes data and, if t is still the latest request, makes it
// the loaded image, resets the adjustments and clears any crop. Returns
// false when the completion was stale and dropped.
func (p *Photo) CompleteLoad(t Ticket, data []byte) (bool, error) {
	if !p.seq.Current(t) {
		p.logger.Debug("Dropping stale image load %d", t)
		return false, nil
	}

	raster, err := p.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return false, fmt.Errorf("decode image: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A newer request may have started while decoding.
	if !p.seq.Current(t) {
		p.logger.Debug("Dropping stale image load %d", t)
		return false, nil
	}

	p.setImage(raster, dataURI(data))
	p.adj.Reset()
	p.crop.Cancel()

	p.logger.Info("Loaded %.0fx%.0f image", p.image.Natural.Width, p.image.Natural.Height)
	return true, nil
}

// Load is BeginLoad followed by CompleteLoad.
func (p *Photo) Load(data []byte) error {
	_, err := p.CompleteLoad(p.BeginLoad(), data)
	return err
}

func (p *Photo) setImage(raster image.Image, uri string) {
	b := raster.Bounds()
	natural := geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	p.image = &LoadedImage{
		Raster:  raster,
		Natural: natural,
		Display: geom.Fit(natural, p.opts.DisplayMaxWidth, p.opts.DisplayMaxHeight),
	}
	p.dataURI = uri
}

// Reset discards the loaded image, the adjustments and any crop.
func (p *Photo) Reset() {
	p.seq.Begin()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = nil
	p.dataURI = ""
	p.adj.Reset()
	p.crop.Cancel()
}

// Image returns the loaded image.
func (p *Photo) Image() (LoadedImage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.image == nil {
		return LoadedImage{}, false
	}
	return *p.image, true
}

// HasImage reports whether an image is loaded.
func (p *Photo) HasImage() bool {
	_, ok := p.Image()
	return ok
}

// SetDisplaySize overrides the on-screen size of the loaded image, as when
// the container is resized. Returns false without an image.
func (p *Photo) SetDisplaySize(size geom.Size) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.image == nil || size.Width <= 0 || size.Height <= 0 {
		return false
	}
	img := *p.image
	img.Display = size
	p.image = &img
	return true
}

// Adjustments returns the current adjustments.
func (p *Photo) Adjustments() adjust.Adjustments {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.adj
}

// SetAdjustment clamps value into the field's range, stores it and returns
// the stored value.
func (p *Photo) SetAdjustment(field adjust.Field, value int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := p.adj.Set(field, value)
	if stored != value {
		p.logger.Debug("Clamped %s from %d to %d", field, value, stored)
	}
	return stored
}

// ApplyFilter selects a named filter; "none" clears it.
func (p *Photo) ApplyFilter(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.adj.ApplyFilter(name)
}

// ResetAdjustments restores the default adjustments.
func (p *Photo) ResetAdjustments() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.adj.Reset()
}

// Descriptor derives the effect descriptor shared by preview and export.
func (p *Photo) Descriptor() effects.Descriptor {
	return p.Adjustments().Descriptor()
}

// CropState returns the crop engine state.
func (p *Photo) CropState() crop.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crop.State()
}

// CropRect returns the current crop rectangle in display coordinates.
func (p *Photo) CropRect() (geom.Rect, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crop.Rect()
}

// StartCrop enters crop selection, discarding any earlier rectangle.
// Returns false without an image.
func (p *Photo) StartCrop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.image == nil {
		p.logger.Debug("Ignoring crop start without an image")
		return false
	}
	p.crop.Begin()
	return true
}

// PressCrop records the drag start point of a crop selection.
func (p *Photo) PressCrop(pt geom.Point) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crop.Press(pt)
}

// UpdateCrop stretches the crop rectangle to pt.
func (p *Photo) UpdateCrop(pt geom.Point) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crop.Update(pt)
}

// EndCrop releases the crop drag.
func (p *Photo) EndCrop() crop.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crop.End()
}

// CancelCrop drops the crop gesture and rectangle.
func (p *Photo) CancelCrop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.crop.Cancel()
}

// ApplyCrop rasterizes the crop rectangle, with the current effects baked
// in, into a new loaded image. Returns false when there is nothing to crop.
// The adjustments are kept.
func (p *Photo) ApplyCrop(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.image == nil {
		p.logger.Debug("Ignoring crop without an image")
		return false, nil
	}
	region, ok := p.crop.Plan(p.image.Natural, p.image.Display)
	if !ok {
		p.logger.Debug("Ignoring crop without a rectangle")
		return false, nil
	}

	p.logger.Debug("Crop scale %.3f, output %dx%d", region.Scale, region.Width, region.Height)

	result, err := p.cropStage.Execute(ctx, pipeline.CropInput{
		Source:  p.image.Raster,
		Region:  region,
		Effects: p.adj.Descriptor(),
	})
	if err != nil {
		return false, fmt.Errorf("crop: %w", err)
	}

	data, err := p.renderer.EncodeImage(result.Image, ports.FormatPNG, 0)
	if err != nil {
		return false, fmt.Errorf("encode crop: %w", err)
	}

	p.setImage(result.Image, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(data))
	p.crop.Finish()

	p.logger.Info("Cropped to %dx%d", region.Width, region.Height)
	return true, nil
}

// Export renders the loaded image at natural resolution with the current
// effects and writes it to the output directory. Returns the written path.
func (p *Photo) Export(ctx context.Context) (string, error) {
	p.mu.Lock()
	img := p.image
	d := p.adj.Descriptor()
	p.mu.Unlock()

	if img == nil {
		return "", ErrNoImage
	}

	result, err := p.exportStage.Execute(ctx, pipeline.PhotoInput{
		Source:   img.Raster,
		Effects:  d,
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

// Share sends the loaded image as a data URI to recipient through the
// relay. The recipient is validated first; an invalid one never reaches
// the relay.
func (p *Photo) Share(ctx context.Context, recipient, message string) error {
	p.mu.Lock()
	uri := p.dataURI
	hasImage := p.image != nil
	p.mu.Unlock()

	if !hasImage {
		return ErrNoImage
	}

	addr, err := validateRecipient(recipient)
	if err != nil {
		return err
	}
	if p.relay == nil {
		return fmt.Errorf("%w: no relay configured", ErrShareFailed)
	}
	if message == "" {
		message = DefaultShareMessage
	}

	err = p.relay.Send(ctx, ports.ShareRequest{
		Recipient:    addr,
		Message:      message,
		ImageDataURI: uri,
	})
	if err != nil {
		p.logger.Error("Failed to share image: %v", err)
		return fmt.Errorf("%w: %v", ErrShareFailed, err)
	}

	p.logger.Info("Shared image with %s", addr)
	return nil
}

func validateRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return "", ErrInvalidRecipient
	}
	addr, err := mail.ParseAddress(recipient)
	if err != nil || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
	return addr.Address, nil
}

func dataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
