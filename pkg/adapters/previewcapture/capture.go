// Package previewcapture renders live-preview HTML in headless Chrome.
package previewcapture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"

	"github.com/user/picx/pkg/ports"
)

// Capturer captures preview HTML as images using a headless browser.
type Capturer struct {
	execPath string
	logger   ports.Logger
}

// New creates a new preview capturer. An empty execPath lets chromedp find Chrome.
func New(execPath string, logger ports.Logger) *Capturer {
	return &Capturer{
		execPath: execPath,
		logger:   logger.WithComponent("preview"),
	}
}

// Ensure Capturer implements ports.PreviewCapturer
var _ ports.PreviewCapturer = (*Capturer)(nil)

// CapturePreview renders html at the given viewport size and returns the
// screenshot cropped to the document body.
func (c *Capturer) CapturePreview(ctx context.Context, html string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", width, height)
	}

	tmp, err := os.CreateTemp("", "picx-preview-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	c.logger.Debug("Capturing preview at %dx%d", width, height)

	var bodyWidth, bodyHeight float64
	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.Evaluate(`document.body.getBoundingClientRect().width`, &bodyWidth),
		chromedp.Evaluate(`document.body.getBoundingClientRect().height`, &bodyHeight),
		chromedp.CaptureScreenshot(&buf),
	); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	return cropToBody(img, int(bodyWidth), int(bodyHeight)), nil
}

// cropToBody trims the screenshot to the body box when the body is smaller
// than the viewport.
func cropToBody(img image.Image, w, h int) image.Image {
	bounds := img.Bounds()
	if w <= 0 || h <= 0 {
		return img
	}
	if w > bounds.Dx() {
		w = bounds.Dx()
	}
	if h > bounds.Dy() {
		h = bounds.Dy()
	}
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}
	return imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Min.Y+h))
}
