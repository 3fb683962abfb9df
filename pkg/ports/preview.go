package ports

import (
	"context"
	"image"
)

// PreviewCapturer renders live-preview HTML the way a browser shows it.
type PreviewCapturer interface {
	// CapturePreview renders html in a viewport of width x height CSS pixels
	// and returns a screenshot of the viewport.
	CapturePreview(ctx context.Context, html string, width, height int) (image.Image, error)
}
