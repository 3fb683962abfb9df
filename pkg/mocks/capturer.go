package mocks

import (
	"context"
	"image"

	"github.com/user/picx/pkg/ports"
)

// PreviewCapturer is a mock implementation of ports.PreviewCapturer.
type PreviewCapturer struct {
	CapturePreviewFunc func(ctx context.Context, html string, width, height int) (image.Image, error)

	// Track calls for assertions
	Calls []PreviewCall
}

// PreviewCall records a call to CapturePreview.
type PreviewCall struct {
	HTML   string
	Width  int
	Height int
}

// NewPreviewCapturer creates a capturer returning blank screenshots of the viewport size.
func NewPreviewCapturer() *PreviewCapturer {
	return &PreviewCapturer{
		CapturePreviewFunc: func(ctx context.Context, html string, width, height int) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, width, height)), nil
		},
	}
}

// CapturePreview implements ports.PreviewCapturer.
func (m *PreviewCapturer) CapturePreview(ctx context.Context, html string, width, height int) (image.Image, error) {
	m.Calls = append(m.Calls, PreviewCall{HTML: html, Width: width, Height: height})
	if m.CapturePreviewFunc != nil {
		return m.CapturePreviewFunc(ctx, html, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

var _ ports.PreviewCapturer = (*PreviewCapturer)(nil)
