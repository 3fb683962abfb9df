package previewcapture

import (
	"context"
	"image"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/user/picx/pkg/adapters/logger"
)

func TestCropToBody(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))

	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"smaller body", 60, 40, 60, 40},
		{"larger body is clamped", 200, 200, 100, 80},
		{"unknown body", 0, 0, 100, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cropToBody(img, tt.w, tt.h).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, got.Dx(), got.Dy())
			}
		})
	}
}

func TestCapturePreview_InvalidViewport(t *testing.T) {
	c := New("", logger.NewNoop())
	if _, err := c.CapturePreview(context.Background(), "<html></html>", 0, 10); err == nil {
		t.Error("expected error for empty viewport")
	}
}

func TestCapturePreview_Chrome(t *testing.T) {
	if os.Getenv("PICX_E2E") == "" {
		t.Skip("set PICX_E2E=1 to run headless Chrome tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	html := `<html><body style="margin:0;width:120px;height:60px;background:red"></body></html>`
	img, err := New(os.Getenv("PICX_CHROME"), logger.NewNoop()).CapturePreview(ctx, html, 300, 200)
	if err != nil {
		if strings.Contains(err.Error(), "executable file not found") {
			t.Skip("chrome not installed")
		}
		t.Fatalf("CapturePreview failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("expected body-sized screenshot 120x60, got %dx%d", b.Dx(), b.Dy())
	}
}
