package editor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/crop"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/mocks"
	"github.com/user/picx/pkg/ports"
)

func TestPhoto_LoadFitsDisplay(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if err := f.photo.Load([]byte{180, 100}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	img, ok := f.photo.Image()
	if !ok {
		t.Fatal("expected an image")
	}
	if img.Natural != (geom.Size{Width: 1800, Height: 1000}) {
		t.Errorf("unexpected natural size %+v", img.Natural)
	}
	if img.Display != (geom.Size{Width: 900, Height: 500}) {
		t.Errorf("unexpected display size %+v", img.Display)
	}
}

func TestPhoto_LoadResetsState(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	f.photo.Load([]byte{40, 30})

	f.photo.SetAdjustment(adjust.FieldBrightness, 150)
	f.photo.SetAdjustment(adjust.FieldRotation, 90)
	if err := f.photo.ApplyFilter("sepia"); err != nil {
		t.Fatal(err)
	}
	f.photo.StartCrop()
	f.photo.PressCrop(geom.Point{X: 1, Y: 1})
	f.photo.UpdateCrop(geom.Point{X: 20, Y: 20})
	if f.photo.EndCrop() != crop.Pending {
		t.Fatal("expected pending crop")
	}

	f.photo.Load([]byte{50, 50})

	if got := f.photo.Adjustments(); got != adjust.Defaults() {
		t.Errorf("expected default adjustments, got %+v", got)
	}
	if f.photo.CropState() != crop.Idle {
		t.Errorf("expected idle crop, got %s", f.photo.CropState())
	}
	if _, ok := f.photo.CropRect(); ok {
		t.Error("expected pending rectangle to be cleared")
	}
}

func TestPhoto_StaleLoadDropped(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	older := f.photo.BeginLoad()
	newer := f.photo.BeginLoad()

	applied, err := f.photo.CompleteLoad(newer, []byte{20, 10})
	if err != nil || !applied {
		t.Fatalf("expected newer load to apply, got %v %v", applied, err)
	}

	applied, err = f.photo.CompleteLoad(older, []byte{90, 90})
	if err != nil || applied {
		t.Fatalf("expected stale load to be dropped, got %v %v", applied, err)
	}

	img, _ := f.photo.Image()
	if img.Natural.Width != 200 {
		t.Errorf("stale completion replaced the image: %+v", img.Natural)
	}
	if !f.log.Contains(ports.LevelDebug, "stale") || f.log.Contains(ports.LevelWarn, "stale") {
		t.Error("expected stale load to be logged at debug level")
	}
}

func TestPhoto_DecodeErrorKeepsImage(t *testing.T) {
	calls := 0
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte, format ports.ImageFormat) (image.Image, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("unknown format")
			}
			return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
		},
	}
	f := newPhotoFixture(renderer)
	f.photo.Load([]byte("ok"))

	if err := f.photo.Load([]byte("garbage")); err == nil {
		t.Fatal("expected decode error")
	}
	if !f.photo.HasImage() {
		t.Error("expected previous image to stay loaded")
	}
}

func TestPhoto_SetAdjustmentClamps(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if got := f.photo.SetAdjustment(adjust.FieldContrast, 500); got != 200 {
		t.Errorf("expected clamp to 200, got %d", got)
	}
	if got := f.photo.SetAdjustment(adjust.FieldRotation, -10); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestPhoto_CropWithoutImage(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if f.photo.StartCrop() {
		t.Error("expected crop start to be refused without an image")
	}
	applied, err := f.photo.ApplyCrop(context.Background())
	if err != nil || applied {
		t.Errorf("expected no-op, got %v %v", applied, err)
	}
}

func TestPhoto_ApplyCrop(t *testing.T) {
	f := newPhotoFixture(realRenderer())
	if err := f.photo.Load(pngBytes(t, 1800, 1000, color.NRGBA{R: 200, G: 100, B: 50, A: 255})); err != nil {
		t.Fatal(err)
	}
	f.photo.SetAdjustment(adjust.FieldSaturation, 0)

	// Drag right-to-left, bottom-to-top.
	f.photo.StartCrop()
	f.photo.PressCrop(geom.Point{X: 300.4, Y: 150})
	f.photo.UpdateCrop(geom.Point{X: 100, Y: 50})
	f.photo.EndCrop()

	applied, err := f.photo.ApplyCrop(context.Background())
	if err != nil || !applied {
		t.Fatalf("expected crop to apply, got %v %v", applied, err)
	}

	img, _ := f.photo.Image()
	// scale = 1800/900 = 2, 200.4 x 100 display px -> round(400.8) x 200
	if img.Natural != (geom.Size{Width: 401, Height: 200}) {
		t.Errorf("unexpected natural size after crop %+v", img.Natural)
	}
	if f.photo.CropState() != crop.Idle {
		t.Error("expected crop engine to be idle")
	}
	if _, ok := f.photo.CropRect(); ok {
		t.Error("expected rectangle to be cleared")
	}
	if f.photo.Adjustments().Saturation != 0 {
		t.Error("expected adjustments to survive the crop")
	}

	// Saturation 0 was baked in.
	r, g, b, _ := img.Raster.At(200, 100).RGBA()
	if r != g || g != b {
		t.Errorf("expected grey pixel, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestPhoto_ApplyCropWithoutRect(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	f.photo.Load([]byte{10, 10})
	f.photo.StartCrop()

	applied, err := f.photo.ApplyCrop(context.Background())
	if err != nil || applied {
		t.Errorf("expected no-op, got %v %v", applied, err)
	}
}

func TestPhoto_ExportWithoutImage(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if _, err := f.photo.Export(context.Background()); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
	if len(f.fs.GetAllFiles()) != 0 {
		t.Error("expected nothing written")
	}
}

func TestPhoto_ExportScenario(t *testing.T) {
	renderer := realRenderer()
	f := newPhotoFixture(renderer)
	if err := f.photo.Load(pngBytes(t, 1200, 800, color.NRGBA{R: 100, G: 100, B: 100, A: 255})); err != nil {
		t.Fatal(err)
	}

	img, _ := f.photo.Image()
	if img.Display.Width != 750 {
		t.Fatalf("expected a scaled-down display, got %+v", img.Display)
	}

	f.photo.SetAdjustment(adjust.FieldBrightness, 150)
	if err := f.photo.ApplyFilter("sepia"); err != nil {
		t.Fatal(err)
	}

	path, err := f.photo.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != "out/edited-image.png" {
		t.Errorf("unexpected path %s", path)
	}

	data, ok := f.fs.GetFile(path)
	if !ok {
		t.Fatal("expected file to be written")
	}
	out, err := renderer.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 1200 || b.Dy() != 800 {
		t.Errorf("expected natural resolution 1200x800, got %dx%d", b.Dx(), b.Dy())
	}

	// brightness first: 100 -> 150, then full sepia of grey 150.
	r, g, b, _ := out.At(600, 400).RGBA()
	if !(r > g && g > b) {
		t.Errorf("expected a sepia tone, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestPhoto_Share(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	data := pngBytes(t, 2, 2, color.White)
	f.photo.Load(data)

	if err := f.photo.Share(context.Background(), " Friend <friend@example.com> ", ""); err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	if len(f.relay.Calls) != 1 {
		t.Fatalf("expected one relay call, got %d", len(f.relay.Calls))
	}
	req := f.relay.Calls[0]
	if req.Recipient != "friend@example.com" {
		t.Errorf("unexpected recipient %q", req.Recipient)
	}
	if req.Message != DefaultShareMessage {
		t.Errorf("unexpected message %q", req.Message)
	}
	if !strings.HasPrefix(req.ImageDataURI, "data:image/png;base64,") {
		t.Errorf("unexpected data URI prefix %q", req.ImageDataURI[:30])
	}
}

func TestPhoto_ShareInvalidRecipient(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	f.photo.Load([]byte{1, 1})

	for _, recipient := range []string{"", "   ", "not-an-email", "user@localhost"} {
		err := f.photo.Share(context.Background(), recipient, "hi")
		if !errors.Is(err, ErrInvalidRecipient) {
			t.Errorf("Share(%q): expected ErrInvalidRecipient, got %v", recipient, err)
		}
	}
	if len(f.relay.Calls) != 0 {
		t.Errorf("relay must not be called, got %d calls", len(f.relay.Calls))
	}
}

func TestPhoto_ShareWithoutImage(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if err := f.photo.Share(context.Background(), "a@b.co", ""); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestPhoto_ShareFailure(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	f.photo.Load([]byte{1, 1})
	f.relay.SendFunc = func(ctx context.Context, req ports.ShareRequest) error {
		return errors.New("503 service unavailable")
	}

	err := f.photo.Share(context.Background(), "a@b.co", "hi")
	if !errors.Is(err, ErrShareFailed) {
		t.Errorf("expected ErrShareFailed, got %v", err)
	}
	if !f.log.Contains(ports.LevelError, "503") {
		t.Error("expected failure to be logged at error level")
	}
}

func TestPhoto_SharesCroppedImage(t *testing.T) {
	f := newPhotoFixture(realRenderer())
	f.photo.Load(pngBytes(t, 100, 100, color.White))
	before := f.photo.dataURI

	f.photo.StartCrop()
	f.photo.PressCrop(geom.Point{X: 0, Y: 0})
	f.photo.UpdateCrop(geom.Point{X: 10, Y: 10})
	f.photo.EndCrop()
	f.photo.ApplyCrop(context.Background())

	f.photo.Share(context.Background(), "a@b.co", "")
	if len(f.relay.Calls) != 1 || f.relay.Calls[0].ImageDataURI == before {
		t.Error("expected the cropped image to be shared")
	}
}

func TestPhoto_PreviewHTML(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())

	if _, err := f.photo.PreviewHTML(); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}

	f.photo.Load([]byte{180, 100})
	f.photo.SetAdjustment(adjust.FieldBrightness, 150)
	f.photo.SetAdjustment(adjust.FieldRotation, 45)
	f.photo.ApplyFilter("sepia")
	f.photo.StartCrop()
	f.photo.PressCrop(geom.Point{X: 10, Y: 20})
	f.photo.UpdateCrop(geom.Point{X: 110, Y: 70})

	html, err := f.photo.PreviewHTML()
	if err != nil {
		t.Fatalf("PreviewHTML failed: %v", err)
	}

	for _, want := range []string{
		"filter: brightness(150%) contrast(100%) saturate(100%) sepia(100%)",
		"transform: rotate(45deg)",
		"left: 10px; top: 20px; width: 100px; height: 50px",
		`src="data:`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected preview to contain %q\n%s", want, html)
		}
	}
}

func TestPhoto_CapturePreview(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	f.photo.Load([]byte{180, 100})
	capturer := mocks.NewPreviewCapturer()

	img, err := f.photo.CapturePreview(context.Background(), capturer)
	if err != nil {
		t.Fatalf("CapturePreview failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 500 {
		t.Errorf("expected display-sized capture, got %dx%d", b.Dx(), b.Dy())
	}
	if len(capturer.Calls) != 1 || !strings.Contains(capturer.Calls[0].HTML, "<img") {
		t.Error("expected preview HTML to be captured")
	}
}

func TestPhoto_Reset(t *testing.T) {
	f := newPhotoFixture(sizedRenderer())
	pending := f.photo.BeginLoad()
	f.photo.Reset()

	if applied, _ := f.photo.CompleteLoad(pending, []byte{1, 1}); applied {
		t.Error("expected loads started before reset to be dropped")
	}
	if f.photo.HasImage() {
		t.Error("expected no image after reset")
	}
}

func TestPhoto_Snapshot(t *testing.T) {
	renderer := sizedRenderer()
	f := newPhotoFixture(renderer)

	if _, err := f.photo.Snapshot(context.Background()); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}

	// 1800x1000 shown at 900x500.
	f.photo.Load([]byte{180, 100})
	f.photo.StartCrop()
	f.photo.PressCrop(geom.Point{X: 10, Y: 20})
	f.photo.UpdateCrop(geom.Point{X: 110, Y: 70})

	img, err := f.photo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 500 {
		t.Errorf("expected display-sized snapshot, got %dx%d", b.Dx(), b.Dy())
	}

	canvas := renderer.LastCanvas()
	var fill *mocks.DrawOp
	for i, op := range canvas.Ops {
		if op.Name == "rect" {
			fill = &canvas.Ops[i]
		}
	}
	if fill == nil || fill.X != 10 || fill.Y != 20 || fill.W != 100 || fill.H != 50 {
		t.Errorf("expected the pending crop rectangle in the snapshot, got %+v", canvas.Ops)
	}
	if f.photo.CropState() != crop.Selecting {
		t.Error("snapshot must not change the crop state")
	}
}
