package project

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/picx/pkg/adapters/logger"
	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/interaction"
	"github.com/user/picx/pkg/mocks"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

type fixture struct {
	fs     *mocks.FileSystem
	photo  *editor.Photo
	poster *editor.Poster
	loader *Loader
}

// newFixture decodes every source to an 800x400 raster.
func newFixture() fixture {
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte, format ports.ImageFormat) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, 800, 400)), nil
		},
	}
	fs := mocks.NewFileSystem()
	fs.PutFile("docs/photo.jpg", []byte("jpeg"))
	fs.PutFile("docs/logo.png", []byte("png"))
	sink := mocks.NewDebugSink(false)
	log := logger.NewNoop()
	return fixture{
		fs:     fs,
		photo:  editor.NewPhoto(renderer, fs, nil, sink, log, editor.PhotoOptions{OutputDir: "out"}),
		poster: editor.NewPoster(renderer, fs, sink, log, editor.PosterOptions{OutputDir: "out"}),
		loader: NewLoader(fs, "docs"),
	}
}

func TestParsePhotoRecipe(t *testing.T) {
	r, err := ParsePhotoRecipe([]byte(`
source: photo.jpg
brightness: 120
rotation: 90
filter: sepia
crop: {x: 10, y: 20, width: 100, height: 50}
`))
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != "photo.jpg" || *r.Brightness != 120 || *r.Rotation != 90 || r.Contrast != nil {
		t.Errorf("unexpected recipe %+v", r)
	}
	if r.Crop == nil || *r.Crop != (geom.Rect{X: 10, Y: 20, Width: 100, Height: 50}) {
		t.Errorf("unexpected crop %+v", r.Crop)
	}
}

func TestParsePhotoRecipe_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown filter", "source: a.png\nfilter: neon"},
		{"bad yaml", "source: [a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePhotoRecipe([]byte(tt.doc)); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestParsePosterDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing template", "elements: []"},
		{"unknown kind", "template: template1\nelements:\n  - kind: caption"},
		{"image without source", "template: template1\nelements:\n  - kind: image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePosterDocument([]byte(tt.doc)); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestPhotoRecipe_Validate(t *testing.T) {
	r, err := ParsePhotoRecipe([]byte("brightness: 10"))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected missing source to fail, got %v", err)
	}
	r.Source = "a.png"
	if err := r.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLoader_ApplyPhoto(t *testing.T) {
	f := newFixture()
	brightness, rotation := 250, 90
	r := PhotoRecipe{
		Source:     "photo.jpg",
		Brightness: &brightness,
		Rotation:   &rotation,
		Filter:     "cool",
		Crop:       &geom.Rect{X: 10, Y: 20, Width: 100, Height: 50},
	}

	if err := f.loader.ApplyPhoto(context.Background(), f.photo, r); err != nil {
		t.Fatal(err)
	}

	img, ok := f.photo.Image()
	if !ok {
		t.Fatal("expected an image")
	}
	if img.Natural != (geom.Size{Width: 100, Height: 50}) {
		t.Errorf("expected cropped 100x50, got %+v", img.Natural)
	}

	adj := f.photo.Adjustments()
	if adj.Brightness != 200 {
		t.Errorf("expected brightness clamped to 200, got %d", adj.Brightness)
	}
	if adj.Rotation != 90 || adj.Contrast != 100 || adj.Filter != adjust.FilterCool {
		t.Errorf("unexpected adjustments %+v", adj)
	}
}

func TestLoader_ApplyPhoto_MissingSource(t *testing.T) {
	f := newFixture()
	err := f.loader.ApplyPhoto(context.Background(), f.photo, PhotoRecipe{Source: "missing.jpg"})
	if err == nil {
		t.Fatal("expected error")
	}
	if f.photo.HasImage() {
		t.Error("expected no image")
	}
}

func TestLoader_ApplyPoster(t *testing.T) {
	f := newFixture()
	d, err := ParsePosterDocument([]byte(`
template: template2
width: 640
height: 480
elements:
  - kind: heading
    content: Grand Opening
    position: {x: 40, y: 30}
    style:
      color: "#ff0000"
      font-size: "48"
  - kind: image
    source: logo.png
    position: {x: 400, y: 300}
    size: {width: 120, height: 80}
    cropping: true
`))
	if err != nil {
		t.Fatal(err)
	}

	if err := f.loader.ApplyPoster(f.poster, d); err != nil {
		t.Fatal(err)
	}

	if tpl, ok := f.poster.Template(); !ok || tpl.ID != "template2" {
		t.Errorf("expected template2, got %+v", tpl)
	}
	if w, h := f.poster.ContainerSize(); w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}

	elems := f.poster.Scene().Elements()
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	text := elems[0].(*scene.TextElement)
	if text.Content != "Grand Opening" || text.Style.Color != "#ff0000" || text.Style.FontSize != 48 {
		t.Errorf("unexpected text %+v", text)
	}
	if text.Position != (geom.Point{X: 40, Y: 30}) {
		t.Errorf("unexpected text position %+v", text.Position)
	}
	img := elems[1].(*scene.ImageElement)
	if img.Size != (geom.Size{Width: 120, Height: 80}) || !img.Cropping || img.Source != "logo.png" {
		t.Errorf("unexpected image %+v", img)
	}
}

func TestLoader_ApplyPoster_Errors(t *testing.T) {
	f := newFixture()

	err := f.loader.ApplyPoster(f.poster, PosterDocument{Template: "nope"})
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument for unknown template, got %v", err)
	}

	err = f.loader.ApplyPoster(f.poster, PosterDocument{
		Template: "template1",
		Elements: []ElementDocument{{Kind: "body", Style: map[string]string{"color": "red"}}},
	})
	if !errors.Is(err, scene.ErrInvalidStyle) {
		t.Errorf("expected ErrInvalidStyle, got %v", err)
	}
}

func TestLoader_Resolve(t *testing.T) {
	l := NewLoader(mocks.NewFileSystem(), "base")
	if got := l.Resolve("a.png"); got != "base/a.png" {
		t.Errorf("got %s", got)
	}
	if got := l.Resolve("/abs/a.png"); got != "/abs/a.png" {
		t.Errorf("got %s", got)
	}
}

func TestParseSession_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown mode", "mode: video"},
		{"unknown bounds mode", "bounds:\n  video: {x: 0, y: 0}"},
		{"empty step", "steps:\n  - {}"},
		{"unknown action", "steps:\n  - action: explode"},
		{"unknown event", "steps:\n  - event: {type: hover}"},
		{"both", "steps:\n  - action: export\n    event: {type: up}"},
		{"set without field", "steps:\n  - action: set\n    value: '10'"},
		{"bounds without rect", "steps:\n  - action: bounds\n    mode: photo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSession([]byte(tt.doc)); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestParseSession_DefaultsToPhoto(t *testing.T) {
	s, err := ParseSession([]byte("steps: []"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != "photo" {
		t.Errorf("expected photo mode, got %s", s.Mode)
	}
}

func TestRunner_PhotoSession(t *testing.T) {
	f := newFixture()
	s, err := ParseSession([]byte(`
mode: photo
bounds:
  photo: {x: 100, y: 50, width: 800, height: 400}
photo:
  source: photo.jpg
steps:
  - action: set
    field: contrast
    value: "150"
  - action: filter
    value: grayscale
  - action: start-crop
  - event: {type: down, x: 110, y: 60}
  - event: {type: move, x: 310, y: 160}
  - action: bounds
    mode: photo
    rect: {x: 0, y: 0, width: 800, height: 400}
  - event: {type: move, x: 410, y: 260}
  - event: {type: up}
  - action: apply-crop
  - action: export
`))
	if err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	result, err := runner.Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}

	if result.Steps != 10 || result.Ignored != 0 {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Exported) != 1 || result.Exported[0] != "out/edited-image.png" {
		t.Errorf("unexpected exports %v", result.Exported)
	}
	if _, ok := f.fs.GetFile("out/edited-image.png"); !ok {
		t.Error("expected exported file")
	}

	// Press at (10,10) relative to the first bounds, last move at (410,260)
	// relative to the second.
	img, _ := f.photo.Image()
	if img.Natural != (geom.Size{Width: 400, Height: 250}) {
		t.Errorf("expected 400x250 crop, got %+v", img.Natural)
	}
	adj := f.photo.Adjustments()
	if adj.Contrast != 150 || adj.Filter != adjust.FilterGrayscale {
		t.Errorf("expected adjustments kept after crop, got %+v", adj)
	}
}

func TestRunner_PosterSession(t *testing.T) {
	f := newFixture()
	s, err := ParseSession([]byte(`
mode: poster
bounds:
  poster: {x: 20, y: 30, width: 900, height: 600}
steps:
  - action: select-template
    value: template3
  - action: add-text
    kind: heading
  - action: edit-text
    value: Sale
  - action: style
    field: color
    value: "#00ff00"
  - action: add-image
    source: logo.png
  - action: resize
    target: $last
    size: {width: 50, height: 60}
  - action: toggle-crop
  - event: {type: click, target: text-1}
  - event: {type: down, target: text-1}
  - event: {type: move, x: 220, y: 330}
  - event: {type: up}
  - event: {type: move, x: 500, y: 500}
  - action: export
`))
	if err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	result, err := runner.Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}

	if result.Mode != interaction.ModePoster {
		t.Errorf("expected poster mode, got %s", result.Mode)
	}
	// The final move happens without a drag.
	if result.Ignored != 1 {
		t.Errorf("expected one ignored step, got %+v", result)
	}
	if len(result.Exported) != 1 || result.Exported[0] != "out/poster.png" {
		t.Errorf("unexpected exports %v", result.Exported)
	}

	text, ok := f.poster.Scene().Text("text-1")
	if !ok {
		t.Fatal("expected text-1")
	}
	if text.Content != "Sale" || text.Style.Color != "#00ff00" {
		t.Errorf("unexpected text %+v", text)
	}
	if text.Position != (geom.Point{X: 200, Y: 300}) {
		t.Errorf("expected text at (200,300), got %+v", text.Position)
	}

	img, ok := f.poster.Scene().Image("image-2")
	if !ok {
		t.Fatal("expected image-2")
	}
	if img.Size != (geom.Size{Width: 50, Height: 60}) || !img.Cropping {
		t.Errorf("unexpected image %+v", img)
	}
}

func TestRunner_ExportWithoutTemplate(t *testing.T) {
	f := newFixture()
	s := Session{
		Mode:  "poster",
		Steps: []Step{{Action: ActionAddText}, {Action: ActionExport}},
	}

	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	_, err := runner.Run(context.Background(), s)
	if !errors.Is(err, editor.ErrNoTemplate) {
		t.Errorf("expected ErrNoTemplate, got %v", err)
	}
}

func TestRunner_ModeSwitchDropsCrop(t *testing.T) {
	f := newFixture()
	s := Session{
		Mode:  "photo",
		Photo: &PhotoRecipe{Source: "photo.jpg"},
		Steps: []Step{
			{Action: ActionStartCrop},
			{Event: &interaction.Event{Type: interaction.PointerDown, ClientX: 0, ClientY: 0}},
			{Event: &interaction.Event{Type: interaction.PointerMove, ClientX: 40, ClientY: 40}},
			{Action: ActionMode, Mode: "poster"},
			{Action: ActionMode, Mode: "photo"},
			{Action: ActionApplyCrop},
		},
	}

	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	result, err := runner.Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if result.Ignored != 1 {
		t.Errorf("expected apply-crop to be ignored, got %+v", result)
	}
	img, _ := f.photo.Image()
	if img.Natural != (geom.Size{Width: 800, Height: 400}) {
		t.Errorf("image should be uncropped, got %+v", img.Natural)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	_, err := runner.Run(ctx, Session{Mode: "photo", Steps: []Step{{Action: ActionStartCrop}}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunner_ValidatesHandBuiltSessions(t *testing.T) {
	for name, step := range map[string]Step{
		"bounds without rect": {Action: ActionBounds, Mode: "poster"},
		"resize without size": {Action: ActionResize},
		"empty step":          {},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
			_, err := runner.Run(context.Background(), Session{
				Photo: &PhotoRecipe{Source: "photo.jpg"},
				Steps: []Step{step},
			})
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
			if f.photo.HasImage() {
				t.Error("expected nothing applied before validation failed")
			}
		})
	}
}

func TestRunner_EmptyModeMeansPhoto(t *testing.T) {
	f := newFixture()
	runner := NewRunner(f.photo, f.poster, f.loader, logger.NewNoop())
	result, err := runner.Run(context.Background(), Session{Steps: []Step{{Action: ActionCancelCrop}}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Mode != interaction.ModePhoto || result.Steps != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}
