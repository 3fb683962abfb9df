// Package project reads the YAML documents that drive the editors: photo
// recipes, poster documents and recorded sessions.
package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

// ErrInvalidDocument is returned when a document is structurally wrong.
var ErrInvalidDocument = errors.New("invalid document")

// PhotoRecipe describes one photo edit.
type PhotoRecipe struct {
	Source     string     `yaml:"source"`
	Brightness *int       `yaml:"brightness,omitempty"`
	Contrast   *int       `yaml:"contrast,omitempty"`
	Saturation *int       `yaml:"saturation,omitempty"`
	Rotation   *int       `yaml:"rotation,omitempty"`
	Filter     string     `yaml:"filter,omitempty"`
	Display    *geom.Size `yaml:"display,omitempty"`
	// Crop is in display coordinates.
	Crop *geom.Rect `yaml:"crop,omitempty"`
}

// PosterDocument describes a poster.
type PosterDocument struct {
	Template string            `yaml:"template"`
	Width    int               `yaml:"width,omitempty"`
	Height   int               `yaml:"height,omitempty"`
	Elements []ElementDocument `yaml:"elements"`
}

// ElementDocument is one poster element. Kind is heading, subheading, body
// or image.
type ElementDocument struct {
	Kind     string            `yaml:"kind"`
	Content  string            `yaml:"content,omitempty"`
	Position *geom.Point       `yaml:"position,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Source   string            `yaml:"source,omitempty"`
	Size     *geom.Size        `yaml:"size,omitempty"`
	Cropping bool              `yaml:"cropping,omitempty"`
}

// ParsePhotoRecipe decodes a photo recipe. The source may be left empty
// for the caller to fill in; call Validate before applying.
func ParsePhotoRecipe(data []byte) (PhotoRecipe, error) {
	var r PhotoRecipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, err := adjust.ParseFilter(r.Filter); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return r, nil
}

// Validate checks that the recipe names a source and a known filter.
func (r PhotoRecipe) Validate() error {
	if r.Source == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidDocument)
	}
	if _, err := adjust.ParseFilter(r.Filter); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// ParsePosterDocument decodes a poster document.
func ParsePosterDocument(data []byte) (PosterDocument, error) {
	var d PosterDocument
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if d.Template == "" {
		return d, fmt.Errorf("%w: template is required", ErrInvalidDocument)
	}
	for i, el := range d.Elements {
		if el.Kind == "image" {
			if el.Source == "" {
				return d, fmt.Errorf("%w: element %d: image source is required", ErrInvalidDocument, i+1)
			}
			continue
		}
		if _, ok := scene.ParseTextKind(el.Kind); !ok {
			return d, fmt.Errorf("%w: element %d: unknown kind %q", ErrInvalidDocument, i+1, el.Kind)
		}
	}
	return d, nil
}

// Loader resolves document paths against a base directory and reads them
// through a FileSystem.
type Loader struct {
	fs      ports.FileSystem
	baseDir string
}

// NewLoader creates a loader. Relative paths resolve against baseDir.
func NewLoader(fs ports.FileSystem, baseDir string) *Loader {
	return &Loader{fs: fs, baseDir: baseDir}
}

// Resolve makes path absolute relative to the base directory.
func (l *Loader) Resolve(path string) string {
	if filepath.IsAbs(path) || l.baseDir == "" {
		return path
	}
	return filepath.Join(l.baseDir, path)
}

// Read reads a file relative to the base directory.
func (l *Loader) Read(path string) ([]byte, error) {
	data, err := l.fs.ReadFile(l.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ApplyPhoto loads the recipe's source into photo and applies it. The crop
// is applied before the adjustments so the exported colours are not
// adjusted twice.
func (l *Loader) ApplyPhoto(ctx context.Context, photo *editor.Photo, r PhotoRecipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := l.Read(r.Source)
	if err != nil {
		return err
	}
	if err := photo.Load(data); err != nil {
		return err
	}
	if r.Display != nil {
		photo.SetDisplaySize(*r.Display)
	}

	if r.Crop != nil {
		if err := cropTo(ctx, photo, *r.Crop); err != nil {
			return err
		}
	}

	if err := photo.ApplyFilter(r.Filter); err != nil {
		return err
	}
	values := []struct {
		field adjust.Field
		value *int
	}{
		{adjust.FieldBrightness, r.Brightness},
		{adjust.FieldContrast, r.Contrast},
		{adjust.FieldSaturation, r.Saturation},
		{adjust.FieldRotation, r.Rotation},
	}
	for _, v := range values {
		if v.value != nil {
			photo.SetAdjustment(v.field, *v.value)
		}
	}
	return nil
}

func cropTo(ctx context.Context, photo *editor.Photo, rect geom.Rect) error {
	if !photo.StartCrop() {
		return editor.ErrNoImage
	}
	photo.PressCrop(rect.Origin())
	photo.UpdateCrop(geom.Point{X: rect.X + rect.Width, Y: rect.Y + rect.Height})
	photo.EndCrop()
	ok, err := photo.ApplyCrop(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: empty crop %+v", ErrInvalidDocument, rect)
	}
	return nil
}

// ApplyPoster selects the document's template and adds its elements to
// poster in order.
func (l *Loader) ApplyPoster(poster *editor.Poster, d PosterDocument) error {
	if !poster.SelectTemplate(d.Template) {
		return fmt.Errorf("%w: unknown template %q", ErrInvalidDocument, d.Template)
	}
	if d.Width > 0 || d.Height > 0 {
		w, h := poster.ContainerSize()
		if d.Width > 0 {
			w = d.Width
		}
		if d.Height > 0 {
			h = d.Height
		}
		poster.SetContainerSize(w, h)
	}

	for i, el := range d.Elements {
		if err := l.addElement(poster, el); err != nil {
			return fmt.Errorf("element %d: %w", i+1, err)
		}
	}
	return nil
}

func (l *Loader) addElement(poster *editor.Poster, el ElementDocument) error {
	var id string

	if el.Kind == "image" {
		data, err := l.Read(el.Source)
		if err != nil {
			return err
		}
		img, err := poster.AddImage(data, el.Source)
		if err != nil {
			return err
		}
		id = img.ID
		if el.Size != nil {
			if _, err := poster.ResizeImage(id, el.Size.Width, el.Size.Height); err != nil {
				return err
			}
		}
		if el.Cropping {
			poster.ToggleCrop(id)
		}
	} else {
		kind, ok := scene.ParseTextKind(el.Kind)
		if !ok {
			return fmt.Errorf("%w: unknown kind %q", ErrInvalidDocument, el.Kind)
		}
		text := poster.AddText(kind)
		id = text.ID
		if el.Content != "" {
			poster.EditText(id, el.Content)
		}
		if err := applyStyle(poster, id, el.Style); err != nil {
			return err
		}
	}

	if el.Position != nil {
		poster.Scene().MoveTo(id, *el.Position)
	}
	return nil
}

func applyStyle(poster *editor.Poster, id string, style map[string]string) error {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field, err := scene.ParseStyleField(k)
		if err != nil {
			return err
		}
		if _, err := poster.UpdateTextStyle(id, field, style[k]); err != nil {
			return err
		}
	}
	return nil
}
