package pipeline

import (
	"image"

	"github.com/user/picx/pkg/crop"
	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/scene"
)

// =============================================================================
// Photo Export Types
// =============================================================================

// PhotoInput is the loaded image and the effects to bake into the export.
type PhotoInput struct {
	Source   image.Image
	Effects  effects.Descriptor
	FileName string // default: edited-image.png
}

// ExportResult is an encoded export ready for the download boundary.
type ExportResult struct {
	FileName string
	Image    image.Image
	Data     []byte // PNG
}

// PreviewInput is the loaded image as the editor displays it.
type PreviewInput struct {
	Source  image.Image
	Effects effects.Descriptor
	Display geom.Size
	Crop    *geom.Rect // pending crop rectangle in display pixels, if any
}

// =============================================================================
// Crop Types
// =============================================================================

// CropInput is a planned crop of the loaded image.
type CropInput struct {
	Source  image.Image
	Region  crop.Region
	Effects effects.Descriptor
}

// CropResult is the raster that replaces the loaded image.
type CropResult struct {
	Image image.Image
	Size  geom.Size
}

// =============================================================================
// Poster Types
// =============================================================================

// PosterInput is a scene to flatten.
type PosterInput struct {
	Width    int
	Height   int
	Elements []scene.Element // insertion order
	FileName string          // default: poster.png

	// Overlays draws the selection ring and crop indicators. Off for exports.
	Overlays  bool
	Selection scene.Selection
}

// DrawnElement is one element as it was drawn, used for debug output.
type DrawnElement struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Position geom.Point `json:"position"`
	Size     geom.Size  `json:"size,omitempty"`
	Content  string     `json:"content,omitempty"`
}
