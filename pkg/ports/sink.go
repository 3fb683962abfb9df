package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving what the editors computed on the way to an export.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveDescriptorJSON saves the effect descriptor applied to an export.
	SaveDescriptorJSON(data []byte) error

	// SaveCropJSON saves a planned crop region.
	SaveCropJSON(data []byte) error

	// SaveSceneJSON saves the poster scene in draw order.
	SaveSceneJSON(data []byte) error

	// SaveCrop saves the raster produced by a crop.
	SaveCrop(index int, img image.Image) error

	// SaveExport saves an exported raster under the given file name.
	SaveExport(name string, img image.Image) error
}
