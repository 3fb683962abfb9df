package ports

import (
	"image"
	"image/color"

	"github.com/user/picx/pkg/geom"
)

// Renderer abstracts the drawing surface and the image codecs.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	// FormatAuto detects the format from the data.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides the 2D drawing operations the compositor needs.
// Coordinates are canvas pixels with the origin at the top-left corner.
type Canvas interface {
	// DrawImage draws an image at its natural size.
	DrawImage(img image.Image, x, y float64)

	// DrawImageScaled draws an image scaled into the given box.
	DrawImageScaled(img image.Image, x, y, width, height float64)

	// DrawImageRegion draws the src region of img stretched over the box
	// (0, 0, width, height). Parts of src outside img stay untouched.
	DrawImageRegion(img image.Image, src geom.Rect, width, height float64)

	// DrawImageRotated draws an image centred on the canvas and rotated
	// clockwise by degrees about the canvas centre.
	DrawImageRotated(img image.Image, degrees float64)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h float64, c color.Color)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h float64, c color.Color, strokeWidth float64)

	// DrawText draws a single line of text with its baseline at y.
	DrawText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize   float64
	FontFamily string
	Bold       bool
	Color      color.Color
	Align      TextAlign
}

// TextAlign specifies which point of the text x refers to.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatAuto
)
