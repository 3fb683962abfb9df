// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	// Extra decoders for loaded photos.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"

	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	fonts *FontBook
}

// New creates a new Renderer that uses the embedded Go fonts.
func New() *Renderer {
	return NewWithFonts(NewFontBook(nil, nil))
}

// NewWithFonts creates a new Renderer resolving font families through book.
func NewWithFonts(book *FontBook) *Renderer {
	return &Renderer{fonts: book}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, fonts: r.fonts}
}

// DecodeImage decodes image data into an image.Image.
// Auto-detected images are rotated according to their EXIF orientation.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc    *gg.Context
	fonts *FontBook
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	c.dc.Push()
	defer c.dc.Pop()

	c.dc.Translate(x, y)
	c.dc.DrawImage(zeroOrigin(img), 0, 0)
}

// DrawImageScaled draws an image scaled to the specified dimensions.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height float64) {
	img = zeroOrigin(img)
	bounds := img.Bounds()
	if bounds.Empty() {
		return
	}

	c.dc.Push()
	defer c.dc.Pop()

	c.dc.Translate(x, y)
	c.dc.Scale(width/float64(bounds.Dx()), height/float64(bounds.Dy()))
	c.dc.DrawImage(img, 0, 0)
}

// DrawImageRegion draws the src region of img stretched over (0, 0, width, height).
func (c *Canvas) DrawImageRegion(img image.Image, src geom.Rect, width, height float64) {
	if src.Width <= 0 || src.Height <= 0 {
		return
	}
	img = zeroOrigin(img)

	c.dc.Push()
	defer c.dc.Pop()

	c.dc.DrawRectangle(0, 0, width, height)
	c.dc.Clip()
	c.dc.Scale(width/src.Width, height/src.Height)
	c.dc.Translate(-src.X, -src.Y)
	c.dc.DrawImage(img, 0, 0)
	c.dc.ResetClip()
}

// DrawImageRotated draws an image centred on the canvas, rotated clockwise about the centre.
func (c *Canvas) DrawImageRotated(img image.Image, degrees float64) {
	img = zeroOrigin(img)
	cx := float64(c.dc.Width()) / 2
	cy := float64(c.dc.Height()) / 2

	c.dc.Push()
	defer c.dc.Pop()

	c.dc.RotateAbout(gg.Radians(degrees), cx, cy)
	c.dc.DrawImageAnchored(img, int(cx), int(cy), 0.5, 0.5)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// DrawRectStroke draws a rectangle outline.
func (c *Canvas) DrawRectStroke(x, y, w, h float64, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
}

// DrawText draws text with its baseline at y.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.setFont(style)
	if style.Color != nil {
		c.dc.SetColor(style.Color)
	} else {
		c.dc.SetColor(color.Black)
	}

	c.dc.DrawStringAnchored(text, x, y, anchor(style.Align), 0)
}

// MeasureText returns the rendered width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.setFont(style)
	return c.dc.MeasureString(text)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

func (c *Canvas) setFont(style ports.TextStyle) {
	if c.fonts == nil {
		return
	}
	face, err := c.fonts.Face(style.FontFamily, style.Bold, style.FontSize)
	if err != nil {
		// Keep gg's default face.
		return
	}
	c.dc.SetFontFace(face)
}

func anchor(align ports.TextAlign) float64 {
	switch align {
	case ports.AlignCenter:
		return 0.5
	case ports.AlignRight:
		return 1.0
	}
	return 0
}

// zeroOrigin returns img with its bounds starting at (0, 0).
func zeroOrigin(img image.Image) image.Image {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	return imaging.Clone(img)
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
