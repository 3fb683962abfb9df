package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Canvases it creates are recorded in Canvases.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	mu       sync.Mutex
	Canvases []*Canvas
	Encoded  []image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := NewCanvas(width, height, bg)
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.Encoded = append(m.Encoded, img)
	m.mu.Unlock()
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte("png"), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// LastCanvas returns the most recently created canvas, or nil.
func (m *Renderer) LastCanvas() *Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Canvases) == 0 {
		return nil
	}
	return m.Canvases[len(m.Canvases)-1]
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawOp is one recorded canvas call.
type DrawOp struct {
	Name    string
	Image   image.Image
	X, Y    float64
	W, H    float64
	Src     geom.Rect
	Degrees float64
	Text    string
	Style   ports.TextStyle
	Color   color.Color
}

// Canvas is a recording implementation of ports.Canvas.
type Canvas struct {
	Width, Height int
	Background    color.Color
	Ops           []DrawOp
}

// NewCanvas creates a recording canvas.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{Width: width, Height: height, Background: bg}
}

func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	c.Ops = append(c.Ops, DrawOp{Name: "image", Image: img, X: x, Y: y})
}

func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height float64) {
	c.Ops = append(c.Ops, DrawOp{Name: "image-scaled", Image: img, X: x, Y: y, W: width, H: height})
}

func (c *Canvas) DrawImageRegion(img image.Image, src geom.Rect, width, height float64) {
	c.Ops = append(c.Ops, DrawOp{Name: "image-region", Image: img, Src: src, W: width, H: height})
}

func (c *Canvas) DrawImageRotated(img image.Image, degrees float64) {
	c.Ops = append(c.Ops, DrawOp{Name: "image-rotated", Image: img, Degrees: degrees})
}

func (c *Canvas) DrawRect(x, y, w, h float64, col color.Color) {
	c.Ops = append(c.Ops, DrawOp{Name: "rect", X: x, Y: y, W: w, H: h, Color: col})
}

func (c *Canvas) DrawRectStroke(x, y, w, h float64, col color.Color, strokeWidth float64) {
	c.Ops = append(c.Ops, DrawOp{Name: "rect-stroke", X: x, Y: y, W: w, H: h, Color: col})
}

func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.Ops = append(c.Ops, DrawOp{Name: "text", Text: text, X: x, Y: y, Style: style, Color: style.Color})
}

func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len(text)) * style.FontSize * 0.5, style.FontSize
}

func (c *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
}

// Names returns the recorded op names in call order.
func (c *Canvas) Names() []string {
	names := make([]string, len(c.Ops))
	for i, op := range c.Ops {
		names[i] = op.Name
	}
	return names
}

var _ ports.Canvas = (*Canvas)(nil)
