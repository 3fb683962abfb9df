package scene

import (
	"image"

	"github.com/user/picx/pkg/geom"
)

// Kind discriminates the element variants. It is fixed when an element is
// created and is never derived from the element id.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Placement is the part every element shares.
type Placement struct {
	ID       string     `json:"id"`
	Position geom.Point `json:"position"`
}

// Element is a poster element: *TextElement or *ImageElement.
type Element interface {
	Kind() Kind
	Place() *Placement
}

// TextKind selects the default styling of a text element.
type TextKind string

const (
	Heading    TextKind = "heading"
	Subheading TextKind = "subheading"
	Body       TextKind = "body"
)

// ParseTextKind validates a text kind name.
func ParseTextKind(s string) (TextKind, bool) {
	switch k := TextKind(s); k {
	case Heading, Subheading, Body:
		return k, true
	default:
		return "", false
	}
}

// Align is the horizontal alignment of a text element.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextStyle is the per-element text styling.
type TextStyle struct {
	Color      string  `json:"color"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	FontWeight string  `json:"fontWeight"`
	Align      Align   `json:"align"`
}

// DefaultTextStyle returns the style a new element of kind k starts with.
func DefaultTextStyle(k TextKind) TextStyle {
	style := TextStyle{
		Color:      "#000000",
		FontSize:   16,
		FontFamily: "Arial",
		FontWeight: "normal",
		Align:      AlignLeft,
	}
	switch k {
	case Heading:
		style.FontSize = 32
		style.FontWeight = "bold"
	case Subheading:
		style.FontSize = 24
	}
	return style
}

// TextElement is a positioned, styled line of text.
type TextElement struct {
	Placement
	TextKind TextKind  `json:"textKind"`
	Content  string    `json:"content"`
	Style    TextStyle `json:"style"`
}

// Kind implements Element.
func (t *TextElement) Kind() Kind { return KindText }

// Place implements Element.
func (t *TextElement) Place() *Placement { return &t.Placement }

// ImageElement is a positioned raster drawn scaled into its box.
type ImageElement struct {
	Placement
	Raster image.Image `json:"-"`
	Source string      `json:"source,omitempty"`
	Size   geom.Size   `json:"size"`
	// Cropping only toggles an on-screen indicator; no pixels are cropped.
	Cropping bool `json:"cropping"`
}

// Kind implements Element.
func (i *ImageElement) Kind() Kind { return KindImage }

// Place implements Element.
func (i *ImageElement) Place() *Placement { return &i.Placement }
