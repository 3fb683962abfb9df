// Package geom provides the small geometry values shared by the editors.
// All coordinates are float64 pixels; pointer positions arrive fractional.
package geom

import "math"

// Point is a position in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Span returns the rectangle spanned by two corner points, in any order.
// The origin is the component-wise minimum and the size is the absolute
// difference, so the result never has a negative size.
func Span(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Scale multiplies every component by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Relative converts a client-space point into coordinates relative to r's origin.
func (r Rect) Relative(p Point) Point {
	return Point{X: p.X - r.X, Y: p.Y - r.Y}
}

// Fit scales natural down so that it fits inside a box of maxW x maxH while
// keeping its aspect ratio. Images smaller than the box are left unscaled.
// A non-positive bound means that axis is unconstrained.
func Fit(natural Size, maxW, maxH float64) Size {
	if natural.Empty() {
		return natural
	}
	scale := 1.0
	if maxW > 0 && natural.Width > maxW {
		scale = maxW / natural.Width
	}
	if maxH > 0 && natural.Height*scale > maxH {
		scale = maxH / natural.Height
	}
	return Size{Width: natural.Width * scale, Height: natural.Height * scale}
}
