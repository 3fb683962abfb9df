// Package crop tracks a drag-defined crop rectangle in display coordinates
// and plans the matching region in source pixels.
package crop

import (
	"math"

	"github.com/user/picx/pkg/geom"
)

// State is the crop gesture state.
type State int

const (
	// Idle means no crop gesture and no pending rectangle.
	Idle State = iota
	// Selecting means the user is dragging out a rectangle.
	Selecting
	// Pending means a rectangle was released and waits to be applied.
	Pending
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Engine is the crop state machine: Idle → Selecting → Pending → Idle.
// The zero value is an idle engine.
type Engine struct {
	state State
	start *geom.Point
	rect  *geom.Rect
}

// New creates an idle engine.
func New() *Engine {
	return &Engine{}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Rect returns the current rectangle, if any.
func (e *Engine) Rect() (geom.Rect, bool) {
	if e.rect == nil {
		return geom.Rect{}, false
	}
	return *e.rect, true
}

// Begin enters Selecting and discards any earlier rectangle. Calling Begin
// while a rectangle is pending starts over rather than stacking state.
func (e *Engine) Begin() {
	e.state = Selecting
	e.start = nil
	e.rect = nil
}

// Press records the drag-start point. Ignored unless Selecting.
func (e *Engine) Press(p geom.Point) bool {
	if e.state != Selecting {
		return false
	}
	e.start = &p
	return true
}

// Update recomputes the rectangle as the span of the drag-start point and p.
// Ignored unless Selecting with a start point.
func (e *Engine) Update(p geom.Point) bool {
	if e.state != Selecting || e.start == nil {
		return false
	}
	r := geom.Span(*e.start, p)
	e.rect = &r
	return true
}

// End finishes the drag: Pending if a rectangle exists, Idle otherwise.
func (e *Engine) End() State {
	if e.state != Selecting {
		return e.state
	}
	e.start = nil
	if e.rect != nil {
		e.state = Pending
	} else {
		e.state = Idle
	}
	return e.state
}

// Cancel drops the gesture and any rectangle.
func (e *Engine) Cancel() {
	e.state = Idle
	e.start = nil
	e.rect = nil
}

// Finish clears the rectangle after it was applied.
func (e *Engine) Finish() {
	e.Cancel()
}

// Region is the planned crop in source pixel coordinates.
type Region struct {
	// Display is the rectangle as drawn on screen.
	Display geom.Rect `json:"display"`
	// Scale converts display pixels to source pixels.
	Scale float64 `json:"scale"`
	// Source is Display × Scale.
	Source geom.Rect `json:"source"`
	// Width and Height are the output raster dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Plan maps the current rectangle into source pixels of an image shown at
// display size. Source and display are assumed to share an aspect ratio, so
// a single scale derived from the widths is used for both axes. The output
// size is round(w×scale) × round(h×scale). Returns false when there is no
// rectangle or the result would be empty.
func (e *Engine) Plan(natural, display geom.Size) (Region, bool) {
	if e.rect == nil || natural.Empty() || display.Width <= 0 {
		return Region{}, false
	}

	scale := natural.Width / display.Width
	src := e.rect.Scale(scale)
	w := int(math.Round(src.Width))
	h := int(math.Round(src.Height))
	if w <= 0 || h <= 0 {
		return Region{}, false
	}

	return Region{
		Display: *e.rect,
		Scale:   scale,
		Source:  src,
		Width:   w,
		Height:  h,
	}, true
}
