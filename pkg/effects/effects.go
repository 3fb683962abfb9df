// Package effects defines the effect descriptor: the ordered list of visual
// operations that both the live preview and the exported raster apply.
//
// The descriptor is a value, not a string. The CSS form used by the preview
// and the pixel form used by the compositor are both derived from the same
// list, so the two renderings apply identical operations in identical order.
package effects

import (
	"strconv"
	"strings"
)

// Kind names a single effect operation. The values are the CSS function names.
type Kind string

const (
	Brightness Kind = "brightness" // Amount in percent
	Contrast   Kind = "contrast"   // Amount in percent
	Saturate   Kind = "saturate"   // Amount in percent
	Rotate     Kind = "rotate"     // Amount in degrees, geometric
	Grayscale  Kind = "grayscale"  // Amount in percent
	Sepia      Kind = "sepia"      // Amount in percent
	Blur       Kind = "blur"       // Amount in pixels (gaussian standard deviation)
	HueRotate  Kind = "hue-rotate" // Amount in degrees
)

// Op is one operation of a descriptor.
type Op struct {
	Kind   Kind    `json:"kind"`
	Amount float64 `json:"amount"`
}

// Unit returns the CSS unit suffix for the operation's amount.
func (o Op) Unit() string {
	switch o.Kind {
	case Rotate, HueRotate:
		return "deg"
	case Blur:
		return "px"
	default:
		return "%"
	}
}

// CSS renders the operation as a CSS function, e.g. "sepia(50%)".
func (o Op) CSS() string {
	return string(o.Kind) + "(" + strconv.FormatFloat(o.Amount, 'f', -1, 64) + o.Unit() + ")"
}

// Geometric reports whether the operation moves pixels rather than
// recolouring them.
func (o Op) Geometric() bool {
	return o.Kind == Rotate
}

// Descriptor is an ordered list of effect operations.
type Descriptor struct {
	Ops []Op `json:"ops"`
}

// New creates a descriptor from ops in the given order.
func New(ops ...Op) Descriptor {
	return Descriptor{Ops: ops}
}

// Append returns a copy of d with ops added at the end.
func (d Descriptor) Append(ops ...Op) Descriptor {
	out := make([]Op, 0, len(d.Ops)+len(ops))
	out = append(out, d.Ops...)
	out = append(out, ops...)
	return Descriptor{Ops: out}
}

// CSS renders every operation in order as a single space-separated string,
// the form the editor has always shown for the current adjustments.
func (d Descriptor) CSS() string {
	parts := make([]string, len(d.Ops))
	for i, op := range d.Ops {
		parts[i] = op.CSS()
	}
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return d.CSS()
}

// CSSFilter renders only the recolouring operations, in order, for use as a
// CSS `filter` property value. Returns "none" when there are none.
func (d Descriptor) CSSFilter() string {
	var parts []string
	for _, op := range d.Ops {
		if op.Geometric() {
			continue
		}
		parts = append(parts, op.CSS())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// CSSTransform renders the geometric operations for use as a CSS `transform`
// property value. Returns "none" when there are none.
func (d Descriptor) CSSTransform() string {
	var parts []string
	for _, op := range d.Ops {
		if op.Geometric() {
			parts = append(parts, op.CSS())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Rotation returns the total rotation in degrees.
func (d Descriptor) Rotation() float64 {
	total := 0.0
	for _, op := range d.Ops {
		if op.Kind == Rotate {
			total += op.Amount
		}
	}
	return total
}
