// Package adjust holds the photo adjustment parameters and derives the
// effect descriptor for them.
package adjust

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/picx/pkg/effects"
)

var (
	// ErrUnknownField is returned when a field name does not name a slider.
	ErrUnknownField = errors.New("unknown adjustment field")
	// ErrUnknownFilter is returned when a filter name is not in the catalog.
	ErrUnknownFilter = errors.New("unknown filter")
)

// Field identifies one numeric slider.
type Field string

const (
	FieldBrightness Field = "brightness"
	FieldContrast   Field = "contrast"
	FieldSaturation Field = "saturation"
	FieldRotation   Field = "rotation"
)

// Fields lists the sliders in display order.
func Fields() []Field {
	return []Field{FieldBrightness, FieldContrast, FieldSaturation, FieldRotation}
}

// ParseField parses a slider name.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Range returns the closed valid range of f.
func (f Field) Range() (min, max int) {
	if f == FieldRotation {
		return 0, 360
	}
	return 0, 200
}

// Adjustments is the full set of photo parameters.
type Adjustments struct {
	Brightness int    `json:"brightness" yaml:"brightness"`
	Contrast   int    `json:"contrast" yaml:"contrast"`
	Saturation int    `json:"saturation" yaml:"saturation"`
	Rotation   int    `json:"rotation" yaml:"rotation"`
	Filter     Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// Defaults returns the parameters of a freshly loaded image.
func Defaults() Adjustments {
	return Adjustments{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
		Rotation:   0,
		Filter:     FilterNone,
	}
}

// Reset restores the defaults.
func (a *Adjustments) Reset() {
	*a = Defaults()
}

// Set stores value into field, clamped to the field's range, and returns the
// stored value. Out-of-range input is clamped, never rejected.
func (a *Adjustments) Set(field Field, value int) int {
	lo, hi := field.Range()
	if value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}

	switch field {
	case FieldBrightness:
		a.Brightness = value
	case FieldContrast:
		a.Contrast = value
	case FieldSaturation:
		a.Saturation = value
	case FieldRotation:
		a.Rotation = value
	default:
		return 0
	}
	return value
}

// Get returns the current value of field.
func (a Adjustments) Get(field Field) int {
	switch field {
	case FieldBrightness:
		return a.Brightness
	case FieldContrast:
		return a.Contrast
	case FieldSaturation:
		return a.Saturation
	case FieldRotation:
		return a.Rotation
	default:
		return 0
	}
}

// ApplyFilter selects a named filter. "none" clears it.
func (a *Adjustments) ApplyFilter(name string) error {
	f, err := ParseFilter(name)
	if err != nil {
		return err
	}
	a.Filter = f
	return nil
}

// Normalize clamps every numeric field into range. Used for values that
// arrive from documents rather than through Set.
func (a *Adjustments) Normalize() {
	for _, f := range Fields() {
		a.Set(f, a.Get(f))
	}
}

// Descriptor derives the effect descriptor: brightness, contrast and
// saturation first, then rotation, then the named filter's operations.
func (a Adjustments) Descriptor() effects.Descriptor {
	d := effects.New(
		effects.Op{Kind: effects.Brightness, Amount: float64(a.Brightness)},
		effects.Op{Kind: effects.Contrast, Amount: float64(a.Contrast)},
		effects.Op{Kind: effects.Saturate, Amount: float64(a.Saturation)},
		effects.Op{Kind: effects.Rotate, Amount: float64(a.Rotation)},
	)
	return d.Append(a.Filter.Ops()...)
}
