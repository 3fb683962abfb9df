package adjust

import (
	"fmt"
	"strings"

	"github.com/user/picx/pkg/effects"
)

// Filter is a named preset layered on top of the sliders.
type Filter string

const (
	FilterNone      Filter = ""
	FilterGrayscale Filter = "grayscale"
	FilterSepia     Filter = "sepia"
	FilterBlur      Filter = "blur"
	FilterSharpen   Filter = "sharpen"
	FilterVintage   Filter = "vintage"
	FilterCool      Filter = "cool"
	FilterWarm      Filter = "warm"
	FilterDramatic  Filter = "dramatic"
)

// filterOps is the fixed mapping from preset to operations. Sharpen is an
// approximation through contrast and brightness, not a convolution.
var filterOps = map[Filter][]effects.Op{
	FilterGrayscale: {{Kind: effects.Grayscale, Amount: 100}},
	FilterSepia:     {{Kind: effects.Sepia, Amount: 100}},
	FilterBlur:      {{Kind: effects.Blur, Amount: 2}},
	FilterSharpen: {
		{Kind: effects.Contrast, Amount: 150},
		{Kind: effects.Brightness, Amount: 150},
	},
	FilterVintage: {
		{Kind: effects.Sepia, Amount: 50},
		{Kind: effects.HueRotate, Amount: -30},
		{Kind: effects.Saturate, Amount: 140},
	},
	FilterCool: {{Kind: effects.HueRotate, Amount: 180}},
	FilterWarm: {
		{Kind: effects.HueRotate, Amount: -30},
		{Kind: effects.Saturate, Amount: 150},
	},
	FilterDramatic: {
		{Kind: effects.Contrast, Amount: 150},
		{Kind: effects.Brightness, Amount: 90},
		{Kind: effects.Saturate, Amount: 150},
	},
}

// Filters lists the named filters in the order the editor offers them.
func Filters() []Filter {
	return []Filter{
		FilterGrayscale, FilterSepia, FilterBlur, FilterSharpen,
		FilterVintage, FilterCool, FilterWarm, FilterDramatic,
	}
}

// ParseFilter parses a filter name. "" and "none" parse to FilterNone.
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "none" {
		return FilterNone, nil
	}
	f := Filter(name)
	if _, ok := filterOps[f]; !ok {
		return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return f, nil
}

// Ops returns a copy of the operations the filter appends.
func (f Filter) Ops() []effects.Op {
	ops := filterOps[f]
	if len(ops) == 0 {
		return nil
	}
	out := make([]effects.Op, len(ops))
	copy(out, ops)
	return out
}

// String returns the filter name, "none" for FilterNone.
func (f Filter) String() string {
	if f == FilterNone {
		return "none"
	}
	return string(f)
}

// UnmarshalText lets documents name filters as plain strings.
func (f *Filter) UnmarshalText(text []byte) error {
	parsed, err := ParseFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
