package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidStyle is returned when a style value violates its field's rules.
var ErrInvalidStyle = errors.New("invalid text style")

// StyleField names one TextStyle field.
type StyleField string

const (
	StyleColor      StyleField = "color"
	StyleFontSize   StyleField = "fontSize"
	StyleFontFamily StyleField = "fontFamily"
	StyleFontWeight StyleField = "fontWeight"
	StyleAlign      StyleField = "align"
)

// ParseStyleField accepts the field names in camelCase, kebab-case or
// snake_case, plus "textAlign".
func ParseStyleField(s string) (StyleField, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	switch key {
	case "color":
		return StyleColor, nil
	case "fontsize", "size":
		return StyleFontSize, nil
	case "fontfamily", "family", "font":
		return StyleFontFamily, nil
	case "fontweight", "weight":
		return StyleFontWeight, nil
	case "align", "textalign":
		return StyleAlign, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidStyle, s)
	}
}

// With returns a copy of s with field set to value.
func (s TextStyle) With(field StyleField, value string) (TextStyle, error) {
	value = strings.TrimSpace(value)

	switch field {
	case StyleColor:
		if !isHexColor(value) {
			return s, fmt.Errorf("%w: color %q", ErrInvalidStyle, value)
		}
		s.Color = value
	case StyleFontSize:
		size, err := strconv.ParseFloat(value, 64)
		if err != nil || size <= 0 {
			return s, fmt.Errorf("%w: font size %q", ErrInvalidStyle, value)
		}
		s.FontSize = size
	case StyleFontFamily:
		family, ok := LookupFontFamily(value)
		if !ok {
			return s, fmt.Errorf("%w: font family %q", ErrInvalidStyle, value)
		}
		s.FontFamily = family
	case StyleFontWeight:
		if value == "" {
			return s, fmt.Errorf("%w: empty font weight", ErrInvalidStyle)
		}
		s.FontWeight = value
	case StyleAlign:
		switch a := Align(strings.ToLower(value)); a {
		case AlignLeft, AlignCenter, AlignRight:
			s.Align = a
		default:
			return s, fmt.Errorf("%w: align %q", ErrInvalidStyle, value)
		}
	default:
		return s, fmt.Errorf("%w: unknown field %q", ErrInvalidStyle, field)
	}
	return s, nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// FontFamilies lists the families offered by the style panel.
func FontFamilies() []string {
	return []string{"Arial", "Times New Roman", "Helvetica", "Georgia", "Verdana"}
}

// LookupFontFamily matches name against FontFamilies ignoring case and
// returns the catalog spelling.
func LookupFontFamily(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, family := range FontFamilies() {
		if strings.EqualFold(family, name) {
			return family, true
		}
	}
	return "", false
}

// Palette lists the colours offered by the style panel.
func Palette() []string {
	return []string{
		"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF",
		"#FFFF00", "#FF00FF", "#00FFFF", "#808080", "#800000",
	}
}
