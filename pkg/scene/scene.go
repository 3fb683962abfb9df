// Package scene holds the poster elements and the selection state that
// refers to them.
package scene

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/user/picx/pkg/geom"
)

// ErrInvalidSize is returned when an image element would get a non-positive size.
var ErrInvalidSize = errors.New("invalid image size")

const defaultContent = "Double click to edit"

var (
	defaultPosition  = geom.Point{X: 50, Y: 50}
	defaultImageSize = geom.Size{Width: 200, Height: 200}
)

// Selection references at most one selected and at most one dragged element
// by id. A dragged element is always the selected one.
type Selection struct {
	selected string
	dragging string
}

// Selected returns the selected id, "" when none.
func (s Selection) Selected() string { return s.selected }

// Dragging returns the dragged id, "" when none.
func (s Selection) Dragging() string { return s.dragging }

// Scene is the ordered set of poster elements plus the selection.
type Scene struct {
	elements []Element
	byID     map[string]Element
	sel      Selection
	seq      uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{byID: make(map[string]Element)}
}

func (s *Scene) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Scene) add(el Element) {
	s.elements = append(s.elements, el)
	s.byID[el.Place().ID] = el
	s.sel.selected = el.Place().ID
}

// AddText appends a text element with the default style for kind at the
// default position and selects it.
func (s *Scene) AddText(kind TextKind) *TextElement {
	el := &TextElement{
		Placement: Placement{ID: s.nextID("text"), Position: defaultPosition},
		TextKind:  kind,
		Content:   defaultContent,
		Style:     DefaultTextStyle(kind),
	}
	s.add(el)
	return el
}

// AddImage appends an image element at the default position and size and
// selects it. source is an optional reference kept for documents and logs.
func (s *Scene) AddImage(raster image.Image, source string) *ImageElement {
	el := &ImageElement{
		Placement: Placement{ID: s.nextID("image"), Position: defaultPosition},
		Raster:    raster,
		Source:    source,
		Size:      defaultImageSize,
	}
	s.add(el)
	return el
}

// Elements returns the elements in insertion order.
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	return len(s.elements)
}

// Lookup finds an element by id.
func (s *Scene) Lookup(id string) (Element, bool) {
	el, ok := s.byID[id]
	return el, ok
}

// Text finds a text element by id.
func (s *Scene) Text(id string) (*TextElement, bool) {
	el, ok := s.byID[id].(*TextElement)
	return el, ok
}

// Image finds an image element by id.
func (s *Scene) Image(id string) (*ImageElement, bool) {
	el, ok := s.byID[id].(*ImageElement)
	return el, ok
}

// Selection returns the current selection.
func (s *Scene) Selection() Selection {
	return s.sel
}

// SelectedElement returns the selected element, if any.
func (s *Scene) SelectedElement() (Element, bool) {
	if s.sel.selected == "" {
		return nil, false
	}
	return s.Lookup(s.sel.selected)
}

// Select makes id the selected element. Unknown ids are ignored.
func (s *Scene) Select(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	if s.sel.dragging != "" && s.sel.dragging != id {
		s.sel.dragging = ""
	}
	s.sel.selected = id
	return true
}

// BeginDrag starts dragging id. Only the selected element can be dragged.
func (s *Scene) BeginDrag(id string) bool {
	if id == "" || id != s.sel.selected {
		return false
	}
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.sel.dragging = id
	return true
}

// UpdateDrag moves the dragged element so its position equals p, which is
// relative to the scene container's origin. The element snaps to the
// pointer; the grab offset is not preserved.
func (s *Scene) UpdateDrag(p geom.Point) bool {
	if s.sel.dragging == "" {
		return false
	}
	el, ok := s.byID[s.sel.dragging]
	if !ok {
		return false
	}
	el.Place().Position = p
	return true
}

// EndDrag stops any drag.
func (s *Scene) EndDrag() bool {
	was := s.sel.dragging != ""
	s.sel.dragging = ""
	return was
}

// EditText replaces the content of a text element.
func (s *Scene) EditText(id, content string) bool {
	el, ok := s.Text(id)
	if !ok {
		return false
	}
	el.Content = content
	return true
}

// UpdateTextStyle replaces one style field of a text element. Returns false
// for unknown ids; invalid values leave the style untouched and return an
// error wrapping ErrInvalidStyle.
func (s *Scene) UpdateTextStyle(id string, field StyleField, value string) (bool, error) {
	el, ok := s.Text(id)
	if !ok {
		return false, nil
	}
	style, err := el.Style.With(field, value)
	if err != nil {
		return true, err
	}
	el.Style = style
	return true, nil
}

// ResizeImage replaces the size of an image element.
func (s *Scene) ResizeImage(id string, width, height float64) (bool, error) {
	el, ok := s.Image(id)
	if !ok {
		return false, nil
	}
	if width <= 0 || height <= 0 {
		return true, fmt.Errorf("%w: %gx%g", ErrInvalidSize, width, height)
	}
	el.Size = geom.Size{Width: width, Height: height}
	return true, nil
}

// ToggleCrop flips the crop indicator of an image element.
func (s *Scene) ToggleCrop(id string) bool {
	el, ok := s.Image(id)
	if !ok {
		return false
	}
	el.Cropping = !el.Cropping
	return true
}

// MoveTo sets an element position directly, outside of a drag gesture.
// Used when building a scene from a document.
func (s *Scene) MoveTo(id string, p geom.Point) bool {
	el, ok := s.byID[id]
	if !ok {
		return false
	}
	el.Place().Position = p
	return true
}

// DrawOrder returns the elements sorted by ascending vertical position.
// Elements at the same height keep their insertion order.
func (s *Scene) DrawOrder() []Element {
	return SortForDrawing(s.Elements())
}

// SortForDrawing stably sorts elems in place by ascending position.y and
// returns it.
func SortForDrawing(elems []Element) []Element {
	sort.SliceStable(elems, func(i, j int) bool {
		return elems[i].Place().Position.Y < elems[j].Place().Position.Y
	})
	return elems
}
