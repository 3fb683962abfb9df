// Package interaction turns pointer events into editor operations.
//
// Photo mode only crops and poster mode only drags, so at most one gesture
// is ever active. Pointer positions are made relative to the container's
// bounds as reported at the time of each event.
package interaction

import (
	"fmt"

	"github.com/user/picx/pkg/crop"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/ports"
)

// Mode selects which editor receives pointer events.
type Mode string

const (
	ModePhoto  Mode = "photo"
	ModePoster Mode = "poster"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePhoto, ModePoster:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// EventType is the kind of pointer event.
type EventType string

const (
	PointerDown EventType = "down"
	PointerMove EventType = "move"
	PointerUp   EventType = "up"
	Click       EventType = "click"
)

// Event is a pointer event in client (viewport) coordinates. Target is the
// id of the poster element under the pointer, if any.
type Event struct {
	Type    EventType `yaml:"type" json:"type"`
	ClientX float64   `yaml:"x" json:"x"`
	ClientY float64   `yaml:"y" json:"y"`
	Target  string    `yaml:"target,omitempty" json:"target,omitempty"`
}

// BoundsFunc reports the container's current bounds in client coordinates.
type BoundsFunc func() geom.Rect

// Gesture is the active pointer gesture.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureCropSelecting
	GestureDragging
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureCropSelecting:
		return "crop-selecting"
	case GestureDragging:
		return "dragging"
	default:
		return "none"
	}
}

// Controller routes pointer events to the editor of the current mode.
type Controller struct {
	mode   Mode
	photo  *editor.Photo
	poster *editor.Poster
	bounds map[Mode]BoundsFunc
	logger ports.Logger
}

// New creates a controller in photo mode.
func New(photo *editor.Photo, poster *editor.Poster, logger ports.Logger) *Controller {
	return &Controller{
		mode:   ModePhoto,
		photo:  photo,
		poster: poster,
		bounds: make(map[Mode]BoundsFunc),
		logger: logger.WithComponent("interaction"),
	}
}

// SetBounds installs the bounds source for a mode's container.
func (c *Controller) SetBounds(mode Mode, fn BoundsFunc) {
	c.bounds[mode] = fn
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode switches modes. Any drag ends and any crop gesture or pending
// crop rectangle is dropped.
func (c *Controller) SetMode(mode Mode) {
	if c.poster != nil {
		c.poster.EndDrag()
	}
	if c.photo != nil {
		c.photo.CancelCrop()
	}
	if mode != c.mode {
		c.logger.Debug("Mode %s -> %s", c.mode, mode)
	}
	c.mode = mode
}

// Active reports the active gesture.
func (c *Controller) Active() Gesture {
	switch c.mode {
	case ModePhoto:
		if c.photo != nil && c.photo.CropState() == crop.Selecting {
			return GestureCropSelecting
		}
	case ModePoster:
		if c.poster != nil && c.poster.Scene().Selection().Dragging() != "" {
			return GestureDragging
		}
	}
	return GestureNone
}

// Handle applies ev to the current mode's editor and reports whether any
// state changed.
func (c *Controller) Handle(ev Event) bool {
	p := c.relative(ev)

	switch c.mode {
	case ModePhoto:
		return c.handlePhoto(ev.Type, p)
	case ModePoster:
		return c.handlePoster(ev, p)
	}
	return false
}

func (c *Controller) handlePhoto(t EventType, p geom.Point) bool {
	if c.photo == nil {
		return false
	}
	switch t {
	case PointerDown:
		return c.photo.PressCrop(p)
	case PointerMove:
		return c.photo.UpdateCrop(p)
	case PointerUp:
		if c.photo.CropState() != crop.Selecting {
			return false
		}
		state := c.photo.EndCrop()
		c.logger.Debug("Crop released, now %s", state)
		return true
	}
	return false
}

func (c *Controller) handlePoster(ev Event, p geom.Point) bool {
	if c.poster == nil {
		return false
	}
	switch ev.Type {
	case Click:
		if ev.Target == "" {
			return false
		}
		return c.poster.Select(ev.Target)
	case PointerDown:
		if ev.Target == "" {
			return false
		}
		return c.poster.BeginDrag(ev.Target)
	case PointerMove:
		return c.poster.UpdateDrag(p)
	case PointerUp:
		return c.poster.EndDrag()
	}
	return false
}

// relative converts client coordinates to container coordinates using the
// bounds reported right now.
func (c *Controller) relative(ev Event) geom.Point {
	client := geom.Point{X: ev.ClientX, Y: ev.ClientY}
	fn := c.bounds[c.mode]
	if fn == nil {
		return client
	}
	return fn().Relative(client)
}
