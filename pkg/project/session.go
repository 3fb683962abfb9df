package project

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/interaction"
)

// Action names a session step that calls an editor operation directly
// instead of going through a pointer event.
type Action string

const (
	ActionAddText        Action = "add-text"
	ActionAddImage       Action = "add-image"
	ActionSet            Action = "set"
	ActionFilter         Action = "filter"
	ActionStartCrop      Action = "start-crop"
	ActionApplyCrop      Action = "apply-crop"
	ActionCancelCrop     Action = "cancel-crop"
	ActionStyle          Action = "style"
	ActionResize         Action = "resize"
	ActionToggleCrop     Action = "toggle-crop"
	ActionEditText       Action = "edit-text"
	ActionSelectTemplate Action = "select-template"
	ActionMode           Action = "mode"
	ActionBounds         Action = "bounds"
	ActionExport         Action = "export"
)

// LastElement as a step target refers to the most recently added element.
const LastElement = "$last"

// Session is a recorded editing session.
type Session struct {
	Mode string `yaml:"mode"`
	// Bounds are the initial container bounds per mode, in client coordinates.
	Bounds map[string]geom.Rect `yaml:"bounds,omitempty"`
	Photo  *PhotoRecipe         `yaml:"photo,omitempty"`
	Poster *PosterDocument      `yaml:"poster,omitempty"`
	Steps  []Step               `yaml:"steps"`
}

// Step is either a pointer event or an action. Only the fields the action
// needs are read.
type Step struct {
	Event  *interaction.Event `yaml:"event,omitempty"`
	Action Action             `yaml:"action,omitempty"`

	Target string     `yaml:"target,omitempty"`
	Kind   string     `yaml:"kind,omitempty"`
	Field  string     `yaml:"field,omitempty"`
	Value  string     `yaml:"value,omitempty"`
	Source string     `yaml:"source,omitempty"`
	Size   *geom.Size `yaml:"size,omitempty"`
	Mode   string     `yaml:"mode,omitempty"`
	Rect   *geom.Rect `yaml:"rect,omitempty"`
}

// Name describes the step for logs and errors.
func (s Step) Name() string {
	if s.Event != nil {
		return "event " + string(s.Event.Type)
	}
	return string(s.Action)
}

// ParseSession decodes a session document.
func ParseSession(data []byte) (Session, error) {
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if s.Mode == "" {
		s.Mode = string(interaction.ModePhoto)
	}
	return s, s.Validate()
}

// Validate checks the modes and every step. An empty mode means photo.
func (s Session) Validate() error {
	if s.Mode != "" {
		if _, err := interaction.ParseMode(s.Mode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}
	for mode := range s.Bounds {
		if _, err := interaction.ParseMode(mode); err != nil {
			return fmt.Errorf("%w: bounds: %v", ErrInvalidDocument, err)
		}
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalidDocument, i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	if s.Event != nil {
		if s.Action != "" {
			return fmt.Errorf("step has both event and action")
		}
		switch s.Event.Type {
		case interaction.PointerDown, interaction.PointerMove, interaction.PointerUp, interaction.Click:
			return nil
		default:
			return fmt.Errorf("unknown event type %q", s.Event.Type)
		}
	}

	switch s.Action {
	case ActionStartCrop, ActionApplyCrop, ActionCancelCrop, ActionExport:
	case ActionAddText, ActionFilter, ActionEditText:
	case ActionAddImage:
		if s.Source == "" {
			return fmt.Errorf("%s needs source", s.Action)
		}
	case ActionSet, ActionStyle:
		if s.Field == "" {
			return fmt.Errorf("%s needs field", s.Action)
		}
	case ActionResize:
		if s.Size == nil {
			return fmt.Errorf("%s needs size", s.Action)
		}
	case ActionToggleCrop:
	case ActionSelectTemplate:
		if s.Value == "" {
			return fmt.Errorf("%s needs value", s.Action)
		}
	case ActionMode:
		if _, err := interaction.ParseMode(s.Mode); err != nil {
			return err
		}
	case ActionBounds:
		if s.Rect == nil {
			return fmt.Errorf("%s needs rect", s.Action)
		}
		if _, err := interaction.ParseMode(s.Mode); err != nil {
			return err
		}
	case "":
		return fmt.Errorf("step needs an event or an action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}
