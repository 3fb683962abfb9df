package project

import (
	"context"
	"fmt"
	"strconv"

	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/interaction"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

// RunResult summarizes a replayed session.
type RunResult struct {
	Steps    int
	Changed  int
	Ignored  int
	Exported []string
	Mode     interaction.Mode
}

// Runner replays sessions against a photo and a poster editor.
type Runner struct {
	photo      *editor.Photo
	poster     *editor.Poster
	controller *interaction.Controller
	loader     *Loader
	logger     ports.Logger

	bounds map[interaction.Mode]geom.Rect
	last   string
}

// NewRunner creates a runner. Sources named by the session resolve through
// loader.
func NewRunner(photo *editor.Photo, poster *editor.Poster, loader *Loader, logger ports.Logger) *Runner {
	r := &Runner{
		photo:      photo,
		poster:     poster,
		controller: interaction.New(photo, poster, logger),
		loader:     loader,
		logger:     logger.WithComponent("replay"),
		bounds:     make(map[interaction.Mode]geom.Rect),
	}
	for _, mode := range []interaction.Mode{interaction.ModePhoto, interaction.ModePoster} {
		mode := mode
		r.controller.SetBounds(mode, func() geom.Rect { return r.bounds[mode] })
	}
	return r
}

// Controller returns the interaction controller the runner feeds.
func (r *Runner) Controller() *interaction.Controller {
	return r.controller
}

// Run validates s, applies its initial documents and then each step in
// order. The first failing step stops the run.
func (r *Runner) Run(ctx context.Context, s Session) (RunResult, error) {
	var result RunResult

	if err := s.Validate(); err != nil {
		return result, err
	}
	if s.Mode == "" {
		s.Mode = string(interaction.ModePhoto)
	}

	for name, rect := range s.Bounds {
		mode, err := interaction.ParseMode(name)
		if err != nil {
			return result, err
		}
		r.bounds[mode] = rect
	}

	if s.Photo != nil {
		if err := r.loader.ApplyPhoto(ctx, r.photo, *s.Photo); err != nil {
			return result, fmt.Errorf("photo: %w", err)
		}
	}
	if s.Poster != nil {
		if err := r.loader.ApplyPoster(r.poster, *s.Poster); err != nil {
			return result, fmt.Errorf("poster: %w", err)
		}
	}

	mode, err := interaction.ParseMode(s.Mode)
	if err != nil {
		return result, err
	}
	r.controller.SetMode(mode)

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		changed, path, err := r.step(ctx, step)
		if err != nil {
			return result, fmt.Errorf("step %d (%s): %w", i+1, step.Name(), err)
		}

		result.Steps++
		if changed {
			result.Changed++
		} else {
			result.Ignored++
			r.logger.Debug("Step %d (%s) changed nothing", i+1, step.Name())
		}
		if path != "" {
			result.Exported = append(result.Exported, path)
		}
	}

	result.Mode = r.controller.Mode()
	return result, nil
}

func (r *Runner) step(ctx context.Context, s Step) (bool, string, error) {
	if s.Event != nil {
		ev := *s.Event
		ev.Target = r.target(ev.Target)
		return r.controller.Handle(ev), "", nil
	}

	switch s.Action {
	case ActionMode:
		mode, err := interaction.ParseMode(s.Mode)
		if err != nil {
			return false, "", err
		}
		r.controller.SetMode(mode)
		return true, "", nil

	case ActionBounds:
		mode, err := interaction.ParseMode(s.Mode)
		if err != nil {
			return false, "", err
		}
		r.bounds[mode] = *s.Rect
		return true, "", nil

	case ActionSet:
		field, err := adjust.ParseField(s.Field)
		if err != nil {
			return false, "", err
		}
		value, err := strconv.Atoi(s.Value)
		if err != nil {
			return false, "", fmt.Errorf("%s value %q: %w", field, s.Value, err)
		}
		stored := r.photo.SetAdjustment(field, value)
		if stored != value {
			r.logger.Debug("Clamped %s %d to %d", field, value, stored)
		}
		return true, "", nil

	case ActionFilter:
		return true, "", r.photo.ApplyFilter(s.Value)

	case ActionStartCrop:
		return r.photo.StartCrop(), "", nil

	case ActionCancelCrop:
		r.photo.CancelCrop()
		return true, "", nil

	case ActionApplyCrop:
		ok, err := r.photo.ApplyCrop(ctx)
		return ok, "", err

	case ActionAddText:
		kind := scene.Body
		if s.Kind != "" {
			k, ok := scene.ParseTextKind(s.Kind)
			if !ok {
				return false, "", fmt.Errorf("unknown text kind %q", s.Kind)
			}
			kind = k
		}
		el := r.poster.AddText(kind)
		r.last = el.ID
		return true, "", nil

	case ActionAddImage:
		data, err := r.loader.Read(s.Source)
		if err != nil {
			return false, "", err
		}
		el, err := r.poster.AddImage(data, s.Source)
		if err != nil {
			return false, "", err
		}
		r.last = el.ID
		return true, "", nil

	case ActionEditText:
		return r.poster.EditText(r.elementTarget(s.Target), s.Value), "", nil

	case ActionStyle:
		field, err := scene.ParseStyleField(s.Field)
		if err != nil {
			return false, "", err
		}
		ok, err := r.poster.UpdateTextStyle(r.elementTarget(s.Target), field, s.Value)
		return ok, "", err

	case ActionResize:
		ok, err := r.poster.ResizeImage(r.elementTarget(s.Target), s.Size.Width, s.Size.Height)
		return ok, "", err

	case ActionToggleCrop:
		return r.poster.ToggleCrop(r.elementTarget(s.Target)), "", nil

	case ActionSelectTemplate:
		return r.poster.SelectTemplate(s.Value), "", nil

	case ActionExport:
		path, err := r.export(ctx)
		if err != nil {
			return false, "", err
		}
		return true, path, nil
	}

	return false, "", fmt.Errorf("unknown action %q", s.Action)
}

func (r *Runner) export(ctx context.Context) (string, error) {
	if r.controller.Mode() == interaction.ModePoster {
		return r.poster.Export(ctx)
	}
	return r.photo.Export(ctx)
}

// target resolves LastElement.
func (r *Runner) target(id string) string {
	if id == LastElement {
		return r.last
	}
	return id
}

// elementTarget is target with the selected element as the default.
func (r *Runner) elementTarget(id string) string {
	if id == "" {
		return r.poster.Scene().Selection().Selected()
	}
	return r.target(id)
}
