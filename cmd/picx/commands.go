package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/picx/pkg/adapters/previewcapture"
	"github.com/user/picx/pkg/adjust"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/effects"
	"github.com/user/picx/pkg/geom"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/project"
	"github.com/user/picx/pkg/scene"
	"github.com/user/picx/pkg/summarizer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    l10n.T("Output directory"),
		Category: l10n.T("Output"),
	}
}

func summaryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "summary",
		Usage:    l10n.T("Write a Markdown summary of the run to this path"),
		Category: l10n.T("Output"),
	}
}

// writeSummary writes b as Markdown when --summary is set.
func writeSummary(c *cli.Context, e *env, b *summarizer.Builder) error {
	path := c.String("summary")
	if path == "" {
		return nil
	}
	w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), e.fs)
	if err := w.Write(path, b.Build()); err != nil {
		return err
	}
	e.log.Info("Saved %s", path)
	return nil
}

func photoInfo(photo *editor.Photo, source string) summarizer.PhotoInfo {
	img, _ := photo.Image()
	d := photo.Descriptor()
	return summarizer.PhotoInfo{
		Source:  source,
		Natural: img.Natural,
		Display: img.Display,
		Filter:  d.CSSFilter(),
		Rotate:  d.Rotation(),
	}
}

func posterInfo(poster *editor.Poster) summarizer.PosterInfo {
	info := summarizer.PosterInfo{}
	if t, ok := poster.Template(); ok {
		info.Template = t.ID
	}
	info.Width, info.Height = poster.ContainerSize()
	for _, el := range poster.Scene().Elements() {
		switch el.Kind() {
		case scene.KindText:
			info.Texts++
		case scene.KindImage:
			info.Images++
		}
	}
	return info
}

func recipeFlags() []cli.Flag {
	category := l10n.T("Adjustments")
	return []cli.Flag{
		&cli.StringFlag{Name: "recipe", Aliases: []string{"r"}, Usage: l10n.T("Photo recipe YAML file"), Category: category},
		&cli.IntFlag{Name: "brightness", Usage: l10n.T("Brightness in percent (0-200)"), Category: category},
		&cli.IntFlag{Name: "contrast", Usage: l10n.T("Contrast in percent (0-200)"), Category: category},
		&cli.IntFlag{Name: "saturation", Usage: l10n.T("Saturation in percent (0-200)"), Category: category},
		&cli.IntFlag{Name: "rotation", Usage: l10n.T("Rotation in degrees (0-360)"), Category: category},
		&cli.StringFlag{Name: "filter", Usage: l10n.T("Named filter (grayscale, sepia, blur, sharpen, vintage, cool, warm, dramatic, none)"), Category: category},
		&cli.StringFlag{Name: "crop", Usage: l10n.T("Crop rectangle in display pixels as x,y,width,height"), Category: category},
	}
}

// loadRecipe builds a photo recipe from --recipe, the image argument and
// the adjustment flags, in that order of precedence from low to high.
func loadRecipe(c *cli.Context, e *env) (project.PhotoRecipe, *project.Loader, error) {
	var recipe project.PhotoRecipe
	loader := project.NewLoader(e.fs, "")

	if path := c.String("recipe"); path != "" {
		data, err := e.fs.ReadFile(path)
		if err != nil {
			return recipe, nil, fmt.Errorf("read recipe: %w", err)
		}
		recipe, err = project.ParsePhotoRecipe(data)
		if err != nil {
			return recipe, nil, err
		}
		loader = project.NewLoader(e.fs, filepath.Dir(path))
	}

	if c.Args().Present() {
		abs, err := filepath.Abs(c.Args().First())
		if err != nil {
			return recipe, nil, err
		}
		recipe.Source = abs
	}
	if recipe.Source == "" {
		return recipe, nil, errors.New(l10n.T("Image argument is required"))
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"brightness", &recipe.Brightness},
		{"contrast", &recipe.Contrast},
		{"saturation", &recipe.Saturation},
		{"rotation", &recipe.Rotation},
	}
	for _, f := range ints {
		if c.IsSet(f.name) {
			v := c.Int(f.name)
			*f.dst = &v
		}
	}

	if c.IsSet("filter") {
		if _, err := adjust.ParseFilter(c.String("filter")); err != nil {
			return recipe, nil, err
		}
		recipe.Filter = c.String("filter")
	}
	if c.IsSet("crop") {
		rect, err := parseRect(c.String("crop"))
		if err != nil {
			return recipe, nil, err
		}
		recipe.Crop = &rect
	}

	return recipe, loader, recipe.Validate()
}

func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("crop must be x,y,width,height, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("crop %q: %w", s, err)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return geom.Rect{}, fmt.Errorf("crop %q must have a positive size", s)
	}
	return geom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func photoCommand() *cli.Command {
	return &cli.Command{
		Name:      "photo",
		Usage:     l10n.T("Adjust an image and export it as PNG"),
		ArgsUsage: "[image]",
		Flags:     append([]cli.Flag{outputFlag(), summaryFlag()}, recipeFlags()...),
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(c.Context, e.log)
			defer cancel()

			recipe, loader, err := loadRecipe(c, e)
			if err != nil {
				return err
			}

			photo := e.newPhoto()
			if err := loader.ApplyPhoto(ctx, photo, recipe); err != nil {
				return err
			}
			e.log.Info("Applying %s", photo.Descriptor().CSS())

			path, err := photo.Export(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, path)

			return writeSummary(c, e, summarizer.NewBuilder("photo").
				WithPhoto(photoInfo(photo, recipe.Source)).
				WithOutputs(path))
		},
	}
}

func posterCommand() *cli.Command {
	return &cli.Command{
		Name:      "poster",
		Usage:     l10n.T("Flatten a poster document into a PNG image"),
		ArgsUsage: "<document>",
		Flags: []cli.Flag{
			outputFlag(),
			summaryFlag(),
			&cli.StringFlag{
				Name:     "snapshot",
				Usage:    l10n.T("Also write the editor view with selection and crop indicators to this path"),
				Category: l10n.T("Output"),
			},
		},
		Action: func(c *cli.Context) error {
			if !c.Args().Present() {
				return errors.New(l10n.T("Document argument is required"))
			}
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(c.Context, e.log)
			defer cancel()

			path := c.Args().First()
			data, err := e.fs.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc, err := project.ParsePosterDocument(data)
			if err != nil {
				return err
			}

			poster := e.newPoster()
			if err := project.NewLoader(e.fs, filepath.Dir(path)).ApplyPoster(poster, doc); err != nil {
				return err
			}

			out, err := poster.Export(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, out)
			outputs := []string{out}

			if snap := c.String("snapshot"); snap != "" {
				img, err := poster.Snapshot(ctx)
				if err != nil {
					return err
				}
				png, err := e.renderer.EncodeImage(img, ports.FormatPNG, 0)
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				if err := e.fs.WriteFile(snap, png); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				e.log.Info("Saved %s", snap)
				outputs = append(outputs, snap)
			}

			return writeSummary(c, e, summarizer.NewBuilder("poster").
				WithPoster(posterInfo(poster)).
				WithOutputs(outputs...))
		},
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     l10n.T("Replay a recorded editing session"),
		ArgsUsage: "<session>",
		Flags:     []cli.Flag{outputFlag(), summaryFlag()},
		Action: func(c *cli.Context) error {
			if !c.Args().Present() {
				return errors.New(l10n.T("Session argument is required"))
			}
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(c.Context, e.log)
			defer cancel()

			path := c.Args().First()
			data, err := e.fs.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read session: %w", err)
			}
			session, err := project.ParseSession(data)
			if err != nil {
				return err
			}

			loader := project.NewLoader(e.fs, filepath.Dir(path))
			photo, poster := e.newPhoto(), e.newPoster()
			runner := project.NewRunner(photo, poster, loader, e.log)
			result, err := runner.Run(ctx, session)
			if err != nil {
				return err
			}

			e.log.Info("Replayed %d steps (%d changed, %d ignored)", result.Steps, result.Changed, result.Ignored)
			for _, p := range result.Exported {
				fmt.Fprintln(c.App.Writer, p)
			}

			b := summarizer.NewBuilder("replay").
				WithSession(summarizer.SessionInfo{
					Mode:    string(result.Mode),
					Steps:   result.Steps,
					Changed: result.Changed,
					Ignored: result.Ignored,
				}).
				WithOutputs(result.Exported...)
			if photo.HasImage() {
				source := ""
				if session.Photo != nil {
					source = session.Photo.Source
				}
				b.WithPhoto(photoInfo(photo, source))
			}
			if poster.Scene().Len() > 0 {
				b.WithPoster(posterInfo(poster))
			}
			return writeSummary(c, e, b)
		},
	}
}

func previewCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:     "html",
			Usage:    l10n.T("Write the preview HTML to this path"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "png",
			Usage:    l10n.T("Capture the preview in headless Chrome and write it to this path"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "snapshot",
			Usage:    l10n.T("Render the preview without a browser and write it to this path"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "chrome-path",
			Usage:    l10n.T("Path to Chrome executable"),
			EnvVars:  []string{"CHROME_PATH"},
			Category: l10n.T("Browser"),
		},
	}, recipeFlags()...)

	return &cli.Command{
		Name:      "preview",
		Usage:     l10n.T("Render the live editor preview of an adjusted image"),
		ArgsUsage: "[image]",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(c.Context, e.log)
			defer cancel()

			recipe, loader, err := loadRecipe(c, e)
			if err != nil {
				return err
			}
			photo := e.newPhoto()
			if err := loader.ApplyPhoto(ctx, photo, recipe); err != nil {
				return err
			}

			html, err := photo.PreviewHTML()
			if err != nil {
				return err
			}

			htmlPath, pngPath, snapPath := c.String("html"), c.String("png"), c.String("snapshot")
			if htmlPath == "" && pngPath == "" && snapPath == "" {
				fmt.Fprint(c.App.Writer, html)
				return nil
			}
			if htmlPath != "" {
				if err := e.fs.WriteFile(htmlPath, []byte(html)); err != nil {
					return fmt.Errorf("write preview html: %w", err)
				}
				e.log.Info("Saved %s", htmlPath)
			}
			if pngPath != "" {
				chromePath := e.cfg.ChromePath
				if c.IsSet("chrome-path") {
					chromePath = c.String("chrome-path")
				}
				img, err := photo.CapturePreview(ctx, previewcapture.New(chromePath, e.log))
				if err != nil {
					return fmt.Errorf("capture preview: %w", err)
				}
				png, err := e.renderer.EncodeImage(img, ports.FormatPNG, 0)
				if err != nil {
					return fmt.Errorf("encode preview: %w", err)
				}
				if err := e.fs.WriteFile(pngPath, png); err != nil {
					return fmt.Errorf("write preview: %w", err)
				}
				e.log.Info("Saved %s", pngPath)
			}
			if snapPath != "" {
				img, err := photo.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("render snapshot: %w", err)
				}
				png, err := e.renderer.EncodeImage(img, ports.FormatPNG, 0)
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				if err := e.fs.WriteFile(snapPath, png); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				e.log.Info("Saved %s", snapPath)
			}
			return nil
		},
	}
}

func shareCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Usage:    l10n.T("Recipient email address"),
			Required: true,
			Category: l10n.T("Sharing"),
		},
		&cli.StringFlag{
			Name:     "message",
			Aliases:  []string{"m"},
			Usage:    l10n.T("Message sent with the image"),
			Category: l10n.T("Sharing"),
		},
	}, recipeFlags()...)

	return &cli.Command{
		Name:      "share",
		Usage:     l10n.T("Email an image through the configured relay"),
		ArgsUsage: "[image]",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(c.Context, e.log)
			defer cancel()

			recipe, loader, err := loadRecipe(c, e)
			if err != nil {
				return err
			}
			photo := e.newPhoto()
			if err := loader.ApplyPhoto(ctx, photo, recipe); err != nil {
				return err
			}
			return photo.Share(ctx, c.String("to"), c.String("message"))
		},
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: l10n.T("List the poster templates"),
		Action: func(c *cli.Context) error {
			for _, t := range scene.Templates() {
				fmt.Fprintf(c.App.Writer, "%s\t%s\n", t.ID, l10n.T(t.Name))
			}
			return nil
		},
	}
}

func filtersCommand() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: l10n.T("List the named filters and the effects they add"),
		Action: func(c *cli.Context) error {
			for _, f := range adjust.Filters() {
				fmt.Fprintf(c.App.Writer, "%s\t%s\n", f, effects.New(f.Ops()...).CSS())
			}
			return nil
		},
	}
}

func stylesCommand() *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: l10n.T("List the font families and colours offered for text"),
		Action: func(c *cli.Context) error {
			for _, family := range scene.FontFamilies() {
				fmt.Fprintf(c.App.Writer, "font\t%s\n", family)
			}
			for _, colour := range scene.Palette() {
				fmt.Fprintf(c.App.Writer, "color\t%s\n", colour)
			}
			return nil
		},
	}
}
