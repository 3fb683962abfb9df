// Package main provides the CLI entry point for picx.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/picx/pkg/adapters/emailrelay"
	"github.com/user/picx/pkg/adapters/filesink"
	"github.com/user/picx/pkg/adapters/ggrenderer"
	"github.com/user/picx/pkg/adapters/logger"
	"github.com/user/picx/pkg/adapters/nullsink"
	"github.com/user/picx/pkg/adapters/osfilesystem"
	"github.com/user/picx/pkg/config"
	"github.com/user/picx/pkg/editor"
	"github.com/user/picx/pkg/ports"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "picx",
		Usage:   l10n.T("Adjust photos and compose posters"),
		Version: version,
		Description: l10n.T("picx edits a photo with brightness, contrast, saturation, rotation, filters and crop, " +
			"and flattens poster documents into PNG images."),
		Flags: globalFlags(),
		Commands: []*cli.Command{
			photoCommand(),
			posterCommand(),
			replayCommand(),
			previewCommand(),
			shareCommand(),
			templatesCommand(),
			filtersCommand(),
			stylesCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("Path to a YAML configuration file"),
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "env-file",
			Value:    ".env",
			Usage:    l10n.T("Path to a .env file with relay credentials"),
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
	}
}

// env holds the adapters shared by every command.
type env struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	renderer ports.Renderer
	sink     ports.DebugSink
}

func newEnv(c *cli.Context) (*env, error) {
	if err := config.LoadEnvFile(c.String("env-file")); err != nil {
		return nil, err
	}

	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level)
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.NewWithFonts(ggrenderer.NewFontBook(cfg.FontFiles(), log))

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	return &env{cfg: cfg, log: log, fs: fs, renderer: renderer, sink: sink}, nil
}

func (e *env) newPhoto() *editor.Photo {
	var relay ports.Relay
	opts := e.cfg.RelayOptions()
	if opts.Configured() {
		relay = emailrelay.New(opts, e.log)
	}
	return editor.NewPhoto(e.renderer, e.fs, relay, e.sink, e.log, editor.PhotoOptions{
		DisplayMaxWidth:  e.cfg.Display.MaxWidth,
		DisplayMaxHeight: e.cfg.Display.MaxHeight,
		OutputDir:        e.cfg.OutputDir,
		FileName:         e.cfg.PhotoFileName,
	})
}

func (e *env) newPoster() *editor.Poster {
	return editor.NewPoster(e.renderer, e.fs, e.sink, e.log, editor.PosterOptions{
		Width:     e.cfg.Poster.Width,
		Height:    e.cfg.Poster.Height,
		OutputDir: e.cfg.OutputDir,
		FileName:  e.cfg.PosterFileName,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
