// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/picx/pkg/adapters/emailrelay"
	"github.com/user/picx/pkg/adapters/ggrenderer"
	"github.com/user/picx/pkg/ports"
	"github.com/user/picx/pkg/scene"
)

// Environment variables holding the relay credentials.
const (
	EnvRelayServiceID  = "PICX_RELAY_SERVICE_ID"
	EnvRelayTemplateID = "PICX_RELAY_TEMPLATE_ID"
	EnvRelayPublicKey  = "PICX_RELAY_PUBLIC_KEY"
	EnvRelayEndpoint   = "PICX_RELAY_ENDPOINT"
)

// Config represents the full configuration for picx.
type Config struct {
	// Output
	OutputDir      string `yaml:"output_dir"`
	PhotoFileName  string `yaml:"photo_file"`
	PosterFileName string `yaml:"poster_file"`

	// Editors
	Display DisplayConfig         `yaml:"display"`
	Poster  PosterConfig          `yaml:"poster"`
	Fonts   map[string]FontConfig `yaml:"fonts"`

	// Sharing
	Relay RelayConfig `yaml:"relay"`

	// Preview
	ChromePath string `yaml:"chrome_path"`

	// Logging and debug
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// DisplayConfig is the box the photo is fitted into on screen.
// Crop rectangles are expressed in this display space.
type DisplayConfig struct {
	MaxWidth  float64 `yaml:"max_width"`
	MaxHeight float64 `yaml:"max_height"`
}

// PosterConfig is the poster container and export canvas size.
type PosterConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FontConfig names the font files of one family.
type FontConfig struct {
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
}

// RelayConfig identifies the email relay account.
type RelayConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:      ".",
		PhotoFileName:  "edited-image.png",
		PosterFileName: "poster.png",

		Display: DisplayConfig{MaxWidth: 900, MaxHeight: 500},
		Poster:  PosterConfig{Width: 900, Height: 600},

		Relay: RelayConfig{
			Endpoint:  emailrelay.DefaultEndpoint,
			TimeoutMs: 20000,
		},

		LogLevel: "info",
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnvFile loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides the relay settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRelayServiceID); v != "" {
		c.Relay.ServiceID = v
	}
	if v := getenv(EnvRelayTemplateID); v != "" {
		c.Relay.TemplateID = v
	}
	if v := getenv(EnvRelayPublicKey); v != "" {
		c.Relay.PublicKey = v
	}
	if v := getenv(EnvRelayEndpoint); v != "" {
		c.Relay.Endpoint = v
	}
}

// Validate checks the values the editors depend on.
func (c Config) Validate() error {
	if c.Display.MaxWidth <= 0 || c.Display.MaxHeight <= 0 {
		return fmt.Errorf("display box must be positive, got %vx%v", c.Display.MaxWidth, c.Display.MaxHeight)
	}
	if c.Poster.Width <= 0 || c.Poster.Height <= 0 {
		return fmt.Errorf("poster size must be positive, got %dx%d", c.Poster.Width, c.Poster.Height)
	}
	if c.PhotoFileName == "" || c.PosterFileName == "" {
		return errors.New("export file names must not be empty")
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	for family := range c.Fonts {
		if _, ok := scene.LookupFontFamily(family); !ok {
			return fmt.Errorf("fonts: %q is not one of %s", family, strings.Join(scene.FontFamilies(), ", "))
		}
	}
	return nil
}

// RelayOptions converts the relay settings for the email relay adapter.
func (c Config) RelayOptions() emailrelay.Options {
	return emailrelay.Options{
		Endpoint:   c.Relay.Endpoint,
		ServiceID:  c.Relay.ServiceID,
		TemplateID: c.Relay.TemplateID,
		PublicKey:  c.Relay.PublicKey,
		Timeout:    time.Duration(c.Relay.TimeoutMs) * time.Millisecond,
	}
}

// FontFiles converts the font settings for the renderer's font book.
func (c Config) FontFiles() map[string]ggrenderer.FontFiles {
	out := make(map[string]ggrenderer.FontFiles, len(c.Fonts))
	for family, f := range c.Fonts {
		out[family] = ggrenderer.FontFiles{Regular: f.Regular, Bold: f.Bold}
	}
	return out
}

// ParseColor parses a "#rrggbb" or "#rgb" hex color string to color.Color.
// Anything else yields black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
