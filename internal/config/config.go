// Package config loads the sketch pad settings from a TOML file.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"MyLocalSketch/internal/logging"
	"MyLocalSketch/internal/state"
)

type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Defaults DefaultsConfig `toml:"defaults"`
	Log      LogConfig      `toml:"log"`
}

// CanvasConfig is the fixed size of the raster buffer, in pixels.
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultsConfig seeds the drawing settings at start-up.
type DefaultsConfig struct {
	Color       string `toml:"color"`
	StrokeWidth int    `toml:"stroke_width"`
	Mode        string `toml:"mode"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// Trace logs every raster call at debug level.
	Trace bool `toml:"trace"`
}

func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Defaults: DefaultsConfig{
			Color:       state.DefaultColor,
			StrokeWidth: state.DefaultStrokeWidth,
			Mode:        state.Freehand.String(),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the built-in defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.Logger().Warn("unknown config key", "file", path, "key", key.String())
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := state.ParseColor(c.Defaults.Color); err != nil {
		errs = append(errs, fmt.Errorf("defaults.color: %w", err))
	}
	if !state.ValidStrokeWidth(c.Defaults.StrokeWidth) {
		errs = append(errs, fmt.Errorf("defaults.stroke_width %d not in [%d, %d]",
			c.Defaults.StrokeWidth, state.MinStrokeWidth, state.MaxStrokeWidth))
	}
	if _, err := state.ParseMode(c.Defaults.Mode); err != nil {
		errs = append(errs, fmt.Errorf("defaults.mode: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Settings converts the defaults section into drawing settings. Call it on
// a validated config.
func (c Config) Settings() state.Settings {
	s := state.DefaultSettings()
	if color, err := state.ParseColor(c.Defaults.Color); err == nil {
		s.Color = color
	}
	if state.ValidStrokeWidth(c.Defaults.StrokeWidth) {
		s.StrokeWidth = c.Defaults.StrokeWidth
	}
	if mode, err := state.ParseMode(c.Defaults.Mode); err == nil {
		s.Mode = mode
	}
	return s
}
