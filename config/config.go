// Package config loads the runtime settings: a YAML file laid over the
// defaults, then VCONSOLE_* environment variables on top.
package config

import (
	"os"
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/plus3/vconsole/capture"
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/interact"
)

// Config is flat so every field maps to one environment variable.
type Config struct {
	SourceWidth    float64 `yaml:"source_width" config:"VCONSOLE_SOURCE_WIDTH"`
	SourceHeight   float64 `yaml:"source_height" config:"VCONSOLE_SOURCE_HEIGHT"`
	PanelWidth     float64 `yaml:"panel_width" config:"VCONSOLE_PANEL_WIDTH"`
	PanelHeight    float64 `yaml:"panel_height" config:"VCONSOLE_PANEL_HEIGHT"`
	VerticalOffset float64 `yaml:"vertical_offset" config:"VCONSOLE_VERTICAL_OFFSET"`

	LeftPlane   string  `yaml:"left_plane" config:"VCONSOLE_LEFT_PLANE"`
	LeftOffset  float64 `yaml:"left_offset" config:"VCONSOLE_LEFT_OFFSET"`
	RightPlane  string  `yaml:"right_plane" config:"VCONSOLE_RIGHT_PLANE"`
	RightOffset float64 `yaml:"right_offset" config:"VCONSOLE_RIGHT_OFFSET"`
	CursorID    string  `yaml:"cursor_id" config:"VCONSOLE_CURSOR_ID"`

	ConsoleCapacity int `yaml:"console_capacity" config:"VCONSOLE_CONSOLE_CAPACITY"`

	AcquireTimeoutSeconds float64 `yaml:"acquire_timeout_seconds" config:"VCONSOLE_ACQUIRE_TIMEOUT_SECONDS"`
	CaptureFPS            float64 `yaml:"capture_fps" config:"VCONSOLE_CAPTURE_FPS"`

	WindowWidth  int    `yaml:"window_width" config:"VCONSOLE_WINDOW_WIDTH"`
	WindowHeight int    `yaml:"window_height" config:"VCONSOLE_WINDOW_HEIGHT"`
	LogLevel     string `yaml:"log_level" config:"VCONSOLE_LOG_LEVEL"`
}

func Default() Config {
	layout := interact.DefaultLayout()
	return Config{
		SourceWidth:           layout.SourceWidth,
		SourceHeight:          layout.SourceHeight,
		PanelWidth:            layout.PanelWidth,
		PanelHeight:           layout.PanelHeight,
		VerticalOffset:        layout.VerticalOffset,
		LeftPlane:             interact.LeftPlane,
		LeftOffset:            -layout.SourceWidth,
		RightPlane:            interact.RightPlane,
		RightOffset:           -layout.PanelWidth,
		CursorID:              interact.DefaultCursorID,
		ConsoleCapacity:       console.DefaultCapacity,
		AcquireTimeoutSeconds: capture.MaxAcquireTimeout.Seconds(),
		CaptureFPS:            30,
		WindowWidth:           1280,
		WindowHeight:          720,
		LogLevel:              "info",
	}
}

// Load returns the defaults overlaid by the YAML file at path, when path is
// not empty, and then by the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, eris.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, eris.Wrapf(err, "parse config %s", path)
		}
	}
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Layout().Validate(); err != nil {
		return eris.Wrap(err, "invalid layout")
	}
	if c.ConsoleCapacity <= 0 {
		return eris.Errorf("console capacity must be positive, got %d", c.ConsoleCapacity)
	}
	if c.AcquireTimeoutSeconds <= 0 || c.AcquireTimeout() > capture.MaxAcquireTimeout {
		return eris.Errorf("acquire timeout must be in (0, %s], got %gs", capture.MaxAcquireTimeout, c.AcquireTimeoutSeconds)
	}
	if c.CaptureFPS <= 0 {
		return eris.Errorf("capture fps must be positive, got %g", c.CaptureFPS)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return eris.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

func (c Config) Layout() interact.Layout {
	return interact.Layout{
		SourceWidth:    c.SourceWidth,
		SourceHeight:   c.SourceHeight,
		PanelWidth:     c.PanelWidth,
		PanelHeight:    c.PanelHeight,
		VerticalOffset: c.VerticalOffset,
		Planes: []interact.Plane{
			{Mesh: c.LeftPlane, OffsetX: c.LeftOffset},
			{Mesh: c.RightPlane, OffsetX: c.RightOffset},
		},
	}
}

func (c Config) AcquireTimeout() time.Duration {
	return time.Duration(c.AcquireTimeoutSeconds * float64(time.Second))
}

// CaptureInterval is the time between capture ticks.
func (c Config) CaptureInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.CaptureFPS)
}

func (c Config) CaptureOptions(log zerolog.Logger) capture.Options {
	return capture.Options{
		PanelWidth:     int(c.PanelWidth),
		AcquireTimeout: c.AcquireTimeout(),
		Logger:         log,
	}
}

func (c Config) ProxyOptions(log zerolog.Logger) []interact.Option {
	return []interact.Option{
		interact.WithLogger(log),
		interact.WithCursorID(c.CursorID),
	}
}

func (c Config) ConsoleOptions(log zerolog.Logger) []console.Option {
	return []console.Option{
		console.WithLogger(log),
		console.WithConsoleCapacity(c.ConsoleCapacity),
		console.WithViewport(float32(c.WindowWidth), float32(c.WindowHeight)),
	}
}

// Level returns the configured zerolog level. Validate guarantees it parses.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
