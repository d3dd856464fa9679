package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/config"
	"github.com/plus3/vconsole/interact"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vconsole.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, interact.DefaultLayout(), cfg.Layout())
	assert.Equal(t, 60*time.Second, cfg.AcquireTimeout())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, 300, cfg.CaptureOptions(zerolog.Nop()).PanelWidth)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
panel_width: 450
vertical_offset: 70
right_offset: -450
console_capacity: 20
log_level: debug
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(450), cfg.PanelWidth)
	assert.Equal(t, float64(70), cfg.VerticalOffset)
	assert.Equal(t, 20, cfg.ConsoleCapacity)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, float64(1920), cfg.SourceWidth, "unset keys keep their defaults")

	right, ok := cfg.Layout().Plane(interact.RightPlane)
	require.True(t, ok)
	assert.Equal(t, float64(-450), right.OffsetX)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "panel_width: 450\ncursor_id: pointer\n")
	t.Setenv("VCONSOLE_PANEL_WIDTH", "320")
	t.Setenv("VCONSOLE_CAPTURE_FPS", "15")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, float64(320), cfg.PanelWidth)
	assert.Equal(t, float64(15), cfg.CaptureFPS)
	assert.Equal(t, "pointer", cfg.CursorID)
	assert.Equal(t, time.Second/15, cfg.CaptureInterval())
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "panel_width: [1, 2"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "panel_width: -1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"duplicate planes":  func(c *config.Config) { c.RightPlane = c.LeftPlane },
		"zero capacity":     func(c *config.Config) { c.ConsoleCapacity = 0 },
		"timeout too long":  func(c *config.Config) { c.AcquireTimeoutSeconds = 61 },
		"zero timeout":      func(c *config.Config) { c.AcquireTimeoutSeconds = 0 },
		"zero capture rate": func(c *config.Config) { c.CaptureFPS = 0 },
		"bad window":        func(c *config.Config) { c.WindowHeight = 0 },
		"bad log level":     func(c *config.Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
