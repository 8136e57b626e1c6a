package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validateConfig(DefaultConfig()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{
			name:    "chrome taller than window",
			mutate:  func(c *Config) { c.Window.ChromeHeight = c.Window.Height },
			wantKey: "window.chrome_height",
		},
		{
			name:    "zero frame interval",
			mutate:  func(c *Config) { c.Window.FrameIntervalMs = 0 },
			wantKey: "window.frame_interval_ms",
		},
		{
			name:    "bad default decision",
			mutate:  func(c *Config) { c.Permissions.Default = "maybe" },
			wantKey: "permissions.default",
		},
		{
			name:    "unknown permission kind",
			mutate:  func(c *Config) { c.Permissions.Overrides["camera-roll"] = "allow" },
			wantKey: "permissions.overrides",
		},
		{
			name:    "bad palette color",
			mutate:  func(c *Config) { c.Appearance.DarkPalette.Accent = "blue" },
			wantKey: "appearance.dark_palette.accent",
		},
		{
			name:    "unknown shortcut action",
			mutate:  func(c *Config) { c.Shortcuts["teleport"] = []string{"ctrl+k"} },
			wantKey: "shortcuts",
		},
		{
			name:    "search engine without placeholder",
			mutate:  func(c *Config) { c.SearchEngine = "https://search.example/" },
			wantKey: "search_engine",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantKey: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.SearchEngine = ""

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.width")
	assert.Contains(t, err.Error(), "search_engine")
}
