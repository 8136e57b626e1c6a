package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_FollowsXDGEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))

	adapter := New()

	tests := []struct {
		name string
		get  func() (string, error)
		want string
	}{
		{"config", adapter.ConfigDir, filepath.Join(root, "config", "moto")},
		{"data", adapter.DataDir, filepath.Join(root, "data", "moto")},
		{"state", adapter.StateDir, filepath.Join(root, "state", "moto")},
		{"cache", adapter.CacheDir, filepath.Join(root, "cache", "moto")},
		{"profile", adapter.ProfileDir, filepath.Join(root, "cache", "moto", "profile")},
		{"logs", adapter.LogDir, filepath.Join(root, "state", "moto", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := tt.get()
			require.NoError(t, err)
			assert.Equal(t, tt.want, dir)
		})
	}
}

func TestAdapter_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := New().ConfigDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "moto"), dir)
}
