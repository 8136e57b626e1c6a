package xdg

import (
	"path/filepath"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/infrastructure/config"
)

// Adapter implements port.XDGPaths using config.GetXDGDirs().
type Adapter struct{}

// New creates a new XDG paths adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) ConfigDir() (string, error) {
	return config.GetConfigDir()
}

func (a *Adapter) DataDir() (string, error) {
	return config.GetDataDir()
}

func (a *Adapter) StateDir() (string, error) {
	return config.GetStateDir()
}

func (a *Adapter) CacheDir() (string, error) {
	return config.GetCacheDir()
}

// ProfileDir is the engine's user data directory. It lives in the cache
// because everything in it can be rebuilt.
func (a *Adapter) ProfileDir() (string, error) {
	cacheDir, err := a.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "profile"), nil
}

// LogDir is the default location of rotated log files.
func (a *Adapter) LogDir() (string, error) {
	stateDir, err := a.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

var _ port.XDGPaths = (*Adapter)(nil)
