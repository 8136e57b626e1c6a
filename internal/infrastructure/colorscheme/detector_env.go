package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "GTK_THEME"
	priorityEnv     = 20
)

// EnvDetector reads GTK_THEME, e.g. "Adwaita:dark".
type EnvDetector struct {
	getenv func(string) string
}

func NewEnvDetector() *EnvDetector {
	return &EnvDetector{getenv: os.Getenv}
}

func (*EnvDetector) Name() string { return detectorNameEnv }

func (*EnvDetector) Priority() int { return priorityEnv }

func (d *EnvDetector) Available() bool {
	return d.getenv("GTK_THEME") != ""
}

// Detect treats any theme name containing "dark" as dark.
func (d *EnvDetector) Detect() (prefersDark, ok bool) {
	theme := d.getenv("GTK_THEME")
	if theme == "" {
		return false, false
	}
	return strings.Contains(strings.ToLower(theme), "dark"), true
}
