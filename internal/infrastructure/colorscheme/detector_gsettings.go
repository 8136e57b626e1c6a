package colorscheme

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10
	gsettingsTimeout      = 2 * time.Second
)

// GsettingsDetector queries org.gnome.desktop.interface color-scheme.
type GsettingsDetector struct {
	run func(ctx context.Context) ([]byte, error)
}

func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{run: func(ctx context.Context) ([]byte, error) {
		return exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	}}
}

func (*GsettingsDetector) Name() string { return detectorNameGsettings }

func (*GsettingsDetector) Priority() int { return priorityGsettings }

func (*GsettingsDetector) Available() bool {
	_, err := exec.LookPath("gsettings")
	return err == nil
}

func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gsettingsTimeout)
	defer cancel()
	out, err := d.run(ctx)
	if err != nil {
		return false, false
	}
	return parseGsettingsScheme(string(out))
}

// parseGsettingsScheme reads output like "'prefer-dark'\n". "default" has no
// opinion.
func parseGsettingsScheme(out string) (prefersDark, ok bool) {
	switch strings.Trim(strings.TrimSpace(out), `'"`) {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		return false, false
	}
}
