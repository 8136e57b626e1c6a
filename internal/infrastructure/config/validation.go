package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bnema/moto/internal/domain/entity"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

var validShortcutActions = []string{
	"focus_location", "new_tab", "close_tab", "next_tab", "previous_tab",
	"switch_tab", "reload", "stop", "go_back", "go_forward", "bookmark", "history", "open_file", "quit",
}

// validateConfig collects every problem so the user can fix them at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateEngine(config)...)
	validationErrors = append(validationErrors, validatePermissions(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateShortcuts(config)...)
	validationErrors = append(validationErrors, validateSearchEngine(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	if config.History.MaxEntries < 0 {
		validationErrors = append(validationErrors, "history.max_entries must be non-negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateWindow(config *Config) []string {
	var errs []string
	w := config.Window
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, "window.width and window.height must be positive")
	}
	if w.ChromeHeight < 0 {
		errs = append(errs, "window.chrome_height must be non-negative")
	} else if w.Height > 0 && w.ChromeHeight >= w.Height {
		errs = append(errs, "window.chrome_height must be smaller than window.height")
	}
	if w.FrameIntervalMs <= 0 {
		errs = append(errs, "window.frame_interval_ms must be positive")
	}
	if w.HiddenFrameIntervalMs <= 0 {
		errs = append(errs, "window.hidden_frame_interval_ms must be positive")
	}
	return errs
}

func validateEngine(config *Config) []string {
	if config.Engine.DispatchTimeoutMs <= 0 {
		return []string{"engine.dispatch_timeout_ms must be positive"}
	}
	return nil
}

func validatePermissions(config *Config) []string {
	var errs []string
	if _, err := entity.ParsePermissionDecision(config.Permissions.Default); err != nil {
		errs = append(errs, fmt.Sprintf("permissions.default: %v", err))
	}
	for kind, decision := range config.Permissions.Overrides {
		if !slices.Contains(entity.PermissionKinds, entity.PermissionKind(strings.ToLower(kind))) {
			errs = append(errs, fmt.Sprintf("permissions.overrides: unknown permission %q (valid: %s)",
				kind, strings.Join(entity.PermissionKindsToStrings(entity.PermissionKinds), ", ")))
			continue
		}
		if _, err := entity.ParsePermissionDecision(decision); err != nil {
			errs = append(errs, fmt.Sprintf("permissions.overrides.%s: %v", kind, err))
		}
	}
	slices.Sort(errs)
	return errs
}

func validateAppearance(config *Config) []string {
	var errs []string
	check := func(prefix string, p ColorPalette) {
		fields := []struct{ name, value string }{
			{"background", p.Background},
			{"surface", p.Surface},
			{"surface_variant", p.SurfaceVariant},
			{"text", p.Text},
			{"muted", p.Muted},
			{"accent", p.Accent},
			{"border", p.Border},
		}
		for _, f := range fields {
			if f.value != "" && !hexColorRegex.MatchString(f.value) {
				errs = append(errs, fmt.Sprintf("%s.%s: invalid hex color %q", prefix, f.name, f.value))
			}
		}
	}
	check("appearance.light_palette", config.Appearance.LightPalette)
	check("appearance.dark_palette", config.Appearance.DarkPalette)
	return errs
}

func validateShortcuts(config *Config) []string {
	var errs []string
	for action := range config.Shortcuts {
		if !slices.Contains(validShortcutActions, action) {
			errs = append(errs, fmt.Sprintf("shortcuts: unknown action %q", action))
		}
	}
	slices.Sort(errs)
	return errs
}

func validateSearchEngine(config *Config) []string {
	if config.SearchEngine == "" {
		return []string{"search_engine cannot be empty"}
	}
	if !strings.Contains(config.SearchEngine, "%s") {
		return []string{"search_engine must contain %s placeholder for the query"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var errs []string
	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error"}, config.Logging.Level) {
		errs = append(errs, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	if !slices.Contains([]string{"console", "json"}, config.Logging.Format) {
		errs = append(errs, fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB <= 0 {
		errs = append(errs, "logging.max_size_mb must be positive")
	}
	if config.Logging.MaxAgeDays < 0 {
		errs = append(errs, "logging.max_age_days must be non-negative")
	}
	return errs
}
