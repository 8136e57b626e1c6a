package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
)

const (
	defaultWindowWidth           = 1280
	defaultWindowHeight          = 800
	defaultChromeHeight          = 72
	defaultFrameIntervalMs       = 16
	defaultHiddenFrameIntervalMs = 250
	defaultDispatchTimeoutMs     = 30000
	defaultHistoryMaxEntries     = 10000
	defaultLogMaxSizeMB          = 10
	defaultLogMaxAgeDays         = 7
)

func getDefaultLogDir() string {
	stateDir, err := GetStateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(stateDir, "logs")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:                 defaultWindowWidth,
			Height:                defaultWindowHeight,
			ChromeHeight:          defaultChromeHeight,
			FrameIntervalMs:       defaultFrameIntervalMs,
			HiddenFrameIntervalMs: defaultHiddenFrameIntervalMs,
		},
		Engine: EngineConfig{
			AllowPopups:       true,
			RestartPolicy:     RestartPrompt,
			Flags:             []string{},
			DispatchTimeoutMs: defaultDispatchTimeoutMs,
		},
		Permissions: PermissionsConfig{
			Default: string(entity.PermissionDeny),
			Overrides: map[string]string{
				string(entity.PermissionConfirm): string(entity.PermissionAllow),
				string(entity.PermissionPrompt):  string(entity.PermissionAllow),
			},
		},
		Appearance: AppearanceConfig{
			ColorScheme: ThemeDefault,
		},
		Shortcuts:    map[string][]string{},
		Homepage:     url.NewTabURL,
		SearchEngine: url.DefaultSearchEngine,
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			LogDir:     getDefaultLogDir(),
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
		History: HistoryConfig{
			MaxEntries: defaultHistoryMaxEntries,
		},
	}
}

// FrameInterval returns the visible frame period.
func (w WindowConfig) FrameInterval() time.Duration {
	return time.Duration(w.FrameIntervalMs) * time.Millisecond
}

// HiddenFrameInterval returns the hidden frame period.
func (w WindowConfig) HiddenFrameInterval() time.Duration {
	return time.Duration(w.HiddenFrameIntervalMs) * time.Millisecond
}

// DispatchTimeout returns the per-command dispatch bound.
func (e EngineConfig) DispatchTimeout() time.Duration {
	return time.Duration(e.DispatchTimeoutMs) * time.Millisecond
}

// Policy converts the permission section. Unknown kinds and decisions
// were rejected by validation.
func (p PermissionsConfig) Policy() entity.PermissionPolicy {
	policy := entity.PermissionPolicy{
		Overrides: make(map[entity.PermissionKind]entity.PermissionDecision, len(p.Overrides)),
	}
	if d, err := entity.ParsePermissionDecision(p.Default); err == nil {
		policy.Default = d
	}
	for kind, v := range p.Overrides {
		if d, err := entity.ParsePermissionDecision(v); err == nil {
			policy.Overrides[entity.PermissionKind(strings.ToLower(kind))] = d
		}
	}
	return policy
}
