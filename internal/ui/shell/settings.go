package shell

import (
	"context"

	"github.com/bnema/moto/internal/infrastructure/cdp"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/coordinator"
	"github.com/bnema/moto/internal/ui/input"
	"github.com/bnema/moto/internal/ui/overlay"
)

// SettingsFromConfig maps the config onto the coordinator's reloadable
// settings. systemDark may be nil.
func SettingsFromConfig(ctx context.Context, cfg *config.Config, systemDark func() bool) coordinator.Settings {
	return coordinator.Settings{
		ChromeHeight:        cfg.Window.ChromeHeight,
		AllowPopups:         cfg.Engine.AllowPopups,
		SearchEngine:        cfg.SearchEngine,
		FrameInterval:       cfg.Window.FrameInterval(),
		HiddenFrameInterval: cfg.Window.HiddenFrameInterval(),
		Palette:             PaletteFromConfig(ctx, cfg.Appearance, systemDark),
		Shortcuts:           input.NewShortcutTable(ctx, cfg.Shortcuts),
	}
}

// PaletteFromConfig picks the light or dark palette and fills the gaps with
// the built-in colors.
func PaletteFromConfig(ctx context.Context, appearance config.AppearanceConfig, systemDark func() bool) overlay.Palette {
	dark := overlay.ResolveColorScheme(appearance.ColorScheme, systemDark)
	custom := appearance.LightPalette
	if dark {
		custom = appearance.DarkPalette
	}
	palette := overlay.PaletteWithOverrides(overlay.Palette(custom), dark)
	if err := palette.Validate(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("invalid palette, using defaults")
		return overlay.PaletteWithOverrides(overlay.Palette{}, dark)
	}
	return palette
}

// PageSettingsFromConfig is what the moto: pages show.
func PageSettingsFromConfig(cfg *config.Config, palette overlay.Palette, configPath string) cdp.PageSettings {
	text, err := config.Render(cfg)
	if err != nil {
		text = []byte(err.Error())
	}
	return cdp.PageSettings{
		CSSVars:      palette.ToWebCSSVars(),
		SearchEngine: cfg.SearchEngine,
		ConfigPath:   configPath,
		ConfigText:   string(text),
	}
}
