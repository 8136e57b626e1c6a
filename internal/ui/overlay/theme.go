package overlay

import (
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Palette holds semantic color tokens for the chrome.
type Palette struct {
	Background     string // Tab strip background
	Surface        string // Toolbar and active tab
	SurfaceVariant string // Location field and hovered controls
	Text           string // Primary text color
	Muted          string // Inactive tabs, disabled buttons
	Accent         string // Focus ring, progress, bookmark star
	Border         string // Divider lines
}

// DefaultDarkPalette returns the default dark palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
	}
}

// DefaultLightPalette returns the default light palette.
func DefaultLightPalette() Palette {
	return Palette{
		Background:     "#e8e8e8",
		Surface:        "#ffffff",
		SurfaceVariant: "#f0f0f0",
		Text:           "#1a1a1a",
		Muted:          "#666666",
		Accent:         "#22c55e",
		Border:         "#cccccc",
	}
}

// PaletteWithOverrides fills empty fields of custom from the defaults for
// the chosen scheme.
func PaletteWithOverrides(custom Palette, dark bool) Palette {
	defaults := DefaultLightPalette()
	if dark {
		defaults = DefaultDarkPalette()
	}
	return Palette{
		Background:     Coalesce(custom.Background, defaults.Background),
		Surface:        Coalesce(custom.Surface, defaults.Surface),
		SurfaceVariant: Coalesce(custom.SurfaceVariant, defaults.SurfaceVariant),
		Text:           Coalesce(custom.Text, defaults.Text),
		Muted:          Coalesce(custom.Muted, defaults.Muted),
		Accent:         Coalesce(custom.Accent, defaults.Accent),
		Border:         Coalesce(custom.Border, defaults.Border),
	}
}

// Coalesce returns the first non-empty string.
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// hexColorRegex matches valid hex colors (#RGB, #RRGGBB, #RRGGBBAA).
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// ValidateHexColor checks if a string is a valid hex color.
func ValidateHexColor(c string) error {
	if c == "" {
		return nil
	}
	if !hexColorRegex.MatchString(c) {
		return fmt.Errorf("invalid hex color: %s", c)
	}
	return nil
}

// Validate checks all palette colors are valid hex values.
func (p Palette) Validate() error {
	colors := map[string]string{
		"background":      p.Background,
		"surface":         p.Surface,
		"surface_variant": p.SurfaceVariant,
		"text":            p.Text,
		"muted":           p.Muted,
		"accent":          p.Accent,
		"border":          p.Border,
	}
	for name, c := range colors {
		if err := ValidateHexColor(c); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ToWebCSSVars generates CSS custom properties for the built-in pages.
func (p Palette) ToWebCSSVars() string {
	var sb strings.Builder
	sb.WriteString("  --background: " + p.Background + ";\n")
	sb.WriteString("  --foreground: " + p.Text + ";\n")
	sb.WriteString("  --card: " + p.Surface + ";\n")
	sb.WriteString("  --muted: " + p.SurfaceVariant + ";\n")
	sb.WriteString("  --muted-foreground: " + p.Muted + ";\n")
	sb.WriteString("  --primary: " + p.Accent + ";\n")
	sb.WriteString("  --border: " + p.Border + ";\n")
	return sb.String()
}

// ParseHex converts a validated hex color. Invalid input yields opaque magenta
// so mistakes are visible.
func ParseHex(s string) color.RGBA {
	bad := color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	if ValidateHexColor(s) != nil || s == "" {
		return bad
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return bad
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// ResolveColorScheme determines the effective dark mode preference from the
// config value ("prefer-dark", "prefer-light", "default"). "default" follows
// GTK_THEME, then systemDark.
func ResolveColorScheme(configScheme string, systemDark func() bool) bool {
	switch strings.ToLower(configScheme) {
	case "prefer-dark", "dark":
		return true
	case "prefer-light", "light":
		return false
	}
	if gtkTheme := os.Getenv("GTK_THEME"); gtkTheme != "" {
		return strings.Contains(strings.ToLower(gtkTheme), "dark")
	}
	if systemDark != nil {
		return systemDark()
	}
	return true
}

type colors struct {
	background, surface, surfaceVariant, text, muted, accent, border color.RGBA
}

func (p Palette) colors() colors {
	return colors{
		background:     ParseHex(p.Background),
		surface:        ParseHex(p.Surface),
		surfaceVariant: ParseHex(p.SurfaceVariant),
		text:           ParseHex(p.Text),
		muted:          ParseHex(p.Muted),
		accent:         ParseHex(p.Accent),
		border:         ParseHex(p.Border),
	}
}
