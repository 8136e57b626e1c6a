package styles_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/domain/build"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/infrastructure/config"
	"github.com/bnema/moto/internal/ui/overlay"
)

func TestConfigRenderer_RenderPath(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme(config.DefaultConfig()))

	out := r.RenderPath("/tmp/moto/config.toml", true)
	require.Contains(t, out, "config.toml")
	require.Contains(t, out, "present")

	out = r.RenderPath("/tmp/moto/config.toml", false)
	require.Contains(t, out, "first run")
}

func TestConfigRenderer_RenderError(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme(nil))
	require.Contains(t, r.RenderError(errors.New("bad toml")), "bad toml")
}

func TestConfigRenderer_RenderDocument(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme(nil))
	out := r.RenderDocument("Schema", "{}\n\n")
	assert.Contains(t, out, "Schema")
	assert.Contains(t, out, "{}")
}

func TestNewTheme_PrefersLightOnlyWhenAsked(t *testing.T) {
	cfg := config.DefaultConfig()
	dark := styles.NewTheme(cfg)
	assert.EqualValues(t, overlay.DefaultDarkPalette().Background, dark.Background)

	cfg.Appearance.ColorScheme = config.ThemePreferLight
	cfg.Appearance.LightPalette.Accent = "#123456"
	light := styles.NewTheme(cfg)
	assert.EqualValues(t, overlay.DefaultLightPalette().Background, light.Background)
	assert.EqualValues(t, "#123456", light.Accent)
}

func TestAboutRenderer_Render(t *testing.T) {
	r := styles.NewAboutRenderer(styles.NewTheme(nil))
	out := r.Render(build.Info{Version: "v1.2.3", GoVersion: "go1.25.3"})
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, build.RepoURL())
}

func TestConfirmModel(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(nil), "Restart?", false)
	assert.False(t, m.Yes)

	m = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.True(t, m.Yes)
	assert.False(t, m.Done())

	m = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.Yes)

	m = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Done())
	assert.True(t, m.Result())
	assert.Contains(t, m.View(), "Restart?")
}

func TestConfirmModel_CancelIsNo(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(nil), "Clear?", true)
	m = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Done())
	assert.False(t, m.Result())
}

func TestRenderTable(t *testing.T) {
	theme := styles.NewTheme(nil)
	b := &entity.Bookmark{URL: "https://example.com", Title: "Example", CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local)}

	out := styles.RenderTable(theme, []string{"Title", "URL", "Added"}, [][]string{styles.BookmarkRow(b)})

	assert.Contains(t, out, "Example")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "2026-01-02 03:04")
}

func TestHistoryRow(t *testing.T) {
	row := styles.HistoryRow(&entity.HistoryEntry{URL: "https://go.dev", Title: "Go", VisitCount: 3})
	require.Len(t, row, 4)
	assert.Equal(t, "3", row[2])
	assert.Equal(t, "-", row[3])
}
