package colorscheme

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/moto/internal/application/port"
)

type stubDetector struct {
	name      string
	priority  int
	available bool
	dark      bool
	ok        bool
}

func (s *stubDetector) Name() string         { return s.name }
func (s *stubDetector) Priority() int        { return s.priority }
func (s *stubDetector) Available() bool      { return s.available }
func (s *stubDetector) Detect() (bool, bool) { return s.dark, s.ok }

func TestResolver_HighestPriorityWins(t *testing.T) {
	low := &stubDetector{name: "low", priority: 1, available: true, dark: true, ok: true}
	high := &stubDetector{name: "high", priority: 50, available: true, dark: false, ok: true}

	pref := NewResolver(low, high).Resolve()
	assert.False(t, pref.PrefersDark)
	assert.Equal(t, "high", pref.Source)
}

func TestResolver_SkipsUnavailableAndUndecided(t *testing.T) {
	off := &stubDetector{name: "off", priority: 90, available: false, dark: false, ok: true}
	undecided := &stubDetector{name: "undecided", priority: 50, available: true, ok: false}
	last := &stubDetector{name: "last", priority: 1, available: true, dark: false, ok: true}

	pref := NewResolver(off, undecided, last).Resolve()
	assert.Equal(t, "last", pref.Source)
	assert.False(t, pref.PrefersDark)
}

func TestResolver_FallbackIsDark(t *testing.T) {
	r := NewResolver()
	assert.True(t, r.PrefersDark())
	assert.Equal(t, sourceFallback, r.Resolve().Source)
}

func TestResolver_ResolveCaches(t *testing.T) {
	d := &stubDetector{name: "d", available: true, dark: false, ok: true}
	r := NewResolver(d)
	assert.False(t, r.PrefersDark())

	d.dark = true
	assert.False(t, r.PrefersDark(), "Resolve does not query again")
	assert.True(t, r.Refresh().PrefersDark)
	assert.True(t, r.PrefersDark())
}

func TestResolver_OnChange(t *testing.T) {
	d := &stubDetector{name: "d", available: true, dark: false, ok: true}
	r := NewResolver(d)
	r.Resolve()

	var got []port.ColorSchemePreference
	unregister := r.OnChange(func(p port.ColorSchemePreference) { got = append(got, p) })

	r.Refresh()
	assert.Empty(t, got, "unchanged preference does not notify")

	d.dark = true
	r.Refresh()
	assert.Len(t, got, 1)
	assert.True(t, got[0].PrefersDark)

	unregister()
	d.dark = false
	r.Refresh()
	assert.Len(t, got, 1)
}

func TestResolver_ConcurrentAccess(t *testing.T) {
	r := NewResolver(&stubDetector{name: "d", available: true, dark: true, ok: true})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unregister := r.OnChange(func(port.ColorSchemePreference) {})
			r.Resolve()
			r.Refresh()
			unregister()
		}()
	}
	wg.Wait()
}

func TestEnvDetector(t *testing.T) {
	env := map[string]string{}
	d := &EnvDetector{getenv: func(k string) string { return env[k] }}

	assert.False(t, d.Available())
	_, ok := d.Detect()
	assert.False(t, ok)

	env["GTK_THEME"] = "Adwaita:dark"
	dark, ok := d.Detect()
	assert.True(t, ok)
	assert.True(t, dark)

	env["GTK_THEME"] = "Adwaita"
	dark, _ = d.Detect()
	assert.False(t, dark)
}

func TestParseGsettingsScheme(t *testing.T) {
	tests := []struct {
		out      string
		wantDark bool
		wantOK   bool
	}{
		{"'prefer-dark'\n", true, true},
		{"'prefer-light'\n", false, true},
		{"'default'\n", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		dark, ok := parseGsettingsScheme(tt.out)
		assert.Equal(t, tt.wantDark, dark, tt.out)
		assert.Equal(t, tt.wantOK, ok, tt.out)
	}
}

func TestGsettingsDetector_CommandFailure(t *testing.T) {
	d := &GsettingsDetector{run: func(context.Context) ([]byte, error) { return nil, errors.New("no dbus") }}
	_, ok := d.Detect()
	assert.False(t, ok)

	d.run = func(context.Context) ([]byte, error) { return []byte("'prefer-dark'"), nil }
	dark, ok := d.Detect()
	assert.True(t, ok)
	assert.True(t, dark)
}
