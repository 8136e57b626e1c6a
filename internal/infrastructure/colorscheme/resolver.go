// Package colorscheme detects whether the desktop prefers a dark theme.
// The configured appearance.color_scheme wins over everything here; this
// package only answers for "default".
package colorscheme

import (
	"slices"
	"sync"

	"github.com/bnema/moto/internal/application/port"
)

const sourceFallback = "fallback"

// Resolver asks its detectors in priority order and remembers the answer.
type Resolver struct {
	mu        sync.Mutex
	detectors []port.ColorSchemeDetector
	current   port.ColorSchemePreference
	resolved  bool
	listeners map[int]func(port.ColorSchemePreference)
	nextID    int
}

// NewResolver sorts detectors by priority, highest first.
func NewResolver(detectors ...port.ColorSchemeDetector) *Resolver {
	sorted := slices.Clone(detectors)
	slices.SortStableFunc(sorted, func(a, b port.ColorSchemeDetector) int {
		return b.Priority() - a.Priority()
	})
	return &Resolver{
		detectors: sorted,
		current:   port.ColorSchemePreference{PrefersDark: true, Source: sourceFallback},
		listeners: make(map[int]func(port.ColorSchemePreference)),
	}
}

// NewSystemResolver checks GTK_THEME, then gsettings.
func NewSystemResolver() *Resolver {
	return NewResolver(NewEnvDetector(), NewGsettingsDetector())
}

func (r *Resolver) detect() port.ColorSchemePreference {
	for _, d := range r.detectors {
		if !d.Available() {
			continue
		}
		if dark, ok := d.Detect(); ok {
			return port.ColorSchemePreference{PrefersDark: dark, Source: d.Name()}
		}
	}
	return port.ColorSchemePreference{PrefersDark: true, Source: sourceFallback}
}

// Resolve returns the cached preference, detecting on first use.
func (r *Resolver) Resolve() port.ColorSchemePreference {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.resolved {
		r.current = r.detect()
		r.resolved = true
	}
	return r.current
}

// PrefersDark is Resolve reduced to a bool, the shape overlay.ResolveColorScheme wants.
func (r *Resolver) PrefersDark() bool {
	return r.Resolve().PrefersDark
}

// Refresh detects again and notifies listeners when the answer flipped.
func (r *Resolver) Refresh() port.ColorSchemePreference {
	r.mu.Lock()
	next := r.detect()
	changed := r.resolved && next.PrefersDark != r.current.PrefersDark
	r.current, r.resolved = next, true
	var listeners []func(port.ColorSchemePreference)
	if changed {
		for _, fn := range r.listeners {
			listeners = append(listeners, fn)
		}
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// OnChange registers fn and returns a function removing it.
func (r *Resolver) OnChange(fn func(port.ColorSchemePreference)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}
