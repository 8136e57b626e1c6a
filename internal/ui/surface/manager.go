// Package surface owns the presentable surface and its recreate lifecycle.
package surface

import (
	"fmt"
	"image"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
)

// Manager tracks the backend surface's size, scale and validity. It is
// driven by the frame loop only.
type Manager struct {
	backend    port.SurfaceBackend
	width      int
	height     int
	scale      float64
	valid      bool
	generation uint64
}

// NewManager wraps backend. The surface starts invalid; call Resize before
// the first Present.
func NewManager(backend port.SurfaceBackend) *Manager {
	return &Manager{backend: backend, scale: 1}
}

// Resize recreates the surface when the size or scale changed since the
// last successful call, or when the surface is invalid. A zero-area size
// leaves the surface invalid and returns entity.ErrPresentation.
func (m *Manager) Resize(width, height int, scale float64) (bool, error) {
	if scale <= 0 {
		scale = 1
	}
	if width <= 0 || height <= 0 {
		m.valid = false
		m.width, m.height, m.scale = width, height, scale
		return false, fmt.Errorf("resize to %dx%d: %w", width, height, entity.ErrPresentation)
	}
	if m.valid && width == m.width && height == m.height && scale == m.scale {
		return false, nil
	}

	if err := m.backend.Create(width, height, scale); err != nil {
		m.valid = false
		return false, fmt.Errorf("create surface %dx%d@%.2f: %v: %w", width, height, scale, err, entity.ErrPresentation)
	}
	m.width, m.height, m.scale = width, height, scale
	m.valid = true
	m.generation++
	return true, nil
}

// Present submits frame. It fails fast while the surface is invalid; a
// backend failure invalidates the surface.
func (m *Manager) Present(frame image.Image) error {
	if !m.valid {
		return entity.ErrPresentation
	}
	if err := m.backend.Present(frame); err != nil {
		m.valid = false
		return fmt.Errorf("present: %v: %w", err, entity.ErrPresentation)
	}
	return nil
}

// Invalidate marks the surface unusable until the next successful Resize.
func (m *Manager) Invalidate() {
	m.valid = false
}

// Destroy releases the backend surface.
func (m *Manager) Destroy() {
	m.valid = false
	m.backend.Destroy()
}

// Size returns the last requested size in device pixels.
func (m *Manager) Size() entity.Size {
	return entity.Size{Width: m.width, Height: m.height}
}

// Scale returns the device scale factor.
func (m *Manager) Scale() float64 { return m.scale }

// Valid reports whether Present can succeed.
func (m *Manager) Valid() bool { return m.valid }

// Generation counts recreations.
func (m *Manager) Generation() uint64 { return m.generation }
