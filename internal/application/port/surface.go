package port

//go:generate mockgen -source=surface.go -destination=mocks/mock_surface.go -package=mock_port

import "image"

// SurfaceBackend is a presentable surface bound to a native window.
type SurfaceBackend interface {
	// Create (re)allocates the surface for the given device pixel size.
	Create(width, height int, scale float64) error

	// Present shows a composited frame.
	Present(frame image.Image) error

	// Destroy releases the surface. It is safe to call more than once.
	Destroy()
}

// Window is a native window hosting the surface.
type Window interface {
	SurfaceBackend

	// SetTitle updates the window title.
	SetTitle(title string)
}
