package port

// ColorSchemePreference is the desktop's light or dark preference.
type ColorSchemePreference struct {
	PrefersDark bool
	// Source names the detector that answered, or "fallback".
	Source string
}

// ColorSchemeDetector reads one source of the desktop color scheme.
type ColorSchemeDetector interface {
	Name() string

	// Priority orders detectors; higher runs first.
	Priority() int

	// Available reports whether the source can be queried at all.
	Available() bool

	// Detect returns the preference; ok is false when the source has no opinion.
	Detect() (prefersDark, ok bool)
}
