package entity

import "errors"

var (
	// ErrUnknownWebView is returned when an operation references a WebView
	// that was never created or has already been closed.
	ErrUnknownWebView = errors.New("unknown webview")

	// ErrCreateFailed is returned when the engine could not back a new
	// WebView with a page. The identity is dead.
	ErrCreateFailed = errors.New("webview creation failed")

	// ErrPresentation is returned when the surface cannot accept a frame.
	// The caller must resize before presenting again.
	ErrPresentation = errors.New("surface unavailable for presentation")

	// ErrEngineLost is terminal: every WebView is gone and the engine
	// bridge must be restarted or the process must exit.
	ErrEngineLost = errors.New("engine lost")

	// ErrWindowClosed reports that the native window was closed by the user.
	ErrWindowClosed = errors.New("window closed")
)
