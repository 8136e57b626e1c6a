package entity

import (
	"strconv"
	"time"
)

// WebViewID identifies a WebView for the lifetime of the process.
// Zero is never allocated and means "no webview".
type WebViewID uint64

// String returns the decimal id.
func (id WebViewID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// LoadStatus is the coarse page load state.
type LoadStatus int

const (
	// LoadIdle means nothing has been loaded yet.
	LoadIdle LoadStatus = iota
	// LoadStarted means navigation has begun.
	LoadStarted
	// LoadHeadParsed means the document head is available.
	LoadHeadParsed
	// LoadComplete means the page finished loading.
	LoadComplete
)

// String returns a human-readable representation of the status.
func (s LoadStatus) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadStarted:
		return "started"
	case LoadHeadParsed:
		return "head-parsed"
	case LoadComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Visibility tells whether a WebView is the one shown in the window.
type Visibility int

const (
	Background Visibility = iota
	Foreground
)

// DefaultTabLabel is shown for tabs with neither title nor url.
const DefaultTabLabel = "New Tab"

// WebView is the shell's logical record of one tab. Page pixels and layout
// belong to the engine; this only mirrors what the engine reported.
type WebView struct {
	ID         WebViewID
	URL        string
	Title      string
	Progress   float64
	Status     LoadStatus
	StatusText string
	Visibility Visibility
	History    NavigationHistory

	// Engine-reported traversal ability; falls back to History when unknown.
	CanGoBack    bool
	CanGoForward bool
	historyKnown bool

	// Closing is set when a close was requested and the engine has not
	// acknowledged teardown yet.
	Closing bool

	// Rect is the last content rectangle sent to the engine.
	Rect Rect

	CreatedAt time.Time
}

// NewWebView creates a record for a freshly requested WebView.
func NewWebView(id WebViewID, initialURL string) *WebView {
	return &WebView{
		ID:        id,
		URL:       initialURL,
		History:   NewNavigationHistory(),
		CreatedAt: time.Now(),
	}
}

// Label returns the tab label: title, else url, else DefaultTabLabel.
func (w *WebView) Label() string {
	if w.Title != "" {
		return w.Title
	}
	if w.URL != "" {
		return w.URL
	}
	return DefaultTabLabel
}

// IsLoading reports whether a load is in flight.
func (w *WebView) IsLoading() bool {
	return w.Status == LoadStarted || w.Status == LoadHeadParsed
}

// BackAvailable reports whether back navigation is possible.
func (w *WebView) BackAvailable() bool {
	if w.historyKnown {
		return w.CanGoBack
	}
	return w.History.CanGoBack()
}

// ForwardAvailable reports whether forward navigation is possible.
func (w *WebView) ForwardAvailable() bool {
	if w.historyKnown {
		return w.CanGoForward
	}
	return w.History.CanGoForward()
}

func (w *WebView) clone() WebView {
	c := *w
	c.History = w.History.Clone()
	return c
}
