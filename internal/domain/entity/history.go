package entity

import "time"

// NavigationHistory is the back/forward stack of a WebView.
// Cursor indexes the current entry; -1 means nothing was visited yet.
type NavigationHistory struct {
	Entries []string
	Cursor  int
}

// NewNavigationHistory returns an empty history.
func NewNavigationHistory() NavigationHistory {
	return NavigationHistory{Cursor: -1}
}

// Current returns the url under the cursor.
func (h NavigationHistory) Current() string {
	if h.Cursor < 0 || h.Cursor >= len(h.Entries) {
		return ""
	}
	return h.Entries[h.Cursor]
}

// CanGoBack reports whether there is an entry before the cursor.
func (h NavigationHistory) CanGoBack() bool {
	return h.Cursor > 0
}

// CanGoForward reports whether there is an entry after the cursor.
func (h NavigationHistory) CanGoForward() bool {
	return h.Cursor >= 0 && h.Cursor < len(h.Entries)-1
}

// Observe records a url reported by the engine. A url matching the entry
// right before or after the cursor is treated as a traversal; anything else
// is a new visit that drops the forward entries.
func (h *NavigationHistory) Observe(url string) {
	if url == "" || url == h.Current() {
		return
	}
	switch {
	case h.CanGoBack() && h.Entries[h.Cursor-1] == url:
		h.Cursor--
	case h.CanGoForward() && h.Entries[h.Cursor+1] == url:
		h.Cursor++
	default:
		h.Entries = append(h.Entries[:h.Cursor+1], url)
		h.Cursor = len(h.Entries) - 1
	}
}

// Clone returns a deep copy.
func (h NavigationHistory) Clone() NavigationHistory {
	entries := make([]string, len(h.Entries))
	copy(entries, h.Entries)
	return NavigationHistory{Entries: entries, Cursor: h.Cursor}
}

// HistoryEntry is a persisted visit record.
type HistoryEntry struct {
	ID          int64
	URL         string
	Title       string
	VisitCount  int64
	LastVisited time.Time
}

// Bookmark is a saved url.
type Bookmark struct {
	ID        int64
	URL       string
	Title     string
	CreatedAt time.Time
}

// NewBookmark creates a bookmark for a url, defaulting the title to the url.
func NewBookmark(url, title string) *Bookmark {
	if title == "" {
		title = url
	}
	return &Bookmark{
		URL:       url,
		Title:     title,
		CreatedAt: time.Now(),
	}
}
