package entity

import "fmt"

// Registry tracks live WebViews in tab display order and the single active
// one. It is owned by the frame loop and is not safe for concurrent use.
//
// After closing the active WebView, focus moves to the tab that followed it
// in insertion order, or to the one before it when it was the last tab.
type Registry struct {
	views  map[WebViewID]*WebView
	order  []WebViewID
	active WebViewID
	nextID WebViewID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[WebViewID]*WebView),
	}
}

// Create appends a WebView and returns its identity. Focus only changes
// when the registry was empty.
func (r *Registry) Create(initialURL string) WebViewID {
	r.nextID++
	id := r.nextID
	wv := NewWebView(id, initialURL)
	r.views[id] = wv
	r.order = append(r.order, id)
	if r.active == 0 {
		r.activate(id)
	}
	return id
}

// Close drops the WebView. Call it once the engine acknowledged teardown.
func (r *Registry) Close(id WebViewID) error {
	if _, ok := r.views[id]; !ok {
		return fmt.Errorf("close %d: %w", id, ErrUnknownWebView)
	}
	idx := r.indexOf(id)
	delete(r.views, id)
	r.order = append(r.order[:idx], r.order[idx+1:]...)

	if r.active != id {
		return nil
	}
	r.active = 0
	switch {
	case len(r.order) == 0:
	case idx < len(r.order):
		r.activate(r.order[idx])
	default:
		r.activate(r.order[len(r.order)-1])
	}
	return nil
}

// MarkClosing flags a pending close. Further callbacks for the WebView are
// ignored until Close.
func (r *Registry) MarkClosing(id WebViewID) error {
	wv, ok := r.views[id]
	if !ok {
		return fmt.Errorf("mark closing %d: %w", id, ErrUnknownWebView)
	}
	wv.Closing = true
	return nil
}

// SetActive focuses id.
func (r *Registry) SetActive(id WebViewID) error {
	if _, ok := r.views[id]; !ok {
		return fmt.Errorf("activate %d: %w", id, ErrUnknownWebView)
	}
	r.activate(id)
	return nil
}

func (r *Registry) activate(id WebViewID) {
	if prev, ok := r.views[r.active]; ok {
		prev.Visibility = Background
	}
	r.active = id
	if wv, ok := r.views[id]; ok {
		wv.Visibility = Foreground
	}
}

// UpdateFromCallback applies the navigation fields a callback carries.
// It returns false when the callback was ignored: unknown or closing
// identities (stale callbacks) and variants that carry no registry state.
func (r *Registry) UpdateFromCallback(cb Callback) bool {
	wv, ok := r.views[cb.Source()]
	if !ok || wv.Closing {
		return false
	}
	switch c := cb.(type) {
	case TitleChanged:
		wv.Title = c.Title
	case URLChanged:
		wv.URL = c.URL
		wv.History.Observe(c.URL)
	case LoadStatusChanged:
		wv.Status = c.Status
		wv.Progress = clampProgress(c.Progress)
		if c.Status == LoadComplete {
			wv.Progress = 1
		}
	case HistoryChanged:
		wv.CanGoBack = c.CanGoBack
		wv.CanGoForward = c.CanGoForward
		wv.historyKnown = true
	case StatusTextChanged:
		wv.StatusText = c.Text
	default:
		return false
	}
	return true
}

func clampProgress(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// SetRect records the content rect last sent to the engine and reports
// whether it changed.
func (r *Registry) SetRect(id WebViewID, rect Rect) (bool, error) {
	wv, ok := r.views[id]
	if !ok {
		return false, fmt.Errorf("set rect %d: %w", id, ErrUnknownWebView)
	}
	if wv.Rect == rect {
		return false, nil
	}
	wv.Rect = rect
	return true, nil
}

// Move places id at position pos in the tab order.
func (r *Registry) Move(id WebViewID, pos int) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("move %d: %w", id, ErrUnknownWebView)
	}
	if pos < 0 || pos >= len(r.order) {
		return fmt.Errorf("move %d: position %d out of range", id, pos)
	}
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	r.order = append(r.order[:pos], append([]WebViewID{id}, r.order[pos:]...)...)
	return nil
}

// Clear drops every entry. Used when the engine is lost.
func (r *Registry) Clear() {
	r.views = make(map[WebViewID]*WebView)
	r.order = nil
	r.active = 0
}

// Get returns a snapshot of the WebView.
func (r *Registry) Get(id WebViewID) (WebView, bool) {
	wv, ok := r.views[id]
	if !ok {
		return WebView{}, false
	}
	return wv.clone(), true
}

// Contains reports whether id is live.
func (r *Registry) Contains(id WebViewID) bool {
	_, ok := r.views[id]
	return ok
}

// ActiveID returns the focused identity, or zero when there is none.
func (r *Registry) ActiveID() WebViewID {
	return r.active
}

// Active returns a snapshot of the focused WebView.
func (r *Registry) Active() (WebView, bool) {
	return r.Get(r.active)
}

// Len returns the number of live WebViews.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns identities in display order.
func (r *Registry) IDs() []WebViewID {
	ids := make([]WebViewID, len(r.order))
	copy(ids, r.order)
	return ids
}

// List returns snapshots in display order.
func (r *Registry) List() []WebView {
	out := make([]WebView, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.views[id].clone())
	}
	return out
}

func (r *Registry) indexOf(id WebViewID) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}
