package input

import "github.com/bnema/moto/internal/domain/entity"

// Capture is the overlay's claim on input for the current frame.
type Capture struct {
	// Pointer is set while the pointer is over the chrome or a drag started there.
	Pointer bool
	// Keyboard is set while an overlay text field has focus.
	Keyboard bool
}

// Routed tells where one translated event goes.
type Routed struct {
	Event   entity.InputEvent
	Overlay bool
	// Page is the WebView receiving the event, zero when none.
	Page entity.WebViewID
}

// Dropped reports whether nobody receives the event.
func (r Routed) Dropped() bool {
	return !r.Overlay && r.Page == 0
}

// Router decides between the overlay and the active page.
type Router struct {
	shortcuts ShortcutTable
}

// NewRouter creates a router. Key presses bound in shortcuts always go to
// the overlay.
func NewRouter(shortcuts ShortcutTable) *Router {
	return &Router{shortcuts: shortcuts}
}

// SetShortcuts replaces the shortcut table.
func (r *Router) SetShortcuts(shortcuts ShortcutTable) {
	r.shortcuts = shortcuts
}

// Route sends ev to exactly one layer. Resize, Close and Focus reach both
// the overlay and the active page.
func (r *Router) Route(ev entity.InputEvent, capture Capture, active entity.WebViewID) Routed {
	out := Routed{Event: ev}

	switch {
	case ev.Kind == entity.InputResize, ev.Kind == entity.InputClose, ev.Kind == entity.InputFocus:
		out.Overlay = true
		out.Page = active
	case ev.Kind.IsPointer():
		if capture.Pointer || isNavigationButton(ev) {
			out.Overlay = true
		} else {
			out.Page = active
		}
	case ev.Kind.IsKeyboard():
		if capture.Keyboard || r.isShortcut(ev) {
			out.Overlay = true
		} else {
			out.Page = active
		}
	}
	return out
}

func (r *Router) isShortcut(ev entity.InputEvent) bool {
	if ev.Kind != entity.InputKey {
		return false
	}
	action, _ := r.shortcuts.Lookup(ev.Key)
	return action != ActionNone
}

func isNavigationButton(ev entity.InputEvent) bool {
	return ev.Kind == entity.InputPointerButton &&
		(ev.Button == entity.MouseBack || ev.Button == entity.MouseForward)
}
