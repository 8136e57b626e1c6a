package overlay

import "github.com/bnema/moto/internal/domain/entity"

// EventKind tags a toolbar or tab strip action.
type EventKind int

const (
	EventGo EventKind = iota
	EventBack
	EventForward
	EventReload
	EventStop
	EventNewWebView
	EventCloseWebView
	EventSelectWebView
	EventToggleBookmark
	// EventHistoryMenu asks for the entries of the history menu; answer
	// with ShowMenu.
	EventHistoryMenu
	EventQuit
)

var eventKindNames = [...]string{
	EventGo:             "go",
	EventBack:           "back",
	EventForward:        "forward",
	EventReload:         "reload",
	EventStop:           "stop",
	EventNewWebView:     "new-webview",
	EventCloseWebView:   "close-webview",
	EventSelectWebView:  "select-webview",
	EventToggleBookmark: "toggle-bookmark",
	EventHistoryMenu:    "history-menu",
	EventQuit:           "quit",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is raised by the overlay for the frame loop to act on.
type Event struct {
	Kind EventKind
	// ID targets a tab for close/select; zero means the active one.
	ID entity.WebViewID
	// Input is the raw location field text for EventGo.
	Input string
}

// MenuItem is one row of the history menu.
type MenuItem struct {
	Title string
	URL   string
}
