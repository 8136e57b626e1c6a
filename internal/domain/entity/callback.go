package entity

import "image"

// CallbackKind tags an engine callback variant.
type CallbackKind int

const (
	CallbackLoadStatusChanged CallbackKind = iota
	CallbackTitleChanged
	CallbackURLChanged
	CallbackNewWebViewRequested
	CallbackPermissionRequested
	CallbackIPCMessage
	CallbackClosed
	CallbackEngineLost
	CallbackFrameReady
	CallbackHistoryChanged
	CallbackStatusTextChanged
	CallbackCreated
)

var callbackKindNames = [...]string{
	CallbackLoadStatusChanged:   "load-status-changed",
	CallbackTitleChanged:        "title-changed",
	CallbackURLChanged:          "url-changed",
	CallbackNewWebViewRequested: "new-webview-requested",
	CallbackPermissionRequested: "permission-requested",
	CallbackIPCMessage:          "ipc-message",
	CallbackClosed:              "closed",
	CallbackEngineLost:          "engine-lost",
	CallbackFrameReady:          "frame-ready",
	CallbackHistoryChanged:      "history-changed",
	CallbackStatusTextChanged:   "status-text-changed",
	CallbackCreated:             "created",
}

func (k CallbackKind) String() string {
	if int(k) < len(callbackKindNames) {
		return callbackKindNames[k]
	}
	return "unknown"
}

// Callback is an asynchronous notification from the engine. Source returns
// the originating WebView, or zero for process-global variants.
type Callback interface {
	Kind() CallbackKind
	Source() WebViewID
}

// LoadStatusChanged reports load progress in [0,1].
type LoadStatusChanged struct {
	ID       WebViewID
	Status   LoadStatus
	Progress float64
}

func (LoadStatusChanged) Kind() CallbackKind   { return CallbackLoadStatusChanged }
func (c LoadStatusChanged) Source() WebViewID { return c.ID }

// TitleChanged reports a new document title.
type TitleChanged struct {
	ID    WebViewID
	Title string
}

func (TitleChanged) Kind() CallbackKind   { return CallbackTitleChanged }
func (c TitleChanged) Source() WebViewID { return c.ID }

// URLChanged reports a committed navigation.
type URLChanged struct {
	ID  WebViewID
	URL string
}

func (URLChanged) Kind() CallbackKind   { return CallbackURLChanged }
func (c URLChanged) Source() WebViewID { return c.ID }

// NewWebViewRequested is advisory: a page asked to open url in a new tab.
// Opener is zero when the request is not tied to a page.
type NewWebViewRequested struct {
	Opener WebViewID
	URL    string
}

func (NewWebViewRequested) Kind() CallbackKind { return CallbackNewWebViewRequested }
func (NewWebViewRequested) Source() WebViewID  { return 0 }

// PermissionRequested asks the shell to allow or deny something.
// Answer with a RespondPermissionCommand.
type PermissionRequested struct {
	ID         WebViewID
	Permission PermissionKind
	Detail     string
}

func (PermissionRequested) Kind() CallbackKind   { return CallbackPermissionRequested }
func (c PermissionRequested) Source() WebViewID { return c.ID }

// IPCMessage is an opaque datagram posted by page script.
type IPCMessage struct {
	ID   WebViewID
	Data []byte
	// URL is the document that posted the message.
	URL  string
}

func (IPCMessage) Kind() CallbackKind   { return CallbackIPCMessage }
func (c IPCMessage) Source() WebViewID { return c.ID }

// Closed acknowledges teardown of a WebView.
type Closed struct {
	ID WebViewID
}

func (Closed) Kind() CallbackKind   { return CallbackClosed }
func (c Closed) Source() WebViewID { return c.ID }

// EngineLost is terminal. Err carries the cause when known.
type EngineLost struct {
	Err error
}

func (EngineLost) Kind() CallbackKind { return CallbackEngineLost }
func (EngineLost) Source() WebViewID  { return 0 }

// FrameReady carries a freshly painted page frame in device pixels.
type FrameReady struct {
	ID    WebViewID
	Frame image.Image
}

func (FrameReady) Kind() CallbackKind   { return CallbackFrameReady }
func (c FrameReady) Source() WebViewID { return c.ID }

// HistoryChanged reports back/forward availability.
type HistoryChanged struct {
	ID           WebViewID
	CanGoBack    bool
	CanGoForward bool
}

func (HistoryChanged) Kind() CallbackKind   { return CallbackHistoryChanged }
func (c HistoryChanged) Source() WebViewID { return c.ID }

// StatusTextChanged reports hovered-link text; empty clears it.
type StatusTextChanged struct {
	ID   WebViewID
	Text string
}

func (StatusTextChanged) Kind() CallbackKind   { return CallbackStatusTextChanged }
func (c StatusTextChanged) Source() WebViewID { return c.ID }

// Created acknowledges that the engine attached a page to the WebView.
type Created struct {
	ID WebViewID
}

func (Created) Kind() CallbackKind   { return CallbackCreated }
func (c Created) Source() WebViewID { return c.ID }
