package entity

// Command is an instruction for the engine, addressed to one WebView.
type Command interface {
	Target() WebViewID
}

// CreateWebViewCommand asks the engine to create a page for a registry entry.
type CreateWebViewCommand struct {
	ID  WebViewID
	URL string
}

func (c CreateWebViewCommand) Target() WebViewID { return c.ID }

// NavigateCommand loads url in the WebView.
type NavigateCommand struct {
	ID  WebViewID
	URL string
}

func (c NavigateCommand) Target() WebViewID { return c.ID }

// ResizeCommand sets the content size in device pixels.
type ResizeCommand struct {
	ID     WebViewID
	Width  int
	Height int
	Scale  float64
}

func (c ResizeCommand) Target() WebViewID { return c.ID }

// SetFocusCommand gives or takes keyboard focus. It does not affect
// rendering.
type SetFocusCommand struct {
	ID      WebViewID
	Focused bool
}

func (c SetFocusCommand) Target() WebViewID { return c.ID }

// SetVisibleCommand moves a WebView to the foreground or background. Only a
// foreground WebView produces frames.
type SetVisibleCommand struct {
	ID      WebViewID
	Visible bool
}

func (c SetVisibleCommand) Target() WebViewID { return c.ID }

// CloseCommand requests teardown. The engine answers with Closed.
type CloseCommand struct {
	ID WebViewID
}

func (c CloseCommand) Target() WebViewID { return c.ID }

// ReloadCommand reloads the current page.
type ReloadCommand struct {
	ID WebViewID
}

func (c ReloadCommand) Target() WebViewID { return c.ID }

// StopCommand stops the current load.
type StopCommand struct {
	ID WebViewID
}

func (c StopCommand) Target() WebViewID { return c.ID }

// GoBackCommand traverses one entry back.
type GoBackCommand struct {
	ID WebViewID
}

func (c GoBackCommand) Target() WebViewID { return c.ID }

// GoForwardCommand traverses one entry forward.
type GoForwardCommand struct {
	ID WebViewID
}

func (c GoForwardCommand) Target() WebViewID { return c.ID }

// InputCommand forwards a translated input event in content coordinates.
type InputCommand struct {
	ID    WebViewID
	Event InputEvent
}

func (c InputCommand) Target() WebViewID { return c.ID }

// RespondPermissionCommand answers a PermissionRequested callback.
type RespondPermissionCommand struct {
	ID         WebViewID
	Permission PermissionKind
	Allow      bool
	// Text answers prompt dialogs.
	Text string
}

func (c RespondPermissionCommand) Target() WebViewID { return c.ID }
