package cdp

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	cdpcore "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/bnema/moto/assets"
	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
)

const (
	defaultPageWidth  = 800
	defaultPageHeight = 600
	ackTimeout        = 5 * time.Second
)

// tab is one page target bound to a WebView.
type tab struct {
	id     entity.WebViewID
	ctx    context.Context
	cancel context.CancelFunc
	sink   port.CallbackSink
	pages  *Pages
	log    zerolog.Logger
	// forget removes the tab from the engine once the target is gone.
	forget func(entity.WebViewID)

	mu            sync.Mutex
	width, height int
	scale         float64
	visible       bool
	screencasting bool
	currentURL    string
	pointer       pointerState
	// internalDocs maps data: urls back to the moto: page they render.
	internalDocs map[string]string
	// hostRequests queues host script permission requests per kind.
	hostRequests map[entity.PermissionKind][]int64
	closing      bool
}

func newTab(ctx context.Context, id entity.WebViewID, sink port.CallbackSink, pages *Pages, log zerolog.Logger, forget func(entity.WebViewID)) *tab {
	tabCtx, cancel := chromedp.NewContext(ctx)
	t := &tab{
		id:           id,
		ctx:          tabCtx,
		cancel:       cancel,
		sink:         sink,
		pages:        pages,
		forget:       forget,
		log:          log.With().Uint64("webview_id", uint64(id)).Logger(),
		width:        defaultPageWidth,
		height:       defaultPageHeight,
		scale:        1,
		internalDocs: make(map[string]string),
		hostRequests: make(map[entity.PermissionKind][]int64),
	}
	chromedp.ListenTarget(tabCtx, t.onEvent)
	return t
}

// open creates the target and installs the bindings and host script.
func (t *tab) open() error {
	return chromedp.Run(t.ctx,
		page.Enable(),
		runtime.Enable(),
		runtime.AddBinding(hostBinding),
		runtime.AddBinding(ipcBinding),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(assets.HostScript).Do(ctx)
			return err
		}),
		emulation.SetFocusEmulationEnabled(true),
		emulation.SetDeviceMetricsOverride(defaultPageWidth, defaultPageHeight, 1, false),
	)
}

// do runs actions against this target under the dispatch context.
func (t *tab) do(ctx context.Context, actions ...chromedp.Action) error {
	c := chromedp.FromContext(t.ctx)
	if c == nil || c.Target == nil {
		return fmt.Errorf("%w: %s has no target", entity.ErrUnknownWebView, t.id)
	}
	ctx = cdpcore.WithExecutor(ctx, c.Target)
	for _, a := range actions {
		if err := a.Do(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (t *tab) navigate(ctx context.Context, rawURL string) error {
	target := rawURL
	content, mime, internal, err := t.pages.Render(ctx, rawURL)
	if err != nil {
		return err
	}
	if internal {
		target = dataURL(mime, content)
		t.mu.Lock()
		t.internalDocs[target] = rawURL
		t.mu.Unlock()
	}

	return t.do(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var res page.NavigateReturns
		if err := cdpcore.Execute(ctx, page.CommandNavigate, page.Navigate(target), &res); err != nil {
			return err
		}
		if res.ErrorText != "" {
			t.log.Debug().Str("url", rawURL).Str("error", res.ErrorText).Msg("navigation failed")
		}
		return nil
	}))
}

func (t *tab) traverse(ctx context.Context, delta int64) error {
	return t.do(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		current, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return err
		}
		next := current + delta
		if next < 0 || next >= int64(len(entries)) {
			return nil
		}
		return page.NavigateToHistoryEntry(entries[next].ID).Do(ctx)
	}))
}

func (t *tab) resize(ctx context.Context, width, height int, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	t.mu.Lock()
	t.width, t.height, t.scale = width, height, scale
	restart := t.visible
	t.mu.Unlock()

	cssW := int64(float64(width) / scale)
	cssH := int64(float64(height) / scale)
	if err := t.do(ctx, emulation.SetDeviceMetricsOverride(max(cssW, 1), max(cssH, 1), scale, false)); err != nil {
		return err
	}
	if restart {
		return t.startScreencast(ctx)
	}
	return nil
}

// setFocus toggles the page's view of keyboard focus. Frames keep flowing
// either way.
func (t *tab) setFocus(ctx context.Context, focused bool) error {
	return t.do(ctx, emulation.SetFocusEmulationEnabled(focused))
}

func (t *tab) setVisible(ctx context.Context, visible bool) error {
	t.mu.Lock()
	t.visible = visible
	t.mu.Unlock()

	if !visible {
		return t.stopScreencast(ctx)
	}
	if err := t.do(ctx, page.BringToFront()); err != nil {
		return err
	}
	return t.startScreencast(ctx)
}

// startScreencast (re)starts frame delivery at the current device size.
// Only the foreground tab is screencast.
func (t *tab) startScreencast(ctx context.Context) error {
	t.mu.Lock()
	w, h := t.width, t.height
	t.screencasting = true
	t.mu.Unlock()

	return t.do(ctx,
		page.StopScreencast(),
		page.StartScreencast().
			WithFormat(page.ScreencastFormatJpeg).
			WithQuality(screencastQuality).
			WithMaxWidth(int64(w)).
			WithMaxHeight(int64(h)).
			WithEveryNthFrame(1),
	)
}

func (t *tab) stopScreencast(ctx context.Context) error {
	t.mu.Lock()
	was := t.screencasting
	t.screencasting = false
	t.mu.Unlock()
	if !was {
		return nil
	}
	return t.do(ctx, page.StopScreencast())
}

func (t *tab) input(ctx context.Context, ev entity.InputEvent) error {
	t.mu.Lock()
	scale := t.scale
	t.mu.Unlock()

	return t.do(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return dispatchInput(ctx, ev, &t.pointer, scale)
	}))
}

func (t *tab) respondPermission(ctx context.Context, cmd entity.RespondPermissionCommand) error {
	switch cmd.Permission {
	case entity.PermissionAlert, entity.PermissionConfirm, entity.PermissionPrompt, entity.PermissionBeforeUnload:
		return t.do(ctx, page.HandleJavaScriptDialog(cmd.Allow).WithPromptText(cmd.Text))
	}

	t.mu.Lock()
	queue := t.hostRequests[cmd.Permission]
	if len(queue) == 0 {
		t.mu.Unlock()
		return fmt.Errorf("no pending %s request", cmd.Permission)
	}
	request := queue[0]
	t.hostRequests[cmd.Permission] = queue[1:]
	origin := originOf(t.currentURL)
	t.mu.Unlock()

	if cmd.Allow && origin != "" {
		if err := t.grant(ctx, cmd.Permission, origin); err != nil {
			t.log.Warn().Err(err).Str("permission", string(cmd.Permission)).Msg("failed to grant permission")
		}
	}
	return t.do(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, exc, err := runtime.Evaluate(resolveScript(request, cmd.Allow)).Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return fmt.Errorf("permission resolver failed: %s", exc.Text)
		}
		return nil
	}))
}

// grant lets the real web API succeed after the host script said yes.
func (t *tab) grant(ctx context.Context, kind entity.PermissionKind, origin string) error {
	var perms []browser.PermissionType
	switch kind {
	case entity.PermissionGeolocation:
		perms = []browser.PermissionType{browser.PermissionTypeGeolocation}
	case entity.PermissionNotifications:
		perms = []browser.PermissionType{browser.PermissionTypeNotifications}
	case entity.PermissionMedia:
		perms = []browser.PermissionType{browser.PermissionTypeAudioCapture, browser.PermissionTypeVideoCapture}
	default:
		return nil
	}
	c := chromedp.FromContext(t.ctx)
	if c == nil || c.Browser == nil {
		return errors.New("no browser")
	}
	return browser.GrantPermissions(perms).WithOrigin(origin).Do(cdpcore.WithExecutor(ctx, c.Browser))
}

// close tears the target down. Events arriving afterwards are ignored.
func (t *tab) close() error {
	t.mu.Lock()
	t.closing = true
	t.mu.Unlock()

	err := chromedp.Cancel(t.ctx)
	t.cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (t *tab) isClosing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closing
}

// onEvent runs on chromedp's event goroutine and must not block.
func (t *tab) onEvent(ev any) {
	if t.isClosing() {
		return
	}
	switch ev := ev.(type) {
	case *page.EventScreencastFrame:
		go t.deliverFrame(ev)
	case *page.EventFrameNavigated:
		if ev.Frame != nil && ev.Frame.ParentID == "" {
			t.committed(ev.Frame.URL)
		}
	case *page.EventNavigatedWithinDocument:
		if t.isMainFrame(ev.FrameID) {
			t.committed(ev.URL)
		}
	case *page.EventFrameStartedLoading:
		if t.isMainFrame(ev.FrameID) {
			t.sink.Deliver(entity.LoadStatusChanged{ID: t.id, Status: entity.LoadStarted, Progress: 0.1})
		}
	case *page.EventDomContentEventFired:
		t.sink.Deliver(entity.LoadStatusChanged{ID: t.id, Status: entity.LoadHeadParsed, Progress: 0.5})
	case *page.EventLoadEventFired:
		t.sink.Deliver(entity.LoadStatusChanged{ID: t.id, Status: entity.LoadComplete, Progress: 1})
	case *page.EventJavascriptDialogOpening:
		t.sink.Deliver(entity.PermissionRequested{ID: t.id, Permission: dialogPermission(ev.Type), Detail: ev.Message})
	case *runtime.EventBindingCalled:
		t.bindingCalled(ev)
	case *inspector.EventTargetCrashed:
		t.log.Warn().Msg("page crashed")
		go t.crashed()
	case *inspector.EventDetached:
		t.log.Debug().Str("reason", string(ev.Reason)).Msg("target detached")
		t.gone()
	}
}

func (t *tab) isMainFrame(id cdpcore.FrameID) bool {
	c := chromedp.FromContext(t.ctx)
	return c != nil && c.Target != nil && string(id) == string(c.Target.TargetID)
}

// committed reports a navigation and refreshes back/forward state.
func (t *tab) committed(raw string) {
	t.mu.Lock()
	if internal, ok := t.internalDocs[raw]; ok {
		raw = internal
	}
	t.currentURL = raw
	t.hostRequests = make(map[entity.PermissionKind][]int64)
	t.mu.Unlock()

	t.sink.Deliver(entity.URLChanged{ID: t.id, URL: raw})
	go t.refreshHistory()
}

func (t *tab) refreshHistory() {
	ctx, cancel := context.WithTimeout(t.ctx, ackTimeout)
	defer cancel()

	var current int64
	var count int
	err := t.do(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		idx, entries, err := page.GetNavigationHistory().Do(ctx)
		current, count = idx, len(entries)
		return err
	}))
	if err != nil {
		t.log.Debug().Err(err).Msg("failed to read navigation history")
		return
	}
	t.sink.Deliver(entity.HistoryChanged{
		ID:           t.id,
		CanGoBack:    current > 0,
		CanGoForward: current < int64(count)-1,
	})
}

func (t *tab) deliverFrame(ev *page.EventScreencastFrame) {
	img, err := decodeFrame(ev.Data)
	if err != nil {
		t.log.Debug().Err(err).Msg("dropping screencast frame")
	} else {
		t.sink.Deliver(entity.FrameReady{ID: t.id, Frame: img})
	}

	ctx, cancel := context.WithTimeout(t.ctx, ackTimeout)
	defer cancel()
	if err := t.do(ctx, page.ScreencastFrameAck(ev.SessionID)); err != nil && !t.isClosing() {
		t.log.Debug().Err(err).Msg("failed to ack screencast frame")
	}
}

func (t *tab) bindingCalled(ev *runtime.EventBindingCalled) {
	switch ev.Name {
	case ipcBinding:
		t.mu.Lock()
		from := t.currentURL
		t.mu.Unlock()
		t.sink.Deliver(entity.IPCMessage{ID: t.id, Data: []byte(ev.Payload), URL: from})
	case hostBinding:
		msg, err := parseHostMessage(ev.Payload)
		if err != nil {
			t.log.Debug().Err(err).Msg("ignoring host message")
			return
		}
		t.hostMessage(msg)
	}
}

func (t *tab) hostMessage(msg hostMessage) {
	switch msg.Type {
	case "title":
		t.sink.Deliver(entity.TitleChanged{ID: t.id, Title: msg.Title})
	case "status":
		t.sink.Deliver(entity.StatusTextChanged{ID: t.id, Text: msg.Text})
	case "open":
		t.sink.Deliver(entity.NewWebViewRequested{Opener: t.id, URL: msg.URL})
	case "permission":
		kind, ok := hostPermission(msg.Kind)
		if !ok {
			t.log.Debug().Str("kind", msg.Kind).Msg("unknown permission kind")
			return
		}
		t.mu.Lock()
		t.hostRequests[kind] = append(t.hostRequests[kind], msg.Request)
		t.mu.Unlock()
		t.sink.Deliver(entity.PermissionRequested{ID: t.id, Permission: kind})
	default:
		t.log.Debug().Str("type", msg.Type).Msg("unknown host message")
	}
}

// crashed replaces a dead renderer with the crash notice. The WebView
// stays; reloading from the notice brings the page back.
func (t *tab) crashed() {
	t.mu.Lock()
	lost := t.currentURL
	t.screencasting = false
	visible := t.visible
	t.mu.Unlock()
	if url.IsInternal(lost) {
		lost = ""
	}

	ctx, cancel := context.WithTimeout(t.ctx, ackTimeout)
	defer cancel()
	if err := t.navigate(ctx, url.CrashPage(lost)); err != nil {
		t.log.Warn().Err(err).Msg("failed to show crash notice")
		return
	}
	if visible {
		if err := t.startScreencast(ctx); err != nil {
			t.log.Debug().Err(err).Msg("failed to resume screencast after crash")
		}
	}
}

// gone reports a target that disappeared without a close request.
func (t *tab) gone() {
	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()
		return
	}
	t.closing = true
	t.mu.Unlock()

	t.cancel()
	t.forget(t.id)
	t.sink.Deliver(entity.Closed{ID: t.id})
}

func originOf(raw string) string {
	u, err := neturl.Parse(raw)
	if err != nil || u.Host == "" || !strings.HasPrefix(u.Scheme, "http") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
