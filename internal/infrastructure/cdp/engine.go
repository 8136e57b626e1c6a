// Package cdp drives a Chromium process over the DevTools protocol and
// exposes it as a port.Engine. Pages render headless; the foreground page is
// screencast and its frames are delivered as entity.FrameReady callbacks.
package cdp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

// Config configures the Chromium process.
type Config struct {
	// ExecPath overrides the browser binary. Empty searches PATH.
	ExecPath string
	// RemoteURL attaches to a running browser instead of launching one.
	RemoteURL string
	// Flags are extra command line switches, "name=value" or "name".
	Flags []string
	// ProfileDir holds cookies, cache and local storage.
	ProfileDir string
	// Pages renders the moto: pages. Required.
	Pages *Pages
}

// Engine implements port.Engine on top of chromedp.
type Engine struct {
	cfg Config
	log zerolog.Logger

	mu            sync.Mutex
	sink          port.CallbackSink
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	tabs          map[entity.WebViewID]*tab
	started       bool
	shuttingDown  bool
}

var _ port.Engine = (*Engine)(nil)

// New validates cfg. Nothing is launched until Start.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.Pages == nil {
		return nil, errors.New("cdp engine requires pages")
	}
	log := logging.FromContext(logging.WithComponent(ctx, "cdp"))
	return &Engine{
		cfg:  cfg,
		log:  *log,
		tabs: make(map[entity.WebViewID]*tab),
	}, nil
}

// allocatorOptions turns Config into exec allocator options.
func (e *Engine) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.NoFirstRun, chromedp.NoDefaultBrowserCheck)
	if e.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ExecPath))
	}
	if e.cfg.ProfileDir != "" {
		opts = append(opts, chromedp.UserDataDir(e.cfg.ProfileDir))
	}
	for _, f := range e.cfg.Flags {
		name, value, hasValue := strings.Cut(strings.TrimLeft(strings.TrimSpace(f), "-"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			opts = append(opts, chromedp.Flag(name, value))
		} else {
			opts = append(opts, chromedp.Flag(name, true))
		}
	}
	return opts
}

// Start launches (or attaches to) the browser and watches the connection.
func (e *Engine) Start(ctx context.Context, sink port.CallbackSink) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return errors.New("engine already started")
	}
	e.started = true
	e.sink = sink
	e.mu.Unlock()

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if e.cfg.RemoteURL != "" {
		e.log.Info().Str("url", e.cfg.RemoteURL).Msg("attaching to remote browser")
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.WithoutCancel(ctx), e.cfg.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.WithoutCancel(ctx), e.allocatorOptions()...)
	}
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) { e.log.Debug().Msgf(format, args...) }),
		chromedp.WithErrorf(func(format string, args ...any) { e.log.Warn().Msgf(format, args...) }),
	)

	// The first Run allocates the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("failed to start browser: %w", err)
	}

	e.mu.Lock()
	e.allocCtx, e.allocCancel = allocCtx, allocCancel
	e.browserCtx, e.browserCancel = browserCtx, browserCancel
	e.mu.Unlock()

	go e.watch(ctx, browserCtx)
	e.log.Info().Msg("browser started")
	return nil
}

// watch reports a lost browser once, unless we are the ones closing it.
func (e *Engine) watch(ctx, browserCtx context.Context) {
	var lost <-chan struct{}
	if c := chromedp.FromContext(browserCtx); c != nil && c.Browser != nil {
		lost = c.Browser.LostConnection
	}
	select {
	case <-lost:
	case <-browserCtx.Done():
	case <-ctx.Done():
		return
	}

	e.mu.Lock()
	quiet := e.shuttingDown
	e.mu.Unlock()
	if quiet {
		return
	}
	e.log.Error().Msg("browser connection lost")
	e.sink.Deliver(entity.EngineLost{Err: entity.ErrEngineLost})
}

// Dispatch executes one command against its target page.
func (e *Engine) Dispatch(ctx context.Context, cmd entity.Command) error {
	if create, ok := cmd.(entity.CreateWebViewCommand); ok {
		return e.create(ctx, create)
	}

	t, err := e.lookup(cmd.Target())
	if err != nil {
		return err
	}
	switch c := cmd.(type) {
	case entity.NavigateCommand:
		return t.navigate(ctx, c.URL)
	case entity.ResizeCommand:
		return t.resize(ctx, c.Width, c.Height, c.Scale)
	case entity.SetFocusCommand:
		return t.setFocus(ctx, c.Focused)
	case entity.SetVisibleCommand:
		return t.setVisible(ctx, c.Visible)
	case entity.ReloadCommand:
		return t.do(ctx, page.Reload())
	case entity.StopCommand:
		return t.do(ctx, page.StopLoading())
	case entity.GoBackCommand:
		return t.traverse(ctx, -1)
	case entity.GoForwardCommand:
		return t.traverse(ctx, 1)
	case entity.InputCommand:
		return t.input(ctx, c.Event)
	case entity.RespondPermissionCommand:
		return t.respondPermission(ctx, c)
	case entity.CloseCommand:
		return e.close(t)
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}

func (e *Engine) create(ctx context.Context, cmd entity.CreateWebViewCommand) error {
	e.mu.Lock()
	if e.browserCtx == nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: engine not started", entity.ErrEngineLost)
	}
	if _, exists := e.tabs[cmd.ID]; exists {
		e.mu.Unlock()
		return fmt.Errorf("webview %s already has a page", cmd.ID)
	}
	browserCtx, sink := e.browserCtx, e.sink
	e.mu.Unlock()

	t := newTab(browserCtx, cmd.ID, sink, e.cfg.Pages, e.log, e.forget)
	if err := t.open(); err != nil {
		t.cancel()
		return fmt.Errorf("%w: failed to open page: %w", entity.ErrCreateFailed, err)
	}

	e.mu.Lock()
	e.tabs[cmd.ID] = t
	e.mu.Unlock()

	e.log.Debug().Uint64("webview_id", uint64(cmd.ID)).Msg("page created")
	sink.Deliver(entity.Created{ID: cmd.ID})
	if cmd.URL == "" {
		return nil
	}
	return t.navigate(ctx, cmd.URL)
}

func (e *Engine) lookup(id entity.WebViewID) (*tab, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownWebView, id)
	}
	return t, nil
}

func (e *Engine) forget(id entity.WebViewID) {
	e.mu.Lock()
	delete(e.tabs, id)
	e.mu.Unlock()
}

func (e *Engine) close(t *tab) error {
	e.forget(t.id)
	err := t.close()
	e.sink.Deliver(entity.Closed{ID: t.id})
	if err != nil {
		return fmt.Errorf("failed to close page: %w", err)
	}
	return nil
}

// Shutdown closes every page and then the browser.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.shuttingDown {
		e.mu.Unlock()
		return nil
	}
	e.shuttingDown = true
	tabs := make([]*tab, 0, len(e.tabs))
	for _, t := range e.tabs {
		tabs = append(tabs, t)
	}
	e.tabs = make(map[entity.WebViewID]*tab)
	browserCtx, browserCancel, allocCancel := e.browserCtx, e.browserCancel, e.allocCancel
	e.mu.Unlock()

	var errs []error
	for _, t := range tabs {
		if err := t.close(); err != nil {
			errs = append(errs, err)
		}
	}
	if browserCtx != nil {
		done := make(chan error, 1)
		go func() { done <- chromedp.Cancel(browserCtx) }()
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
			}
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
		}
		browserCancel()
	}
	if allocCancel != nil {
		allocCancel()
	}
	e.log.Info().Int("pages", len(tabs)).Msg("browser shut down")
	return errors.Join(errs...)
}
