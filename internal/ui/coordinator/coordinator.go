// Package coordinator drives one frame of the shell: input in, engine
// callbacks applied, overlay laid out, page composited and presented.
package coordinator

import (
	"context"
	"errors"
	"image"
	"iter"
	"sync"
	"time"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/input"
	"github.com/bnema/moto/internal/ui/overlay"
	"github.com/bnema/moto/internal/ui/surface"
)

const (
	defaultFrameInterval       = 16 * time.Millisecond
	defaultHiddenFrameInterval = 250 * time.Millisecond
)

// Bridge is the engine boundary the coordinator talks to.
type Bridge interface {
	Send(cmd entity.Command) error
	PollCallbacks() iter.Seq[entity.Callback]
}

// TitleSetter receives the active tab label.
type TitleSetter interface {
	SetTitle(title string)
}

// Settings are the reloadable knobs.
type Settings struct {
	ChromeHeight        int
	AllowPopups         bool
	SearchEngine        string
	NewTabURL           string
	FrameInterval       time.Duration
	HiddenFrameInterval time.Duration
	Palette             overlay.Palette
	Shortcuts           input.ShortcutTable
}

// Config holds the collaborators of a Coordinator.
type Config struct {
	Queue      *input.Queue
	Translator *input.Translator
	Router     *input.Router
	Overlay    *overlay.Overlay
	Registry   *entity.Registry
	Bridge     Bridge
	Surface    *surface.Manager

	// Optional.
	Permissions *usecase.HandlePermissionUseCase
	History     *usecase.HistoryUseCase
	Bookmarks   *usecase.ManageBookmarksUseCase
	IPC         port.IPCHandler
	Title       TitleSetter

	Settings Settings
}

// Coordinator is single-threaded: every method except Apply must run on
// the thread that owns the window.
type Coordinator struct {
	queue       *input.Queue
	translator  *input.Translator
	router      *input.Router
	overlay     *overlay.Overlay
	registry    *entity.Registry
	bridge      Bridge
	surface     *surface.Manager
	permissions *usecase.HandlePermissionUseCase
	history     *usecase.HistoryUseCase
	bookmarks   *usecase.ManageBookmarksUseCase
	ipc         port.IPCHandler
	title       TitleSetter

	settings Settings

	pendingMu       sync.Mutex
	pendingSettings *Settings

	visible     bool
	needsResize bool
	damaged     bool

	frames     map[entity.WebViewID]image.Image
	pageLayer  *image.RGBA
	pageDirty  bool
	canvas     *image.RGBA
	lastActive entity.WebViewID
	lastTitle  string

	bookmarkURL string
	bookmarked  bool

	// urls that were open when the engine was lost
	lostURLs []string
}

// New creates a coordinator. The surface is resized on the first iteration.
func New(ctx context.Context, cfg Config) *Coordinator {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating frame coordinator")

	c := &Coordinator{
		queue:       cfg.Queue,
		translator:  cfg.Translator,
		router:      cfg.Router,
		overlay:     cfg.Overlay,
		registry:    cfg.Registry,
		bridge:      cfg.Bridge,
		surface:     cfg.Surface,
		permissions: cfg.Permissions,
		history:     cfg.History,
		bookmarks:   cfg.Bookmarks,
		ipc:         cfg.IPC,
		title:       cfg.Title,
		settings:    normalizeSettings(cfg.Settings),
		visible:     true,
		needsResize: true,
		damaged:     true,
		frames:      make(map[entity.WebViewID]image.Image),
	}
	if c.permissions == nil {
		c.permissions = usecase.NewHandlePermissionUseCase(entity.PermissionPolicy{})
	}
	return c
}

func normalizeSettings(s Settings) Settings {
	if s.FrameInterval <= 0 {
		s.FrameInterval = defaultFrameInterval
	}
	if s.HiddenFrameInterval <= 0 {
		s.HiddenFrameInterval = defaultHiddenFrameInterval
	}
	if s.SearchEngine == "" {
		s.SearchEngine = url.DefaultSearchEngine
	}
	if s.NewTabURL == "" {
		s.NewTabURL = url.NewTabURL
	}
	if s.ChromeHeight < 0 {
		s.ChromeHeight = 0
	}
	return s
}

// Apply schedules new settings for the next iteration. Safe to call from
// any goroutine.
func (c *Coordinator) Apply(s Settings) {
	s = normalizeSettings(s)
	c.pendingMu.Lock()
	c.pendingSettings = &s
	c.pendingMu.Unlock()
}

func (c *Coordinator) applyPending(ctx context.Context) {
	c.pendingMu.Lock()
	next := c.pendingSettings
	c.pendingSettings = nil
	c.pendingMu.Unlock()
	if next == nil {
		return
	}

	prev := c.settings
	c.settings = *next
	logging.FromContext(ctx).Debug().
		Int("chrome_height", next.ChromeHeight).
		Bool("allow_popups", next.AllowPopups).
		Msg("settings applied")

	if next.ChromeHeight != prev.ChromeHeight {
		c.translator.SetChromeHeight(next.ChromeHeight)
		c.overlay.SetGeometry(c.translator.Window().Width, next.ChromeHeight)
		c.pageDirty = true
	}
	if next.Palette != (overlay.Palette{}) && next.Palette != prev.Palette {
		c.overlay.SetPalette(next.Palette)
	}
	if next.Shortcuts != nil {
		c.router.SetShortcuts(next.Shortcuts)
		c.overlay.SetShortcuts(next.Shortcuts)
	}
	c.damaged = true
}

// LostURLs returns the urls that were open when EngineLost arrived, in tab
// order.
func (c *Coordinator) LostURLs() []string {
	return append([]string(nil), c.lostURLs...)
}

// Visible reports whether the window was last reported visible.
func (c *Coordinator) Visible() bool { return c.visible }

// Interval is the delay before the next iteration, longer while hidden.
func (c *Coordinator) Interval() time.Duration {
	if c.visible {
		return c.settings.FrameInterval
	}
	return c.settings.HiddenFrameInterval
}

// Iterate runs one frame. It returns entity.ErrWindowClosed when the user
// closed the window and entity.ErrEngineLost when the engine died; every
// other failure is logged and retried on the next iteration.
func (c *Coordinator) Iterate(ctx context.Context) error {
	c.applyPending(ctx)

	if err := c.drainEvents(ctx); err != nil {
		return err
	}
	if err := c.pollCallbacks(ctx); err != nil {
		return err
	}
	c.syncActive(ctx)
	c.updateOverlay(ctx)
	c.present(ctx)
	return nil
}

// Run iterates until ctx ends, the window closes, or the engine is lost.
// Only ErrEngineLost is returned.
func (c *Coordinator) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("frame loop stopped")
			return nil
		case <-timer.C:
		}

		if err := c.Iterate(ctx); err != nil {
			if errors.Is(err, entity.ErrWindowClosed) {
				log.Info().Msg("window closed")
				return nil
			}
			return err
		}
		timer.Reset(c.Interval())
	}
}

// OpenWebView creates a WebView, asks the engine for it and focuses it.
func (c *Coordinator) OpenWebView(ctx context.Context, rawURL string) entity.WebViewID {
	id := c.registry.Create(rawURL)
	log := logging.FromContext(ctx).With().Uint64("webview_id", uint64(id)).Logger()

	if err := c.bridge.Send(entity.CreateWebViewCommand{ID: id, URL: rawURL}); err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("create webview not sent")
	}
	if err := c.registry.SetActive(id); err != nil {
		log.Debug().Err(err).Msg("activate new webview")
	}
	log.Debug().Str("url", rawURL).Msg("webview opened")
	c.damaged = true
	return id
}

// Navigate loads rawURL in an existing WebView. Must be called from the
// coordinator goroutine, e.g. from an IPC handler.
func (c *Coordinator) Navigate(ctx context.Context, id entity.WebViewID, rawURL string) {
	if _, ok := c.registry.Get(id); !ok {
		logging.FromContext(ctx).Debug().Uint64("webview_id", uint64(id)).Msg("navigate ignored")
		return
	}
	c.send(ctx, entity.NavigateCommand{ID: id, URL: rawURL})
}

// CloseWebView requests teardown. The entry stays in the registry until the
// engine acknowledges with Closed.
func (c *Coordinator) CloseWebView(ctx context.Context, id entity.WebViewID) {
	log := logging.FromContext(ctx).With().Uint64("webview_id", uint64(id)).Logger()
	if err := c.registry.MarkClosing(id); err != nil {
		log.Debug().Err(err).Msg("close ignored")
		return
	}
	err := c.bridge.Send(entity.CloseCommand{ID: id})
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrUnknownWebView):
		// The engine already forgot it; nothing will acknowledge.
		c.forget(ctx, id)
	default:
		log.Warn().Err(err).Msg("close not sent")
	}
	c.damaged = true
}

func (c *Coordinator) forget(ctx context.Context, id entity.WebViewID) {
	if err := c.registry.Close(id); err != nil {
		logging.FromContext(ctx).Trace().Err(err).Msg("forget webview")
	}
	delete(c.frames, id)
	c.damaged = true
}

// syncActive keeps engine focus and the active content size in step with
// the registry.
func (c *Coordinator) syncActive(ctx context.Context) {
	active := c.registry.ActiveID()
	if active != c.lastActive {
		if c.lastActive != 0 && c.registry.Contains(c.lastActive) {
			c.send(ctx, entity.SetFocusCommand{ID: c.lastActive, Focused: false})
			c.send(ctx, entity.SetVisibleCommand{ID: c.lastActive, Visible: false})
		}
		if active != 0 {
			c.send(ctx, entity.SetVisibleCommand{ID: active, Visible: c.visible})
			c.send(ctx, entity.SetFocusCommand{ID: active, Focused: true})
		}
		c.lastActive = active
		c.pageDirty = true
		c.damaged = true
	}
	if active == 0 {
		return
	}

	rect := c.translator.ContentRect()
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	changed, err := c.registry.SetRect(active, rect)
	if err != nil || !changed {
		return
	}
	c.send(ctx, entity.ResizeCommand{
		ID:     active,
		Width:  rect.Width,
		Height: rect.Height,
		Scale:  c.translator.Scale(),
	})
}

func (c *Coordinator) send(ctx context.Context, cmd entity.Command) {
	if err := c.bridge.Send(cmd); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Uint64("webview_id", uint64(cmd.Target())).Msg("command dropped")
	}
}
