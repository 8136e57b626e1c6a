package coordinator

import (
	"context"
	"errors"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/overlay"
)

// drainEvents translates and routes every queued native event in order,
// then turns the overlay's events into commands.
func (c *Coordinator) drainEvents(ctx context.Context) error {
	log := logging.FromContext(ctx)
	var closed bool

	for _, native := range c.queue.Drain() {
		if native.Kind == entity.NativeVisibility {
			c.setVisible(ctx, native.Visible)
			continue
		}
		ev, ok := c.translator.Translate(native)
		if !ok {
			continue
		}
		c.damaged = true

		if ev.Kind == entity.InputResize {
			c.needsResize = true
			c.pageDirty = true
			c.overlay.SetGeometry(ev.Size.Width, c.translator.ChromeHeight())
		}

		c.overlay.TrackPointer(ev)
		routed := c.router.Route(ev, c.overlay.Capture(), c.registry.ActiveID())
		if routed.Overlay {
			c.overlay.HandleInput(ev)
		} else {
			c.overlay.PageInput(ev)
		}

		if routed.Page != 0 {
			c.forwardToPage(ctx, routed.Page, ev)
		}

		if ev.Kind == entity.InputClose {
			closed = true
			break
		}
		if err := c.handleOverlayEvents(ctx); err != nil {
			return err
		}
	}

	if closed {
		log.Debug().Msg("close requested")
		return entity.ErrWindowClosed
	}
	return nil
}

func (c *Coordinator) setVisible(ctx context.Context, visible bool) {
	if visible == c.visible {
		return
	}
	c.visible = visible
	logging.FromContext(ctx).Debug().Bool("visible", visible).Msg("window visibility changed")
	if visible {
		c.damaged = true
	}
	if active := c.registry.ActiveID(); active != 0 {
		c.send(ctx, entity.SetVisibleCommand{ID: active, Visible: visible})
	}
}

// forwardToPage sends page-bound input. Resize is handled by syncActive
// and window focus maps onto SetFocus, which leaves frames flowing.
func (c *Coordinator) forwardToPage(ctx context.Context, id entity.WebViewID, ev entity.InputEvent) {
	switch ev.Kind {
	case entity.InputResize, entity.InputClose:
		return
	case entity.InputFocus:
		c.send(ctx, entity.SetFocusCommand{ID: id, Focused: ev.Focused})
		return
	}
	if wv, ok := c.registry.Get(id); !ok || wv.Closing {
		return
	}
	c.send(ctx, entity.InputCommand{ID: id, Event: ev})
}

func (c *Coordinator) handleOverlayEvents(ctx context.Context) error {
	var quit bool
	for _, e := range c.overlay.Events() {
		if c.handleOverlayEvent(ctx, e) {
			quit = true
		}
	}
	if quit {
		return entity.ErrWindowClosed
	}
	return nil
}

// handleOverlayEvent converts one toolbar event into registry changes and
// engine commands. It reports whether the user asked to quit.
func (c *Coordinator) handleOverlayEvent(ctx context.Context, e overlay.Event) bool {
	log := logging.FromContext(ctx)
	active := c.registry.ActiveID()
	c.damaged = true

	switch e.Kind {
	case overlay.EventGo:
		target := url.LocationBarInputToURL(e.Input, c.settings.SearchEngine)
		if target == "" {
			return false
		}
		if active == 0 {
			c.OpenWebView(ctx, target)
			return false
		}
		log.Debug().Str("input", e.Input).Str("url", target).Msg("location submitted")
		c.send(ctx, entity.NavigateCommand{ID: active, URL: target})
	case overlay.EventBack:
		if active != 0 {
			c.send(ctx, entity.GoBackCommand{ID: active})
		}
	case overlay.EventForward:
		if active != 0 {
			c.send(ctx, entity.GoForwardCommand{ID: active})
		}
	case overlay.EventReload:
		if active != 0 {
			c.send(ctx, entity.ReloadCommand{ID: active})
		}
	case overlay.EventStop:
		if active != 0 {
			c.send(ctx, entity.StopCommand{ID: active})
		}
	case overlay.EventNewWebView:
		c.OpenWebView(ctx, c.settings.NewTabURL)
	case overlay.EventCloseWebView:
		c.CloseWebView(ctx, e.ID)
	case overlay.EventSelectWebView:
		if err := c.registry.SetActive(e.ID); err != nil {
			log.Debug().Err(err).Msg("select ignored")
		}
	case overlay.EventToggleBookmark:
		c.toggleBookmark(ctx)
	case overlay.EventHistoryMenu:
		c.showHistoryMenu(ctx)
	case overlay.EventQuit:
		return true
	}
	return false
}

// historyMenuSize is how many recent entries the history menu lists.
const historyMenuSize = 12

func (c *Coordinator) showHistoryMenu(ctx context.Context) {
	var items []overlay.MenuItem
	if c.history != nil {
		entries, err := c.history.Recent(ctx, historyMenuSize, 0)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("history menu unavailable")
		}
		for _, e := range entries {
			items = append(items, overlay.MenuItem{Title: e.Title, URL: e.URL})
		}
	}
	c.overlay.ShowMenu(items)
}

func (c *Coordinator) toggleBookmark(ctx context.Context) {
	wv, ok := c.registry.Active()
	if !ok || c.bookmarks == nil || wv.URL == "" || url.IsInternal(wv.URL) {
		return
	}
	added, err := c.bookmarks.Toggle(ctx, wv.URL, wv.Title)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.FromContext(ctx).Warn().Err(err).Str("url", wv.URL).Msg("bookmark toggle failed")
		}
		return
	}
	c.bookmarkURL = wv.URL
	c.bookmarked = added
}
