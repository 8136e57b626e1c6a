package coordinator

import (
	"context"
	"fmt"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

// pollCallbacks applies everything the engine reported since the last
// iteration, in order.
func (c *Coordinator) pollCallbacks(ctx context.Context) error {
	for cb := range c.bridge.PollCallbacks() {
		if err := c.applyCallback(ctx, cb); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) applyCallback(ctx context.Context, cb entity.Callback) error {
	log := logging.FromContext(ctx).With().
		Str("callback", cb.Kind().String()).
		Uint64("webview_id", uint64(cb.Source())).
		Logger()

	switch v := cb.(type) {
	case entity.EngineLost:
		c.lostURLs = c.lostURLs[:0]
		for _, wv := range c.registry.List() {
			if wv.URL != "" && !wv.Closing {
				c.lostURLs = append(c.lostURLs, wv.URL)
			}
		}
		c.registry.Clear()
		clear(c.frames)
		c.lastActive = 0
		c.pageDirty = true
		c.damaged = true
		if v.Err != nil {
			return fmt.Errorf("%w: %v", entity.ErrEngineLost, v.Err)
		}
		return entity.ErrEngineLost

	case entity.Closed:
		c.forget(ctx, v.ID)
		if v.ID == c.lastActive {
			c.lastActive = 0
		}
		log.Debug().Msg("webview closed")

	case entity.Created:
		log.Trace().Msg("webview attached")

	case entity.NewWebViewRequested:
		if !c.settings.AllowPopups {
			log.Debug().Str("url", v.URL).Msg("popup blocked")
			return nil
		}
		c.OpenWebView(ctx, v.URL)

	case entity.FrameReady:
		if !c.live(v.ID) || v.Frame == nil {
			log.Trace().Msg("stale frame dropped")
			return nil
		}
		c.frames[v.ID] = v.Frame
		if v.ID == c.registry.ActiveID() {
			c.pageDirty = true
			c.damaged = true
		}

	case entity.PermissionRequested:
		if !c.live(v.ID) {
			log.Trace().Msg("stale permission request dropped")
			return nil
		}
		c.send(ctx, c.permissions.Answer(ctx, v))

	case entity.IPCMessage:
		if !c.live(v.ID) {
			return nil
		}
		if c.ipc == nil {
			log.Debug().Int("bytes", len(v.Data)).Msg("ipc message without handler")
			return nil
		}
		c.ipc.HandleIPC(logging.WithWebViewID(ctx, uint64(v.ID)), v)

	case entity.URLChanged:
		if !c.registry.UpdateFromCallback(cb) {
			log.Trace().Msg("stale callback dropped")
			return nil
		}
		c.damaged = true
		if c.history != nil {
			wv, _ := c.registry.Get(v.ID)
			if err := c.history.Record(ctx, v.URL, wv.Title); err != nil {
				log.Warn().Err(err).Str("url", v.URL).Msg("history not recorded")
			}
		}

	case entity.TitleChanged:
		if !c.registry.UpdateFromCallback(cb) {
			log.Trace().Msg("stale callback dropped")
			return nil
		}
		c.damaged = true
		if c.history != nil {
			wv, _ := c.registry.Get(v.ID)
			if err := c.history.UpdateTitle(ctx, wv.URL, v.Title); err != nil {
				log.Debug().Err(err).Msg("history title not updated")
			}
		}

	default:
		if !c.registry.UpdateFromCallback(cb) {
			log.Trace().Msg("stale callback dropped")
			return nil
		}
		c.damaged = true
	}
	return nil
}

// live reports whether id is known and not closing.
func (c *Coordinator) live(id entity.WebViewID) bool {
	wv, ok := c.registry.Get(id)
	return ok && !wv.Closing
}
