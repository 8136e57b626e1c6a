package coordinator

import (
	"context"
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/overlay"
)

const titleSuffix = " - moto"

// updateOverlay runs the single layout pass of the frame.
func (c *Coordinator) updateOverlay(ctx context.Context) {
	views := c.registry.List()
	state := overlay.State{
		Tabs:   make([]overlay.TabState, 0, len(views)),
		Active: c.registry.ActiveID(),
	}
	for i := range views {
		wv := &views[i]
		state.Tabs = append(state.Tabs, overlay.TabState{
			ID:      wv.ID,
			Label:   wv.Label(),
			Loading: wv.IsLoading(),
		})
	}

	title := "moto"
	if wv, ok := c.registry.Active(); ok {
		state.URL = wv.URL
		state.Status = wv.Status
		state.Progress = wv.Progress
		state.StatusText = wv.StatusText
		state.CanBack = wv.BackAvailable()
		state.CanForward = wv.ForwardAvailable()
		state.Bookmarked = c.isBookmarked(ctx, wv.URL)
		title = wv.Label() + titleSuffix
	}
	c.overlay.Update(state)

	if c.title != nil && title != c.lastTitle {
		c.title.SetTitle(title)
		c.lastTitle = title
	}
}

func (c *Coordinator) isBookmarked(ctx context.Context, rawURL string) bool {
	if c.bookmarks == nil || rawURL == "" || url.IsInternal(rawURL) {
		return false
	}
	if rawURL == c.bookmarkURL {
		return c.bookmarked
	}
	ok, err := c.bookmarks.IsBookmarked(ctx, rawURL)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("bookmark lookup failed")
		return false
	}
	c.bookmarkURL = rawURL
	c.bookmarked = ok
	return ok
}

// present composites the page layer and the overlay, then hands the canvas
// to the surface. Presentation failures are recovered on the next iteration.
func (c *Coordinator) present(ctx context.Context) {
	log := logging.FromContext(ctx)

	if !c.visible && !c.needsResize {
		return
	}
	if c.needsResize || !c.surface.Valid() {
		win, scale := c.translator.Window(), c.translator.Scale()
		w, h := deviceSize(win, scale)
		recreated, err := c.surface.Resize(w, h, scale)
		if err != nil {
			log.Debug().Err(err).Msg("surface resize failed, retrying next frame")
			c.needsResize = true
			return
		}
		c.needsResize = false
		if recreated {
			c.damaged = true
			c.pageDirty = true
			log.Debug().Int("width", w).Int("height", h).Float64("scale", scale).
				Uint64("generation", c.surface.Generation()).Msg("surface recreated")
		}
	}
	if !c.damaged && !c.pageDirty {
		return
	}

	size := c.surface.Size()
	if c.canvas == nil || c.canvas.Bounds().Dx() != size.Width || c.canvas.Bounds().Dy() != size.Height {
		c.canvas = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
		c.pageDirty = true
	}

	r := c.translator.ContentRect()
	content := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(c.canvas.Bounds())
	if c.pageDirty {
		c.composePage(content.Size())
		c.pageDirty = false
	}
	if c.pageLayer != nil {
		draw.Draw(c.canvas, content, c.pageLayer, image.Point{}, draw.Src)
	}
	c.overlay.Paint(c.canvas, content, c.translator.Scale())

	if err := c.surface.Present(c.canvas); err != nil {
		if errors.Is(err, entity.ErrPresentation) {
			log.Debug().Err(err).Msg("present skipped, surface will be recreated")
			c.needsResize = true
			return
		}
		log.Warn().Err(err).Msg("present failed")
		return
	}
	c.damaged = false
}

// composePage renders the active WebView's newest frame into the page layer.
// It only runs when something invalidated the layer; a view that has not
// painted yet shows a blank page.
func (c *Coordinator) composePage(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		c.pageLayer = nil
		return
	}
	if c.pageLayer == nil || c.pageLayer.Bounds().Size() != size {
		c.pageLayer = image.NewRGBA(image.Rectangle{Max: size})
	}
	dst := c.pageLayer.Bounds()

	frame, ok := c.frames[c.registry.ActiveID()]
	if !ok {
		draw.Draw(c.pageLayer, dst, image.NewUniform(color.White), image.Point{}, draw.Src)
		return
	}
	src := frame.Bounds()
	if src.Size() == size {
		draw.Draw(c.pageLayer, dst, frame, src.Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(c.pageLayer, dst, frame, src, draw.Src, nil)
}

func deviceSize(win entity.Size, scale float64) (int, int) {
	return int(float64(win.Width)*scale + 0.5), int(float64(win.Height)*scale + 0.5)
}
