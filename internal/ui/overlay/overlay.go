// Package overlay draws the browser chrome (tab strip, toolbar, location
// field, status text) over the page and turns input on it into events.
package overlay

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/domain/url"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/input"
)

// TabState is the overlay's view of one WebView.
type TabState struct {
	ID      entity.WebViewID
	Label   string
	Loading bool
}

// State is everything the overlay shows, rebuilt from the registry each frame.
type State struct {
	Tabs       []TabState
	Active     entity.WebViewID
	URL        string
	Status     entity.LoadStatus
	Progress   float64
	StatusText string
	CanBack    bool
	CanForward bool
	Bookmarked bool
}

// Overlay is single-threaded; the frame loop owns it.
type Overlay struct {
	ctx       context.Context
	palette   Palette
	colors    colors
	shortcuts input.ShortcutTable

	width        int // logical
	chromeHeight int // logical

	state    State
	layout   layout
	location LocationField

	pointer      entity.Point
	pointerIn    bool
	dragInChrome bool
	// pageButtons holds the buttons pressed on the page and not yet released.
	pageButtons uint8
	hoverTab    int

	menu      []MenuItem
	menuOpen  bool
	hoverMenu int

	events []Event
	chrome *image.RGBA
	dirty  bool
}

// New creates an overlay for a window width in logical pixels.
func New(ctx context.Context, width, chromeHeight int, palette Palette, shortcuts input.ShortcutTable) *Overlay {
	o := &Overlay{
		ctx:       ctx,
		shortcuts: shortcuts,
		hoverTab:  -1,
		hoverMenu: -1,
	}
	o.SetPalette(palette)
	o.SetGeometry(width, chromeHeight)
	return o
}

// SetPalette changes the colors.
func (o *Overlay) SetPalette(p Palette) {
	o.palette = p
	o.colors = p.colors()
	o.dirty = true
}

// SetShortcuts replaces the shortcut table.
func (o *Overlay) SetShortcuts(t input.ShortcutTable) {
	o.shortcuts = t
}

// SetGeometry changes the logical window width and chrome height.
func (o *Overlay) SetGeometry(width, chromeHeight int) {
	if width == o.width && chromeHeight == o.chromeHeight {
		return
	}
	o.width = max(0, width)
	o.chromeHeight = max(0, chromeHeight)
	o.relayout()
}

// ChromeHeight returns the logical height of the chrome.
func (o *Overlay) ChromeHeight() int { return o.chromeHeight }

// Location exposes the location field.
func (o *Overlay) Location() *LocationField { return &o.location }

// Update runs the layout pass for a new state.
func (o *Overlay) Update(s State) {
	tabsChanged := len(s.Tabs) != len(o.state.Tabs)
	if s.Active != o.state.Active {
		o.location.Revert(s.URL)
		if s.Active != 0 && (s.URL == "" || s.URL == url.NewTabURL) {
			o.location.Focus()
		}
	}
	o.state = s
	o.location.SetURL(s.URL)
	if tabsChanged {
		o.relayout()
	}
	o.dirty = true
}

func (o *Overlay) relayout() {
	o.layout = computeLayout(o.width, o.chromeHeight, len(o.state.Tabs))
	o.dirty = true
}

// Capture reports which device classes the overlay claims. A drag that
// started on the page keeps the pointer on the page until its last button
// is released, wherever the pointer goes.
func (o *Overlay) Capture() input.Capture {
	return input.Capture{
		Pointer:  o.pageButtons == 0 && (o.dragInChrome || (o.pointerIn && (o.inChrome(o.pointer) || o.menuIndex(o.pointer) >= 0))),
		Keyboard: o.location.Focused(),
	}
}

func (o *Overlay) inChrome(p entity.Point) bool {
	return p.Y >= 0 && p.Y < float64(o.chromeHeight) && p.X >= 0 && p.X < float64(o.width)
}

// ShowMenu opens the history menu with items, most recent first.
func (o *Overlay) ShowMenu(items []MenuItem) {
	o.menu = items
	o.menuOpen = true
	o.hoverMenu = -1
	o.dirty = true
}

// CloseMenu hides the history menu.
func (o *Overlay) CloseMenu() {
	if o.menuOpen {
		o.menuOpen = false
		o.hoverMenu = -1
		o.dirty = true
	}
}

// MenuOpen reports whether the history menu is showing.
func (o *Overlay) MenuOpen() bool { return o.menuOpen }

func (o *Overlay) menuRows() []image.Rectangle {
	if !o.menuOpen {
		return nil
	}
	// An empty menu still shows its placeholder row.
	return o.layout.menuRows(max(len(o.menu), 1))
}

// menuIndex returns the menu row under p, or -1.
func (o *Overlay) menuIndex(p entity.Point) int {
	return menuAt(o.menuRows(), toPoint(p))
}

func (o *Overlay) toggleMenu() {
	if o.menuOpen {
		o.CloseMenu()
		return
	}
	o.emit(Event{Kind: EventHistoryMenu})
}

// Events drains raised events.
func (o *Overlay) Events() []Event {
	out := o.events
	o.events = nil
	return out
}

func (o *Overlay) emit(e Event) {
	logging.FromContext(o.ctx).Trace().Str("event", e.Kind.String()).Uint64("webview_id", uint64(e.ID)).Msg("overlay event")
	o.events = append(o.events, e)
}

// TrackPointer records the position of a pointer event before it is
// routed, so Capture reflects the event itself.
func (o *Overlay) TrackPointer(ev entity.InputEvent) {
	if ev.Kind.IsPointer() {
		o.pointer = ev.Window
		o.pointerIn = o.pointer.X >= 0 && o.pointer.Y >= 0
	}
}

// PageInput observes an event that went to the page. Clicking the page
// takes keyboard focus from the location field.
func (o *Overlay) PageInput(ev entity.InputEvent) {
	if ev.Kind != entity.InputPointerButton {
		return
	}
	bit := uint8(1) << uint(ev.Button)
	if !ev.Pressed {
		o.pageButtons &^= bit
		return
	}
	o.pageButtons |= bit
	o.CloseMenu()
	if o.location.Focused() {
		o.location.Blur()
		o.dirty = true
	}
}

// HandleInput processes an event routed to the overlay.
func (o *Overlay) HandleInput(ev entity.InputEvent) {
	switch ev.Kind {
	case entity.InputPointerMove:
		o.pointer = ev.Window
		o.pointerIn = true
		o.updateHover()
	case entity.InputPointerButton:
		o.pointer = ev.Window
		o.pointerIn = true
		o.handleButton(ev)
	case entity.InputKey:
		if ev.Pressed {
			o.handleKey(ev.Key)
		}
	case entity.InputText:
		if o.location.Focused() {
			o.location.Insert(ev.Text)
			o.dirty = true
		}
	case entity.InputResize:
		o.SetGeometry(ev.Size.Width, o.chromeHeight)
	case entity.InputFocus:
		if !ev.Focused {
			o.dragInChrome = false
			o.pageButtons = 0
			o.CloseMenu()
		}
	case entity.InputClose:
		o.location.Blur()
	}
}

func (o *Overlay) updateHover() {
	idx, _ := o.layout.tabAt(toPoint(o.pointer))
	if idx != o.hoverTab {
		o.hoverTab = idx
		o.dirty = true
	}
	if row := o.menuIndex(o.pointer); row != o.hoverMenu {
		o.hoverMenu = row
		o.dirty = true
	}
}

func toPoint(p entity.Point) image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

func (o *Overlay) handleButton(ev entity.InputEvent) {
	switch ev.Button {
	case entity.MouseBack:
		if ev.Pressed {
			o.emit(Event{Kind: EventBack})
		}
		return
	case entity.MouseForward:
		if ev.Pressed {
			o.emit(Event{Kind: EventForward})
		}
		return
	}

	if !ev.Pressed {
		o.dragInChrome = false
		return
	}
	if row := o.menuIndex(ev.Window); row >= 0 {
		o.dragInChrome = true
		if ev.Button == entity.MouseLeft && row < len(o.menu) {
			o.emit(Event{Kind: EventGo, Input: o.menu[row].URL})
		}
		o.CloseMenu()
		return
	}
	if o.menuOpen && !toPoint(ev.Window).In(o.layout.history) {
		o.CloseMenu()
	}
	if !o.inChrome(ev.Window) {
		o.location.Blur()
		o.dirty = true
		return
	}
	o.dragInChrome = true

	p := toPoint(ev.Window)
	if ev.Button == entity.MouseMiddle {
		if idx, _ := o.layout.tabAt(p); idx >= 0 {
			o.emit(Event{Kind: EventCloseWebView, ID: o.state.Tabs[idx].ID})
		}
		return
	}
	if ev.Button != entity.MouseLeft {
		return
	}

	if !p.In(o.layout.location) && o.location.Focused() {
		o.location.Blur()
	}
	o.dirty = true

	switch {
	case p.In(o.layout.location):
		if !o.location.Focused() {
			o.location.Focus()
		} else {
			col := (p.X - o.layout.location.Min.X - padding + cellWidth/2) / cellWidth
			o.location.MoveCursor(col)
		}
	case p.In(o.layout.newTab):
		o.emit(Event{Kind: EventNewWebView})
	case p.In(o.layout.back):
		if o.state.CanBack {
			o.emit(Event{Kind: EventBack})
		}
	case p.In(o.layout.forward):
		if o.state.CanForward {
			o.emit(Event{Kind: EventForward})
		}
	case p.In(o.layout.reload):
		if isLoading(o.state.Status) {
			o.emit(Event{Kind: EventStop})
		} else {
			o.emit(Event{Kind: EventReload})
		}
	case p.In(o.layout.bookmark):
		o.emit(Event{Kind: EventToggleBookmark})
	case p.In(o.layout.history):
		o.toggleMenu()
	default:
		if idx, onClose := o.layout.tabAt(p); idx >= 0 {
			id := o.state.Tabs[idx].ID
			if onClose {
				o.emit(Event{Kind: EventCloseWebView, ID: id})
			} else if id != o.state.Active {
				o.emit(Event{Kind: EventSelectWebView, ID: id})
			}
		}
	}
}

func isLoading(s entity.LoadStatus) bool {
	return s == entity.LoadStarted || s == entity.LoadHeadParsed
}

func (o *Overlay) handleKey(k entity.Key) {
	action, idx := o.shortcuts.Lookup(k)
	if action != input.ActionNone && o.handleAction(action, idx) {
		o.dirty = true
		return
	}
	if !o.location.Focused() {
		return
	}

	o.dirty = true
	switch k.Name {
	case "Enter":
		raw := o.location.Submit()
		if raw != "" {
			o.emit(Event{Kind: EventGo, Input: raw})
		}
	case "Escape":
		o.location.Revert(o.state.URL)
	case "Backspace":
		o.location.Backspace()
	case "Delete":
		o.location.Delete()
	case "ArrowLeft":
		o.location.MoveCursor(o.location.Cursor() - 1)
	case "ArrowRight":
		o.location.MoveCursor(o.location.Cursor() + 1)
	case "Home":
		o.location.MoveCursor(0)
	case "End":
		o.location.MoveCursor(len([]rune(o.location.Text())))
	}
}

// handleAction runs a shortcut. It returns false for shortcuts that should
// fall through to the focused location field.
func (o *Overlay) handleAction(action input.Action, idx int) bool {
	switch action {
	case input.ActionFocusLocation:
		o.location.Focus()
	case input.ActionNewTab:
		o.emit(Event{Kind: EventNewWebView})
	case input.ActionCloseTab:
		if o.state.Active != 0 {
			o.emit(Event{Kind: EventCloseWebView, ID: o.state.Active})
		}
	case input.ActionNextTab, input.ActionPreviousTab:
		step := 1
		if action == input.ActionPreviousTab {
			step = -1
		}
		if id, ok := o.neighbour(step); ok {
			o.emit(Event{Kind: EventSelectWebView, ID: id})
		}
	case input.ActionSwitchTab:
		if idx >= 0 && idx < len(o.state.Tabs) {
			o.emit(Event{Kind: EventSelectWebView, ID: o.state.Tabs[idx].ID})
		}
	case input.ActionReload:
		o.emit(Event{Kind: EventReload})
	case input.ActionStop:
		if o.location.Focused() {
			return false
		}
		o.emit(Event{Kind: EventStop})
	case input.ActionGoBack:
		if o.location.Focused() {
			return false
		}
		o.emit(Event{Kind: EventBack})
	case input.ActionGoForward:
		if o.location.Focused() {
			return false
		}
		o.emit(Event{Kind: EventForward})
	case input.ActionBookmark:
		o.emit(Event{Kind: EventToggleBookmark})
	case input.ActionHistory:
		o.toggleMenu()
	case input.ActionOpenFile:
		o.location.Prompt(fileURLPrefix())
		o.dirty = true
	case input.ActionQuit:
		o.emit(Event{Kind: EventQuit})
	default:
		return false
	}
	return true
}

func (o *Overlay) neighbour(step int) (entity.WebViewID, bool) {
	n := len(o.state.Tabs)
	if n < 2 {
		return 0, false
	}
	for i, t := range o.state.Tabs {
		if t.ID == o.state.Active {
			return o.state.Tabs[(i+step+n)%n].ID, true
		}
	}
	return 0, false
}

// Paint draws the chrome at the top of dst and the status text at the
// bottom-left of content. dst is in device pixels; scale maps logical to
// device pixels.
func (o *Overlay) Paint(dst *image.RGBA, content image.Rectangle, scale float64) {
	if o.width == 0 || o.chromeHeight == 0 {
		return
	}
	if o.dirty || o.chrome == nil || o.chrome.Bounds().Dx() != o.width || o.chrome.Bounds().Dy() != o.chromeHeight {
		o.chrome = o.renderChrome()
		o.dirty = false
	}

	target := image.Rect(0, 0, int(math.Round(float64(o.width)*scale)), int(math.Round(float64(o.chromeHeight)*scale)))
	if scale == 1 {
		draw.Draw(dst, target, o.chrome, image.Point{}, draw.Src)
	} else {
		draw.NearestNeighbor.Scale(dst, target, o.chrome, o.chrome.Bounds(), draw.Src, nil)
	}

	if o.state.StatusText != "" {
		o.paintStatus(dst, content, scale)
	}
	if o.menuOpen {
		o.paintMenu(dst, scale)
	}
}

func (o *Overlay) renderChrome() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, o.width, o.chromeHeight))
	c := o.colors
	l := o.layout

	fill(img, l.tabStrip, c.background)
	fill(img, l.toolbar, c.surface)
	fill(img, image.Rect(0, o.chromeHeight-1, o.width, o.chromeHeight), c.border)

	for i, r := range l.tabs {
		tab := o.state.Tabs[i]
		bg, fg := c.background, c.muted
		switch {
		case tab.ID == o.state.Active:
			bg, fg = c.surface, c.text
		case i == o.hoverTab:
			bg = c.surfaceVariant
		}
		fill(img, r.Inset(1), bg)
		fill(img, image.Rect(r.Max.X-1, r.Min.Y+padding, r.Max.X, r.Max.Y-padding), c.border)

		labelArea := image.Rect(r.Min.X+padding*2, r.Min.Y, l.closeBoxes[i].Min.X-padding, r.Max.Y)
		cols := min(MaxLabelColumns, fitColumns(labelArea.Dx()))
		drawText(img, labelArea, image.Pt(labelArea.Min.X, centerY(r)), TruncateLabel(tab.Label, cols), fg)
		drawText(img, l.closeBoxes[i], image.Pt(l.closeBoxes[i].Min.X+4, centerY(r)), "x", c.muted)

		if tab.Loading {
			fill(img, image.Rect(r.Min.X+1, r.Max.Y-2, r.Max.X-1, r.Max.Y), c.accent)
		}
	}
	drawText(img, l.newTab, image.Pt(l.newTab.Min.X+10, centerY(l.newTab)), "+", c.text)

	o.paintButton(img, l.back, "<", o.state.CanBack)
	o.paintButton(img, l.forward, ">", o.state.CanForward)
	if isLoading(o.state.Status) {
		o.paintButton(img, l.reload, "x", true)
	} else {
		o.paintButton(img, l.reload, "R", o.state.Active != 0)
	}

	o.paintLocation(img)

	o.paintButton(img, l.history, "H", true)

	star, starColor := "☆", c.muted
	if o.state.Bookmarked {
		star, starColor = "★", c.accent
	}
	drawText(img, l.bookmark, image.Pt(l.bookmark.Min.X+10, centerY(l.bookmark)), star, starColor)
	return img
}

func (o *Overlay) paintButton(img *image.RGBA, r image.Rectangle, glyph string, enabled bool) {
	fg := o.colors.muted
	if enabled {
		fg = o.colors.text
	}
	fill(img, r, o.colors.surfaceVariant)
	drawText(img, r, image.Pt(r.Min.X+(r.Dx()-textWidth(glyph))/2, centerY(r)), glyph, fg)
}

func (o *Overlay) paintLocation(img *image.RGBA) {
	c := o.colors
	r := o.layout.location
	if r.Empty() {
		return
	}
	fill(img, r, c.surfaceVariant)
	if o.location.Focused() {
		outline(img, r, c.accent)
	}

	inner := r.Inset(padding)
	text := o.location.Text()
	if o.location.Selected() {
		fill(img, image.Rect(inner.Min.X, inner.Min.Y, min(inner.Max.X, inner.Min.X+textWidth(text)), inner.Max.Y), c.accent)
	}
	drawText(img, inner, image.Pt(inner.Min.X, centerY(r)), text, c.text)

	if o.location.Focused() && !o.location.Selected() {
		x := inner.Min.X + o.location.Cursor()*cellWidth
		fill(img, image.Rect(x, centerY(r), x+1, centerY(r)+cellHeight), c.text)
	}

	if isLoading(o.state.Status) && o.state.Progress > 0 {
		w := int(float64(r.Dx()) * math.Min(o.state.Progress, 1))
		fill(img, image.Rect(r.Min.X, r.Max.Y-2, r.Min.X+w, r.Max.Y), c.accent)
	}
}

func (o *Overlay) paintStatus(dst *image.RGBA, content image.Rectangle, scale float64) {
	text := TruncateLabel(o.state.StatusText, 80)
	w := textWidth(text) + padding*2
	h := cellHeight + padding*2
	box := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(box, box.Bounds(), o.colors.surface)
	drawText(box, box.Bounds(), image.Pt(padding, padding), text, o.colors.text)

	sw, sh := int(math.Round(float64(w)*scale)), int(math.Round(float64(h)*scale))
	target := image.Rect(content.Min.X, content.Max.Y-sh, content.Min.X+sw, content.Max.Y).Intersect(content)
	draw.NearestNeighbor.Scale(dst, target, box, box.Bounds(), draw.Over, nil)
}

// paintMenu draws the open history menu over the page, below the toolbar.
func (o *Overlay) paintMenu(dst *image.RGBA, scale float64) {
	rows := o.menuRows()
	if len(rows) == 0 {
		return
	}
	bounds := rows[0].Union(rows[len(rows)-1])
	box := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	fill(box, box.Bounds(), o.colors.surface)
	outline(box, box.Bounds(), o.colors.border)

	cols := fitColumns(bounds.Dx() - padding*2)
	for i, r := range rows {
		r = r.Sub(bounds.Min)
		if i == o.hoverMenu && i < len(o.menu) {
			fill(box, r.Inset(1), o.colors.surfaceVariant)
		}
		label, fg := "No history yet", o.colors.muted
		if i < len(o.menu) {
			label, fg = o.menu[i].Title, o.colors.text
			if label == "" {
				label = o.menu[i].URL
			}
		}
		drawText(box, r, image.Pt(r.Min.X+padding, centerY(r)), TruncateLabel(label, cols), fg)
	}

	target := image.Rect(
		int(math.Round(float64(bounds.Min.X)*scale)), int(math.Round(float64(bounds.Min.Y)*scale)),
		int(math.Round(float64(bounds.Max.X)*scale)), int(math.Round(float64(bounds.Max.Y)*scale)),
	)
	draw.NearestNeighbor.Scale(dst, target, box, box.Bounds(), draw.Src, nil)
}

func centerY(r image.Rectangle) int {
	return r.Min.Y + (r.Dy()-cellHeight)/2
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// fileURLPrefix starts a file:// url in the home directory.
func fileURLPrefix() string {
	home, err := os.UserHomeDir()
	if err != nil || !filepath.IsAbs(home) {
		return "file:///"
	}
	return "file://" + filepath.ToSlash(strings.TrimSuffix(home, "/")) + "/"
}
