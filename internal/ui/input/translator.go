package input

import (
	"math"
	"unicode/utf8"

	"github.com/bnema/moto/internal/domain/entity"
)

// Translator converts native events into engine input. It tracks the window
// geometry so positions can be mapped into the content area below the
// overlay chrome.
type Translator struct {
	window       entity.Size // logical pixels
	scale        float64
	chromeHeight int // logical pixels
}

// NewTranslator creates a translator for a window of the given logical size.
func NewTranslator(window entity.Size, scale float64, chromeHeight int) *Translator {
	t := &Translator{}
	t.SetGeometry(window, scale, chromeHeight)
	return t
}

// SetGeometry updates the window size, scale factor and chrome height.
func (t *Translator) SetGeometry(window entity.Size, scale float64, chromeHeight int) {
	if scale <= 0 {
		scale = 1
	}
	if chromeHeight < 0 {
		chromeHeight = 0
	}
	t.window = window
	t.scale = scale
	t.chromeHeight = chromeHeight
}

// SetChromeHeight changes the overlay height, e.g. after a config reload.
func (t *Translator) SetChromeHeight(h int) {
	t.SetGeometry(t.window, t.scale, h)
}

// Window returns the logical window size.
func (t *Translator) Window() entity.Size { return t.window }

// Scale returns the device scale factor.
func (t *Translator) Scale() float64 { return t.scale }

// ChromeHeight returns the overlay height in logical pixels.
func (t *Translator) ChromeHeight() int { return t.chromeHeight }

// ContentRect returns the page area in device pixels, relative to the
// surface origin.
func (t *Translator) ContentRect() entity.Rect {
	h := t.window.Height - t.chromeHeight
	if h < 0 {
		h = 0
	}
	return entity.Rect{
		X:      0,
		Y:      int(math.Round(float64(t.chromeHeight) * t.scale)),
		Width:  int(math.Round(float64(t.window.Width) * t.scale)),
		Height: int(math.Round(float64(h) * t.scale)),
	}
}

// ToContent maps a window position into content device pixels, clamped into
// the content bounds.
func (t *Translator) ToContent(p entity.Point) entity.Point {
	r := t.ContentRect()
	x := p.X * t.scale
	y := (p.Y - float64(t.chromeHeight)) * t.scale
	return entity.Point{
		X: clamp(x, 0, float64(r.Width-1)),
		Y: clamp(y, 0, float64(r.Height-1)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Translate converts ev. Resize events update the tracked geometry before
// returning. The second result is false for events that belong to the frame
// loop itself (visibility changes).
func (t *Translator) Translate(ev entity.NativeEvent) (entity.InputEvent, bool) {
	out := entity.InputEvent{
		Window: ev.Position,
		Scale:  t.scale,
	}

	switch ev.Kind {
	case entity.NativeCursorMoved:
		out.Kind = entity.InputPointerMove
		out.Content = t.ToContent(ev.Position)
		out.Key.Modifiers = ev.Key.Modifiers
	case entity.NativeMouseInput:
		out.Kind = entity.InputPointerButton
		out.Content = t.ToContent(ev.Position)
		out.Button = ev.Button
		out.Pressed = ev.Pressed
		out.ClickCount = ev.ClickCount
		out.Key.Modifiers = ev.Key.Modifiers
	case entity.NativeMouseWheel:
		out.Kind = entity.InputScroll
		out.Content = t.ToContent(ev.Position)
		out.Delta = entity.Point{X: ev.Delta.X * t.scale, Y: ev.Delta.Y * t.scale}
		out.Key.Modifiers = ev.Key.Modifiers
	case entity.NativeKeyboardInput:
		out.Kind = entity.InputKey
		out.Key = ev.Key
		out.Pressed = ev.Pressed
	case entity.NativeReceivedText:
		out.Kind = entity.InputText
		out.Text = ev.Text
	case entity.NativeComposition:
		out.Kind = entity.InputComposition
		out.Text = ev.Text
		out.Cursor = max(0, min(ev.Cursor, utf8.RuneCountInString(ev.Text)))
	case entity.NativeResized:
		scale := ev.Scale
		if scale <= 0 {
			scale = t.scale
		}
		t.SetGeometry(ev.Size, scale, t.chromeHeight)
		out.Kind = entity.InputResize
		out.Size = ev.Size
		out.Scale = t.scale
	case entity.NativeFocused:
		out.Kind = entity.InputFocus
		out.Focused = ev.Focused
	case entity.NativeCloseRequested:
		out.Kind = entity.InputClose
	default:
		return entity.InputEvent{}, false
	}
	return out, true
}
