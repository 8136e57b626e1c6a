// Package headless is a window backend without a display. It keeps the last
// presented frame in memory, for scripting and tests.
package headless

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
)

// EventSink receives native events, usually an *input.Queue.
type EventSink interface {
	Push(ev entity.NativeEvent)
}

// Window implements port.Window without a native surface.
type Window struct {
	mu        sync.Mutex
	size      entity.Size
	scale     float64
	frame     *image.RGBA
	title     string
	presented int
	created   bool
}

var _ port.Window = (*Window)(nil)

// New returns a window and reports its initial geometry to sink, the way a
// native window does once it is mapped.
func New(sink EventSink, width, height int) *Window {
	w := &Window{size: entity.Size{Width: width, Height: height}, scale: 1}
	if sink != nil {
		sink.Push(entity.NativeEvent{Kind: entity.NativeResized, Size: w.size, Scale: 1})
		sink.Push(entity.NativeEvent{Kind: entity.NativeFocused, Focused: true})
	}
	return w
}

func (w *Window) Create(width, height int, scale float64) error {
	if width <= 0 || height <= 0 {
		return errors.New("headless surface needs a positive size")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	w.scale = scale
	w.created = true
	return nil
}

// Present copies frame; the caller keeps ownership of its buffer.
func (w *Window) Present(frame image.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.created {
		return entity.ErrPresentation
	}
	if !frame.Bounds().Size().Eq(w.frame.Bounds().Size()) {
		w.frame = image.NewRGBA(image.Rectangle{Max: frame.Bounds().Size()})
	}
	draw.Draw(w.frame, w.frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
	w.presented++
	return nil
}

func (w *Window) Destroy() {
	w.mu.Lock()
	w.created = false
	w.mu.Unlock()
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

// Title returns the last title set.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Presented counts successful presents.
func (w *Window) Presented() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presented
}

// Frame returns a copy of the last presented frame, or nil.
func (w *Window) Frame() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil || w.presented == 0 {
		return nil
	}
	out := image.NewRGBA(w.frame.Bounds())
	copy(out.Pix, w.frame.Pix)
	return out
}
