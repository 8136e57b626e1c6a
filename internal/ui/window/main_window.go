// Package window provides the GTK window hosting the composited shell.
//
// GTK owns one widget, a Picture filling the window. Frames are encoded off
// the main thread and handed to GTK through a coalescer, so a slow main loop
// only ever shows the newest frame. Input controllers push native events into
// a queue drained by the frame coordinator.
package window

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/jwijenbergh/puregotk/v4/gobject"
	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/bnema/moto/internal/application/port"
	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
	"github.com/bnema/moto/internal/ui/mainloop"
	"github.com/bnema/moto/internal/ui/window/events"
)

const (
	windowTitle    = "moto"
	maxTitleLen    = 255
	geometryPollMs = 100
)

// EventSink receives native events from the GTK thread.
type EventSink interface {
	Push(ev entity.NativeEvent)
}

// MainWindow is the native window. Methods of port.Window are safe from any
// goroutine.
type MainWindow struct {
	window  *gtk.ApplicationWindow
	picture *gtk.Picture

	sink      EventSink
	coalescer *mainloop.Coalescer
	logger    zerolog.Logger

	// GTK keeps raw pointers to these; they must outlive the window.
	retained []any

	// Main thread only.
	size    entity.Size
	scale   int
	visible bool
	pointer entity.Point

	mu        sync.Mutex
	destroyed bool
}

var _ port.Window = (*MainWindow)(nil)

// New creates the window on the GTK main thread.
func New(ctx context.Context, app *gtk.Application, sink EventSink, width, height int) (*MainWindow, error) {
	log := logging.FromContext(ctx)

	mw := &MainWindow{
		sink:    sink,
		logger:  log.With().Str("component", "main-window").Logger(),
		visible: true,
	}
	mw.coalescer = mainloop.NewCoalescer(idleAdd)

	mw.window = gtk.NewApplicationWindow(app)
	if mw.window == nil {
		return nil, ErrWindowCreationFailed
	}
	title := windowTitle
	mw.window.SetTitle(&title)
	mw.window.SetDefaultSize(width, height)

	mw.picture = gtk.NewPicture()
	if mw.picture == nil {
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("picture")
	}
	mw.picture.SetHexpand(true)
	mw.picture.SetVexpand(true)
	mw.picture.SetCanShrink(true)
	mw.picture.SetCanFocus(true)
	mw.picture.SetFocusable(true)
	mw.window.SetChild(&mw.picture.Widget)

	mw.attachPointer()
	mw.attachKeyboard()
	mw.attachWindowSignals()
	mw.startGeometryPoll()

	return mw, nil
}

func idleAdd(fn func()) {
	cb := glib.SourceFunc(func(_ uintptr) bool {
		fn()
		return false
	})
	glib.IdleAdd(&cb, 0)
}

func (mw *MainWindow) push(ev entity.NativeEvent) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	mw.sink.Push(ev)
}

func (mw *MainWindow) attachPointer() {
	motion := gtk.NewEventControllerMotion()
	motionCb := func(_ gtk.EventControllerMotion, x, y float64) {
		mw.pointer = entity.Point{X: x, Y: y}
		mw.push(entity.NativeEvent{
			Kind:     entity.NativeCursorMoved,
			Position: mw.pointer,
			Key:      entity.Key{Modifiers: events.Modifiers(uint(motion.GetCurrentEventState()))},
		})
	}
	leaveCb := func(_ gtk.EventControllerMotion) {
		mw.push(events.Leave())
	}
	motion.ConnectMotion(&motionCb)
	motion.ConnectLeave(&leaveCb)
	mw.picture.AddController(&motion.EventController)

	click := gtk.NewGestureClick()
	// Listen to all buttons, back and forward included.
	click.SetButton(0)
	pressedCb := func(_ gtk.GestureClick, nPress int, x, y float64) {
		mw.picture.GrabFocus()
		mw.pushButton(click.GetCurrentButton(), uint(click.GetCurrentEventState()), nPress, x, y, true)
	}
	releasedCb := func(_ gtk.GestureClick, nPress int, x, y float64) {
		mw.pushButton(click.GetCurrentButton(), uint(click.GetCurrentEventState()), nPress, x, y, false)
	}
	click.ConnectPressed(&pressedCb)
	click.ConnectReleased(&releasedCb)
	mw.picture.AddController(&click.EventController)

	scroll := gtk.NewEventControllerScroll(gtk.EventControllerScrollBothAxesValue)
	scrollCb := func(_ gtk.EventControllerScroll, dx, dy float64) bool {
		wheel := scroll.GetUnit() == gdk.ScrollUnitWheelValue
		ev := events.Scroll(mw.pointer, dx, dy, wheel)
		ev.Key.Modifiers = events.Modifiers(uint(scroll.GetCurrentEventState()))
		mw.push(ev)
		return true
	}
	scroll.ConnectScroll(&scrollCb)
	mw.picture.AddController(&scroll.EventController)

	mw.retained = append(mw.retained, motionCb, leaveCb, pressedCb, releasedCb, scrollCb)
}

func (mw *MainWindow) pushButton(button, state uint, nPress int, x, y float64, pressed bool) {
	mw.pointer = entity.Point{X: x, Y: y}
	ev, ok := events.Button(button, state, nPress, mw.pointer, pressed)
	if ok {
		mw.push(ev)
	}
}

func (mw *MainWindow) attachKeyboard() {
	controller := gtk.NewEventControllerKey()
	if controller == nil {
		mw.logger.Error().Msg("failed to create event controller key")
		return
	}
	// Capture phase so GTK's own bindings (Tab focus chain) never see keys.
	controller.SetPropagationPhase(gtk.PhaseCaptureValue)
	// TODO: attach a GtkIMMulticontext with SetImContext, push its
	// preedit-changed string as NativeComposition and take Text from its
	// commit signal instead of from keyvals.

	pressedCb := func(_ gtk.EventControllerKey, keyval uint, keycode uint, state gdk.ModifierType) bool {
		for _, ev := range events.KeyEvents(keyval, keycode, uint(state), true) {
			mw.push(ev)
		}
		return true
	}
	releasedCb := func(_ gtk.EventControllerKey, keyval uint, keycode uint, state gdk.ModifierType) {
		for _, ev := range events.KeyEvents(keyval, keycode, uint(state), false) {
			mw.push(ev)
		}
	}
	controller.ConnectKeyPressed(&pressedCb)
	controller.ConnectKeyReleased(&releasedCb)
	mw.window.AddController(&controller.EventController)

	mw.retained = append(mw.retained, pressedCb, releasedCb)
}

func (mw *MainWindow) attachWindowSignals() {
	closeCb := func(_ gtk.Window) bool {
		mw.push(entity.NativeEvent{Kind: entity.NativeCloseRequested})
		// The coordinator decides; Quit tears the window down.
		return true
	}
	mw.window.ConnectCloseRequest(&closeCb)

	activeCb := func(_ gobject.Object, _ uintptr) {
		mw.push(entity.NativeEvent{Kind: entity.NativeFocused, Focused: mw.window.IsActive()})
	}
	mw.window.ConnectNotifyWithDetail("is-active", &activeCb)

	mw.retained = append(mw.retained, closeCb, activeCb)
}

// startGeometryPoll reports size, scale and visibility changes. GTK4 has no
// configure signal on toplevels, so the picture is sampled.
func (mw *MainWindow) startGeometryPoll() {
	pollCb := glib.SourceFunc(func(_ uintptr) bool {
		if mw.isDestroyed() {
			return false
		}
		mw.sampleGeometry()
		return true
	})
	glib.TimeoutAdd(geometryPollMs, &pollCb, 0)
	mw.retained = append(mw.retained, pollCb)
}

func (mw *MainWindow) sampleGeometry() {
	size := entity.Size{Width: mw.picture.GetWidth(), Height: mw.picture.GetHeight()}
	scale := mw.picture.GetScaleFactor()
	if scale < 1 {
		scale = 1
	}
	if !size.Empty() && (size != mw.size || scale != mw.scale) {
		mw.size, mw.scale = size, scale
		mw.push(entity.NativeEvent{Kind: entity.NativeResized, Size: size, Scale: float64(scale)})
	}

	visible := mw.window.GetMapped() && !mw.window.IsSuspended()
	if visible != mw.visible {
		mw.visible = visible
		mw.push(entity.NativeEvent{Kind: entity.NativeVisibility, Visible: visible})
	}
}

// Show makes the window visible.
func (mw *MainWindow) Show() {
	mw.window.Present()
	mw.picture.GrabFocus()
}

// Create implements port.SurfaceBackend. The picture scales whatever it is
// given, so only the bookkeeping in surface.Manager changes.
func (mw *MainWindow) Create(width, height int, scale float64) error {
	if mw.isDestroyed() {
		return ErrWindowDestroyed
	}
	mw.logger.Debug().Int("width", width).Int("height", height).Float64("scale", scale).Msg("surface created")
	return nil
}

// Present implements port.SurfaceBackend. The frame is encoded on the
// calling goroutine; only the texture swap runs on the main thread.
func (mw *MainWindow) Present(frame image.Image) error {
	if mw.isDestroyed() {
		return entity.ErrPresentation
	}
	data, err := events.EncodeFrame(frame)
	if err != nil {
		return err
	}
	mw.coalescer.Post("present", func() {
		if mw.isDestroyed() {
			return
		}
		bytes := glib.NewBytes(data, uint(len(data)))
		if bytes == nil {
			mw.logger.Debug().Msg("failed to create GBytes for frame")
			return
		}
		texture, err := gdk.NewTextureFromBytes(bytes)
		if err != nil || texture == nil {
			mw.logger.Debug().Err(err).Msg("failed to create frame texture")
			return
		}
		mw.picture.SetPaintable(texture)
		texture.Unref()
	})
	return nil
}

// SetTitle updates the window title, capped for display.
func (mw *MainWindow) SetTitle(title string) {
	title = events.Title(title, maxTitleLen)
	mw.coalescer.Post("title", func() {
		if !mw.isDestroyed() {
			mw.window.SetTitle(&title)
		}
	})
}

// Destroy implements port.SurfaceBackend. The GTK window itself goes away
// with Close.
func (mw *MainWindow) Destroy() {
	mw.mu.Lock()
	mw.destroyed = true
	mw.mu.Unlock()
	mw.coalescer.Destroy()
}

func (mw *MainWindow) isDestroyed() bool {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.destroyed
}

// Close destroys the GTK window. Main thread only.
func (mw *MainWindow) Close() {
	mw.Destroy()
	if mw.window != nil {
		mw.window.Destroy()
		mw.window = nil
	}
}

// WindowError represents a window-related error.
type WindowError struct {
	Message string
}

func (e WindowError) Error() string {
	return e.Message
}

// Error constants.
var (
	ErrWindowCreationFailed = WindowError{Message: "failed to create application window"}
	ErrWindowDestroyed      = WindowError{Message: "window destroyed"}
)

// ErrWidgetCreationFailed creates an error for widget creation failure.
func ErrWidgetCreationFailed(name string) error {
	return WindowError{Message: "failed to create widget: " + name}
}
