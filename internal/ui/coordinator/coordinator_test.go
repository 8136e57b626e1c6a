package coordinator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/moto/internal/application/port"
	mock_port "github.com/bnema/moto/internal/application/port/mocks"
	"github.com/bnema/moto/internal/application/usecase"
	"github.com/bnema/moto/internal/domain/entity"
	repomocks "github.com/bnema/moto/internal/domain/repository/mocks"
	"github.com/bnema/moto/internal/ui/input"
	"github.com/bnema/moto/internal/ui/overlay"
	"github.com/bnema/moto/internal/ui/surface"
)

type fakeBridge struct {
	sent      []entity.Command
	callbacks []entity.Callback
	fail      map[entity.WebViewID]error
}

func (b *fakeBridge) Send(cmd entity.Command) error {
	if err := b.fail[cmd.Target()]; err != nil {
		return err
	}
	b.sent = append(b.sent, cmd)
	return nil
}

func (b *fakeBridge) PollCallbacks() iter.Seq[entity.Callback] {
	batch := b.callbacks
	b.callbacks = nil
	return func(yield func(entity.Callback) bool) {
		for _, cb := range batch {
			if !yield(cb) {
				return
			}
		}
	}
}

func (b *fakeBridge) deliver(cbs ...entity.Callback) {
	b.callbacks = append(b.callbacks, cbs...)
}

func (b *fakeBridge) reset() { b.sent = nil }

func sentOf[T entity.Command](b *fakeBridge) []T {
	var out []T
	for _, cmd := range b.sent {
		if c, ok := cmd.(T); ok {
			out = append(out, c)
		}
	}
	return out
}

type fakeBackend struct {
	creates    []entity.Size
	presents   int
	last       image.Image
	presentErr error
	title      string
}

func (f *fakeBackend) Create(width, height int, _ float64) error {
	f.creates = append(f.creates, entity.Size{Width: width, Height: height})
	return nil
}

func (f *fakeBackend) Present(frame image.Image) error {
	if f.presentErr != nil {
		err := f.presentErr
		f.presentErr = nil
		return err
	}
	f.presents++
	f.last = frame
	return nil
}

func (f *fakeBackend) Destroy() {}

func (f *fakeBackend) SetTitle(title string) { f.title = title }

type harness struct {
	c       *Coordinator
	queue   *input.Queue
	reg     *entity.Registry
	bridge  *fakeBridge
	backend *fakeBackend
}

const (
	testWidth  = 800
	testHeight = 600
	testChrome = 60
)

func newHarness(t *testing.T, mutate ...func(*Config)) *harness {
	t.Helper()
	ctx := context.Background()
	shortcuts := input.NewShortcutTable(ctx, nil)
	h := &harness{
		queue:   input.NewQueue(),
		reg:     entity.NewRegistry(),
		bridge:  &fakeBridge{},
		backend: &fakeBackend{},
	}
	cfg := Config{
		Queue:      h.queue,
		Translator: input.NewTranslator(entity.Size{Width: testWidth, Height: testHeight}, 1, testChrome),
		Router:     input.NewRouter(shortcuts),
		Overlay:    overlay.New(ctx, testWidth, testChrome, overlay.DefaultDarkPalette(), shortcuts),
		Registry:   h.reg,
		Bridge:     h.bridge,
		Surface:    surface.NewManager(h.backend),
		Title:      h.backend,
		Settings:   Settings{ChromeHeight: testChrome},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	h.c = New(ctx, cfg)
	return h
}

func (h *harness) iterate(t *testing.T) {
	t.Helper()
	require.NoError(t, h.c.Iterate(context.Background()))
}

func (h *harness) key(name string, mods entity.Modifiers) {
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeKeyboardInput, Key: entity.Key{Name: name, Modifiers: mods}, Pressed: true})
}

func TestIterate_FirstFramePresents(t *testing.T) {
	h := newHarness(t)

	h.iterate(t)

	assert.Equal(t, []entity.Size{{Width: testWidth, Height: testHeight}}, h.backend.creates)
	assert.Equal(t, 1, h.backend.presents)
	assert.Equal(t, "moto", h.backend.title)

	// Nothing changed: nothing is presented again.
	h.iterate(t)
	assert.Equal(t, 1, h.backend.presents)
}

func TestIterate_PresentationFailureResizesNextIteration(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_port.NewMockSurfaceBackend(ctrl)
	h := newHarness(t, func(c *Config) { c.Surface = surface.NewManager(backend) })

	gomock.InOrder(
		backend.EXPECT().Create(testWidth, testHeight, 1.0).Return(nil),
		backend.EXPECT().Present(gomock.Any()).Return(errors.New("lost swapchain")),
		backend.EXPECT().Create(testWidth, testHeight, 1.0).Return(nil),
		backend.EXPECT().Present(gomock.Any()).Return(nil),
	)

	h.iterate(t)
	h.iterate(t)
}

func TestIterate_ResizeCreatesOnce(t *testing.T) {
	h := newHarness(t)
	h.iterate(t)

	for range 2 {
		h.queue.Push(entity.NativeEvent{Kind: entity.NativeResized, Size: entity.Size{Width: 1000, Height: 700}, Scale: 2})
	}
	h.iterate(t)
	h.iterate(t)

	assert.Equal(t, []entity.Size{
		{Width: testWidth, Height: testHeight},
		{Width: 2000, Height: 1400},
	}, h.backend.creates)
}

func TestIterate_ZeroSizeWindowKeepsRunning(t *testing.T) {
	h := newHarness(t)
	h.iterate(t)

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeResized, Size: entity.Size{}, Scale: 1})
	h.iterate(t)
	h.iterate(t)
	assert.Equal(t, 1, h.backend.presents)

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeResized, Size: entity.Size{Width: 640, Height: 480}, Scale: 1})
	h.iterate(t)
	assert.Equal(t, 2, h.backend.presents)
}

func TestIterate_CapturedEventsNeverReachBridge(t *testing.T) {
	h := newHarness(t)
	id := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)
	h.bridge.reset()

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: 300, Y: 10}})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 300, Y: 10}, Button: entity.MouseLeft, Pressed: true})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 300, Y: 10}, Button: entity.MouseLeft})
	h.key("l", entity.ModCtrl)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeReceivedText, Text: "abc"})
	h.iterate(t)

	assert.Empty(t, sentOf[entity.InputCommand](h.bridge))

	h.key("Escape", 0)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: 300, Y: 300}})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeReceivedText, Text: "x"})
	h.iterate(t)

	inputs := sentOf[entity.InputCommand](h.bridge)
	require.Len(t, inputs, 2)
	assert.Equal(t, id, inputs[0].ID)
	assert.Equal(t, entity.InputPointerMove, inputs[0].Event.Kind)
	assert.Equal(t, entity.Point{X: 300, Y: 240}, inputs[0].Event.Content)
	assert.Equal(t, entity.InputText, inputs[1].Event.Kind)
}

func TestIterate_PageDragReleasedOverChrome(t *testing.T) {
	h := newHarness(t)
	id := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)
	h.bridge.reset()

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 100, Y: 300}, Button: entity.MouseLeft, Pressed: true})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: 100, Y: 20}})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 100, Y: 20}, Button: entity.MouseLeft})
	h.iterate(t)

	inputs := sentOf[entity.InputCommand](h.bridge)
	require.Len(t, inputs, 3)
	for _, in := range inputs {
		assert.Equal(t, id, in.ID)
	}
	assert.True(t, inputs[0].Event.Pressed)
	assert.Equal(t, entity.InputPointerMove, inputs[1].Event.Kind)
	assert.Equal(t, entity.Point{X: 100, Y: 0}, inputs[1].Event.Content, "clamped to the content top edge")
	assert.Equal(t, entity.InputPointerButton, inputs[2].Event.Kind)
	assert.False(t, inputs[2].Event.Pressed)
	assert.Equal(t, entity.Point{X: 100, Y: 0}, inputs[2].Event.Content)

	// Once released, the chrome owns the pointer again.
	h.bridge.reset()
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: 110, Y: 20}})
	h.iterate(t)
	assert.Empty(t, sentOf[entity.InputCommand](h.bridge))
}

func TestIterate_InputOnlyReachesActiveView(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	b := h.c.OpenWebView(ctx, "https://b.example/")
	h.iterate(t)
	h.bridge.reset()

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseWheel, Position: entity.Point{X: 10, Y: 200}, Delta: entity.Point{Y: 3}})
	h.iterate(t)

	inputs := sentOf[entity.InputCommand](h.bridge)
	require.Len(t, inputs, 1)
	assert.Equal(t, b, inputs[0].ID)
	assert.NotEqual(t, a, inputs[0].ID)
}

func TestIterate_CloseActiveFocusesSuccessor(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	b := h.c.OpenWebView(ctx, "https://b.example/")
	require.NoError(t, h.reg.SetActive(a))
	h.iterate(t)
	h.bridge.reset()

	h.c.CloseWebView(ctx, a)
	assert.Equal(t, []entity.CloseCommand{{ID: a}}, sentOf[entity.CloseCommand](h.bridge))
	assert.True(t, h.reg.Contains(a), "entry stays until the engine acknowledges")

	h.bridge.deliver(entity.Closed{ID: a})
	h.iterate(t)

	assert.False(t, h.reg.Contains(a))
	assert.Equal(t, b, h.reg.ActiveID())
	assert.Contains(t, sentOf[entity.SetFocusCommand](h.bridge), entity.SetFocusCommand{ID: b, Focused: true})
	assert.Equal(t, "https://b.example/ - moto", h.backend.title)
}

func TestIterate_CloseUnknownToEngineForgetsImmediately(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	h.bridge.fail = map[entity.WebViewID]error{a: entity.ErrUnknownWebView}

	h.c.CloseWebView(ctx, a)

	assert.False(t, h.reg.Contains(a))
	assert.Zero(t, h.reg.ActiveID())
}

func TestIterate_FailedCreateDropsRecord(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	b := h.c.OpenWebView(ctx, "https://b.example/")
	h.iterate(t)

	// The bridge reports a WebView whose page never came up as closed.
	h.bridge.deliver(entity.Closed{ID: b})
	h.iterate(t)

	assert.False(t, h.reg.Contains(b))
	assert.Equal(t, a, h.reg.ActiveID())
	assert.Equal(t, 1, h.reg.Len())
}

func TestIterate_StaleCallbacksIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	b := h.c.OpenWebView(ctx, "https://b.example/")

	h.bridge.deliver(entity.TitleChanged{ID: a, Title: "Foo"}, entity.Closed{ID: a})
	h.iterate(t)
	h.bridge.deliver(entity.TitleChanged{ID: a, Title: "Bar"}, entity.FrameReady{ID: a, Frame: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	h.iterate(t)

	assert.False(t, h.reg.Contains(a))
	assert.Equal(t, []entity.WebViewID{b}, h.reg.IDs())
}

func TestIterate_CallbacksForClosingViewDropped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.c.OpenWebView(ctx, "https://a.example/")
	h.c.CloseWebView(ctx, a)
	h.bridge.reset()

	h.bridge.deliver(
		entity.TitleChanged{ID: a, Title: "late"},
		entity.PermissionRequested{ID: a, Permission: entity.PermissionGeolocation},
	)
	h.iterate(t)

	wv, ok := h.reg.Get(a)
	require.True(t, ok)
	assert.Empty(t, wv.Title)
	assert.Empty(t, sentOf[entity.RespondPermissionCommand](h.bridge))
}

func TestIterate_EngineLost(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.c.OpenWebView(ctx, "https://a.example/")
	h.c.OpenWebView(ctx, "https://b.example/")

	h.bridge.deliver(entity.EngineLost{Err: errors.New("websocket closed")})
	err := h.c.Iterate(ctx)

	require.ErrorIs(t, err, entity.ErrEngineLost)
	assert.Zero(t, h.reg.Len())
	assert.Zero(t, h.reg.ActiveID())
	assert.Equal(t, []string{"https://a.example/", "https://b.example/"}, h.c.LostURLs())
}

func TestRun_WindowCloseEndsLoop(t *testing.T) {
	h := newHarness(t)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeCloseRequested})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, h.c.Run(ctx))
	assert.NoError(t, ctx.Err())
}

func TestRun_EngineLostIsReturned(t *testing.T) {
	h := newHarness(t)
	h.bridge.deliver(entity.EngineLost{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, h.c.Run(ctx), entity.ErrEngineLost)
}

func TestIterate_QuitShortcut(t *testing.T) {
	h := newHarness(t)
	h.key("q", entity.ModCtrl)
	assert.ErrorIs(t, h.c.Iterate(context.Background()), entity.ErrWindowClosed)
}

func TestIterate_PopupPolicy(t *testing.T) {
	h := newHarness(t)
	h.bridge.deliver(entity.NewWebViewRequested{URL: "https://popup.example/"})
	h.iterate(t)
	assert.Zero(t, h.reg.Len())

	h.c.Apply(Settings{ChromeHeight: testChrome, AllowPopups: true})
	h.bridge.deliver(entity.NewWebViewRequested{URL: "https://popup.example/"})
	h.iterate(t)

	require.Equal(t, 1, h.reg.Len())
	creates := sentOf[entity.CreateWebViewCommand](h.bridge)
	require.Len(t, creates, 1)
	assert.Equal(t, "https://popup.example/", creates[0].URL)
	assert.Equal(t, creates[0].ID, h.reg.ActiveID())
}

func TestIterate_PermissionsAnsweredByPolicy(t *testing.T) {
	policy := entity.PermissionPolicy{
		Default:   entity.PermissionDeny,
		Overrides: map[entity.PermissionKind]entity.PermissionDecision{entity.PermissionNotifications: entity.PermissionAllow},
	}
	h := newHarness(t, func(c *Config) { c.Permissions = usecase.NewHandlePermissionUseCase(policy) })
	a := h.c.OpenWebView(context.Background(), "https://a.example/")

	h.bridge.deliver(
		entity.PermissionRequested{ID: a, Permission: entity.PermissionGeolocation},
		entity.PermissionRequested{ID: a, Permission: entity.PermissionNotifications},
		entity.PermissionRequested{ID: a, Permission: entity.PermissionAlert},
	)
	h.iterate(t)

	answers := sentOf[entity.RespondPermissionCommand](h.bridge)
	require.Len(t, answers, 3)
	assert.False(t, answers[0].Allow)
	assert.True(t, answers[1].Allow)
	assert.True(t, answers[2].Allow)
}

func TestIterate_IPCHandedToHandler(t *testing.T) {
	var got []entity.IPCMessage
	h := newHarness(t, func(c *Config) {
		c.IPC = port.IPCHandlerFunc(func(_ context.Context, msg entity.IPCMessage) { got = append(got, msg) })
	})
	a := h.c.OpenWebView(context.Background(), "https://a.example/")

	h.bridge.deliver(entity.IPCMessage{ID: a, Data: []byte(`{"ping":1}`)}, entity.IPCMessage{ID: 99, Data: []byte("stale")})
	h.iterate(t)

	require.Len(t, got, 1)
	assert.Equal(t, a, got[0].ID)
}

func TestIterate_LocationBarNavigates(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)

	h.key("l", entity.ModCtrl)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeReceivedText, Text: "example.com"})
	h.key("Enter", 0)
	h.key("l", entity.ModCtrl)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeReceivedText, Text: "go modules"})
	h.key("Enter", 0)
	h.iterate(t)

	assert.Equal(t, []entity.NavigateCommand{
		{ID: a, URL: "https://example.com"},
		{ID: a, URL: "https://duckduckgo.com/?q=go+modules"},
	}, sentOf[entity.NavigateCommand](h.bridge))
}

func TestIterate_ToolbarCommandsTargetActive(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.bridge.deliver(entity.HistoryChanged{ID: a, CanGoBack: true})
	h.iterate(t)
	h.bridge.reset()

	h.key("r", entity.ModCtrl)
	h.key("ArrowLeft", entity.ModAlt)
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 300, Y: 300}, Button: entity.MouseForward, Pressed: true})
	h.key("t", entity.ModCtrl)
	h.iterate(t)

	assert.Equal(t, []entity.ReloadCommand{{ID: a}}, sentOf[entity.ReloadCommand](h.bridge))
	assert.Equal(t, []entity.GoBackCommand{{ID: a}}, sentOf[entity.GoBackCommand](h.bridge))
	assert.Equal(t, []entity.GoForwardCommand{{ID: a}}, sentOf[entity.GoForwardCommand](h.bridge))
	creates := sentOf[entity.CreateWebViewCommand](h.bridge)
	require.Len(t, creates, 1)
	assert.Equal(t, "moto:newtab", creates[0].URL)
	assert.Equal(t, creates[0].ID, h.reg.ActiveID())
}

func TestIterate_ActiveSizeSentOnResize(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeResized, Size: entity.Size{Width: 1000, Height: 700}, Scale: 2})
	h.iterate(t)
	h.iterate(t)

	assert.Equal(t, []entity.ResizeCommand{
		{ID: a, Width: testWidth, Height: testHeight - testChrome, Scale: 1},
		{ID: a, Width: 2000, Height: 1280, Scale: 2},
	}, sentOf[entity.ResizeCommand](h.bridge))
}

func TestIterate_CompositesActiveFrame(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)

	red := color.RGBA{R: 0xff, A: 0xff}
	frame := image.NewRGBA(image.Rect(0, 0, testWidth, testHeight-testChrome))
	for i := 0; i < len(frame.Pix); i += 4 {
		copy(frame.Pix[i:], []byte{red.R, red.G, red.B, red.A})
	}
	h.bridge.deliver(entity.FrameReady{ID: a, Frame: frame})
	h.iterate(t)

	out, ok := h.backend.last.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, red, out.RGBAAt(10, 300))
	assert.NotEqual(t, red, out.RGBAAt(10, 10), "chrome drawn over the page")
}

func TestIterate_HiddenWindowThrottles(t *testing.T) {
	h := newHarness(t)
	h.iterate(t)
	visible := h.c.Interval()

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeVisibility, Visible: false})
	h.iterate(t)
	assert.False(t, h.c.Visible())
	assert.Greater(t, h.c.Interval(), visible)

	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.bridge.deliver(entity.TitleChanged{ID: a, Title: "hidden"})
	h.iterate(t)
	assert.Equal(t, 1, h.backend.presents, "no presents while hidden")
	wv, _ := h.reg.Get(a)
	assert.Equal(t, "hidden", wv.Title, "callbacks still applied")

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeVisibility, Visible: true})
	h.iterate(t)
	assert.Equal(t, 2, h.backend.presents)
}

func TestIterate_WindowFocusKeepsFramesFlowing(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)
	assert.Contains(t, sentOf[entity.SetVisibleCommand](h.bridge), entity.SetVisibleCommand{ID: a, Visible: true})
	h.bridge.reset()

	h.queue.Push(entity.NativeEvent{Kind: entity.NativeFocused, Focused: false})
	h.iterate(t)

	assert.Equal(t, []entity.SetFocusCommand{{ID: a, Focused: false}}, sentOf[entity.SetFocusCommand](h.bridge))
	assert.Empty(t, sentOf[entity.SetVisibleCommand](h.bridge), "an unfocused window still shows its page")

	frame := image.NewRGBA(image.Rect(0, 0, testWidth, testHeight-testChrome))
	presents := h.backend.presents
	h.bridge.deliver(entity.FrameReady{ID: a, Frame: frame})
	h.iterate(t)
	assert.Equal(t, presents+1, h.backend.presents)

	h.bridge.reset()
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeVisibility, Visible: false})
	h.iterate(t)
	assert.Equal(t, []entity.SetVisibleCommand{{ID: a, Visible: false}}, sentOf[entity.SetVisibleCommand](h.bridge))

	h.bridge.reset()
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeVisibility, Visible: true})
	h.iterate(t)
	assert.Equal(t, []entity.SetVisibleCommand{{ID: a, Visible: true}}, sentOf[entity.SetVisibleCommand](h.bridge))
}

func TestIterate_ChromeHeightReload(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "https://a.example/")
	h.iterate(t)

	h.c.Apply(Settings{ChromeHeight: 80})
	h.iterate(t)

	resizes := sentOf[entity.ResizeCommand](h.bridge)
	require.Len(t, resizes, 2)
	assert.Equal(t, entity.ResizeCommand{ID: a, Width: testWidth, Height: testHeight - 80, Scale: 1}, resizes[1])
}

func TestIterate_RecordsHistory(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	h := newHarness(t, func(c *Config) { c.History = usecase.NewHistoryUseCase(repo, 0) })
	a := h.c.OpenWebView(context.Background(), "moto:newtab")

	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
		return e.URL == "https://go.dev/" && e.VisitCount == 1
	})).Return(nil).Once()
	repo.EXPECT().FindByURL(mock.Anything, "https://go.dev/").Return(&entity.HistoryEntry{URL: "https://go.dev/"}, nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
		return e.Title == "The Go Programming Language" && e.VisitCount == 0
	})).Return(nil).Once()

	h.bridge.deliver(
		entity.URLChanged{ID: a, URL: "moto:newtab"},
		entity.URLChanged{ID: a, URL: "https://go.dev/"},
		entity.TitleChanged{ID: a, Title: "The Go Programming Language"},
	)
	h.iterate(t)
}

func TestIterate_HistoryMenuNavigates(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	h := newHarness(t, func(c *Config) { c.History = usecase.NewHistoryUseCase(repo, 0) })
	a := h.c.OpenWebView(context.Background(), "moto:newtab")
	h.iterate(t)
	h.bridge.reset()

	repo.EXPECT().GetRecent(mock.Anything, 12, 0).Return([]*entity.HistoryEntry{
		{URL: "https://go.dev/", Title: "Go"},
		{URL: "https://pkg.go.dev/", Title: "Packages"},
	}, nil).Once()

	h.key("h", entity.ModCtrl)
	h.iterate(t)
	require.True(t, h.c.overlay.MenuOpen())

	// First row hangs below the toolbar, right-aligned to the history button.
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 500, Y: 70}, Button: entity.MouseLeft, Pressed: true})
	h.queue.Push(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: entity.Point{X: 500, Y: 70}, Button: entity.MouseLeft})
	h.iterate(t)

	assert.False(t, h.c.overlay.MenuOpen())
	assert.Equal(t, []entity.NavigateCommand{{ID: a, URL: "https://go.dev/"}}, sentOf[entity.NavigateCommand](h.bridge))
	assert.Empty(t, sentOf[entity.InputCommand](h.bridge), "menu clicks never reach the page")
}

func TestNavigate_OnlyKnownWebViews(t *testing.T) {
	h := newHarness(t)
	a := h.c.OpenWebView(context.Background(), "moto:config")
	h.bridge.reset()

	h.c.Navigate(context.Background(), a, "moto:config?saved=1")
	h.c.Navigate(context.Background(), a+100, "https://go.dev/")

	assert.Equal(t, []entity.NavigateCommand{{ID: a, URL: "moto:config?saved=1"}}, sentOf[entity.NavigateCommand](h.bridge))
}

func TestIterate_ToggleBookmark(t *testing.T) {
	repo := repomocks.NewMockBookmarkRepository(t)
	h := newHarness(t, func(c *Config) { c.Bookmarks = usecase.NewManageBookmarksUseCase(repo) })
	h.c.OpenWebView(context.Background(), "https://go.dev/")

	repo.EXPECT().FindByURL(mock.Anything, "https://go.dev/").Return(nil, nil).Times(3)
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *entity.Bookmark) bool {
		return b.URL == "https://go.dev/"
	})).Return(nil).Once()

	h.iterate(t)
	h.key("d", entity.ModCtrl)
	h.iterate(t)

	assert.True(t, h.c.bookmarked)
}
