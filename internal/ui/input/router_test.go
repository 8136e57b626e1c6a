package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/moto/internal/domain/entity"
)

func newTestRouter() *Router {
	return NewRouter(NewShortcutTable(context.Background(), nil))
}

func TestRouter_CapturedEventsStayInOverlay(t *testing.T) {
	r := newTestRouter()
	const active = entity.WebViewID(3)

	tests := []struct {
		name    string
		ev      entity.InputEvent
		capture Capture
		overlay bool
		page    entity.WebViewID
	}{
		{"pointer captured", entity.InputEvent{Kind: entity.InputPointerMove}, Capture{Pointer: true}, true, 0},
		{"pointer free", entity.InputEvent{Kind: entity.InputPointerMove}, Capture{Keyboard: true}, false, active},
		{"scroll captured", entity.InputEvent{Kind: entity.InputScroll}, Capture{Pointer: true}, true, 0},
		{"key captured", entity.InputEvent{Kind: entity.InputKey, Key: entity.Key{Name: "a"}}, Capture{Keyboard: true}, true, 0},
		{"text captured", entity.InputEvent{Kind: entity.InputText, Text: "a"}, Capture{Keyboard: true}, true, 0},
		{"composition free", entity.InputEvent{Kind: entity.InputComposition, Text: "に"}, Capture{Pointer: true}, false, active},
		{"key free", entity.InputEvent{Kind: entity.InputKey, Key: entity.Key{Name: "a"}}, Capture{Pointer: true}, false, active},
		{"shortcut", entity.InputEvent{Kind: entity.InputKey, Key: entity.Key{Name: "l", Modifiers: entity.ModCtrl}}, Capture{}, true, 0},
		{"back button", entity.InputEvent{Kind: entity.InputPointerButton, Button: entity.MouseBack}, Capture{}, true, 0},
		{"resize both", entity.InputEvent{Kind: entity.InputResize}, Capture{Pointer: true, Keyboard: true}, true, active},
		{"close both", entity.InputEvent{Kind: entity.InputClose}, Capture{}, true, active},
		{"focus both", entity.InputEvent{Kind: entity.InputFocus}, Capture{}, true, active},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Route(tt.ev, tt.capture, active)
			assert.Equal(t, tt.overlay, got.Overlay)
			assert.Equal(t, tt.page, got.Page)
			if tt.overlay && tt.ev.Kind != entity.InputResize && tt.ev.Kind != entity.InputClose && tt.ev.Kind != entity.InputFocus {
				assert.Zero(t, got.Page, "captured event leaked to the page")
			}
		})
	}
}

func TestRouter_NoActiveWebViewDropsPageEvents(t *testing.T) {
	r := newTestRouter()

	got := r.Route(entity.InputEvent{Kind: entity.InputPointerButton, Button: entity.MouseLeft}, Capture{}, 0)
	assert.True(t, got.Dropped())

	got = r.Route(entity.InputEvent{Kind: entity.InputResize}, Capture{}, 0)
	assert.False(t, got.Dropped())
	assert.Zero(t, got.Page)
}
