package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
)

func TestTranslator_MapsPointerIntoContent(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 800, Height: 600}, 2, 60)

	ev, ok := tr.Translate(entity.NativeEvent{
		Kind:     entity.NativeCursorMoved,
		Position: entity.Point{X: 100, Y: 160},
	})
	require.True(t, ok)
	assert.Equal(t, entity.InputPointerMove, ev.Kind)
	assert.Equal(t, entity.Point{X: 200, Y: 200}, ev.Content)
	assert.Equal(t, entity.Point{X: 100, Y: 160}, ev.Window)
}

func TestTranslator_ClampsInsteadOfDropping(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 800, Height: 600}, 1, 60)

	tests := []struct {
		name string
		in   entity.Point
		want entity.Point
	}{
		{"over chrome", entity.Point{X: 10, Y: 5}, entity.Point{X: 10, Y: 0}},
		{"left of window", entity.Point{X: -20, Y: 100}, entity.Point{X: 0, Y: 40}},
		{"past bottom right", entity.Point{X: 900, Y: 700}, entity.Point{X: 799, Y: 539}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := tr.Translate(entity.NativeEvent{Kind: entity.NativeMouseInput, Position: tt.in, Button: entity.MouseLeft, Pressed: true})
			require.True(t, ok)
			assert.Equal(t, tt.want, ev.Content)
			assert.Equal(t, entity.MouseLeft, ev.Button)
			assert.True(t, ev.Pressed)
		})
	}
}

func TestTranslator_CarriesClickCountAndModifiers(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 800, Height: 600}, 1, 60)

	ev, ok := tr.Translate(entity.NativeEvent{
		Kind:       entity.NativeMouseInput,
		Position:   entity.Point{X: 50, Y: 100},
		Button:     entity.MouseLeft,
		Pressed:    true,
		ClickCount: 2,
		Key:        entity.Key{Modifiers: entity.ModCtrl | entity.ModShift},
	})
	require.True(t, ok)
	assert.Equal(t, 2, ev.ClickCount)
	assert.Equal(t, entity.ModCtrl|entity.ModShift, ev.Key.Modifiers)

	ev, _ = tr.Translate(entity.NativeEvent{Kind: entity.NativeMouseWheel, Key: entity.Key{Modifiers: entity.ModCtrl}})
	assert.Equal(t, entity.ModCtrl, ev.Key.Modifiers)

	ev, _ = tr.Translate(entity.NativeEvent{Kind: entity.NativeCursorMoved, Key: entity.Key{Modifiers: entity.ModAlt}})
	assert.Equal(t, entity.ModAlt, ev.Key.Modifiers)
}

func TestTranslator_ResizeUpdatesGeometry(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 800, Height: 600}, 1, 60)

	ev, ok := tr.Translate(entity.NativeEvent{Kind: entity.NativeResized, Size: entity.Size{Width: 400, Height: 300}, Scale: 2})
	require.True(t, ok)
	assert.Equal(t, entity.InputResize, ev.Kind)
	assert.Equal(t, 2.0, ev.Scale)

	assert.Equal(t, entity.Rect{Y: 120, Width: 800, Height: 480}, tr.ContentRect())

	move, _ := tr.Translate(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: 399, Y: 299}})
	assert.Equal(t, entity.Point{X: 798, Y: 478}, move.Content)
}

func TestTranslator_ScalesScroll(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 100, Height: 100}, 1.5, 0)
	ev, ok := tr.Translate(entity.NativeEvent{Kind: entity.NativeMouseWheel, Delta: entity.Point{Y: -10}})
	require.True(t, ok)
	assert.Equal(t, entity.InputScroll, ev.Kind)
	assert.Equal(t, -15.0, ev.Delta.Y)
}

func TestTranslator_KindMapping(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 100, Height: 100}, 1, 0)

	tests := []struct {
		in   entity.NativeKind
		want entity.InputKind
	}{
		{entity.NativeKeyboardInput, entity.InputKey},
		{entity.NativeReceivedText, entity.InputText},
		{entity.NativeComposition, entity.InputComposition},
		{entity.NativeFocused, entity.InputFocus},
		{entity.NativeCloseRequested, entity.InputClose},
	}
	for _, tt := range tests {
		ev, ok := tr.Translate(entity.NativeEvent{Kind: tt.in})
		require.True(t, ok)
		assert.Equal(t, tt.want, ev.Kind)
	}

	_, ok := tr.Translate(entity.NativeEvent{Kind: entity.NativeVisibility})
	assert.False(t, ok)
}

func TestTranslator_CompositionCaretStaysInText(t *testing.T) {
	tr := NewTranslator(entity.Size{Width: 100, Height: 100}, 1, 0)

	ev, ok := tr.Translate(entity.NativeEvent{Kind: entity.NativeComposition, Text: "にほ", Cursor: 9})
	require.True(t, ok)
	assert.Equal(t, "にほ", ev.Text)
	assert.Equal(t, 2, ev.Cursor)

	ev, _ = tr.Translate(entity.NativeEvent{Kind: entity.NativeComposition, Cursor: 3})
	assert.Zero(t, ev.Cursor, "an empty preedit ends the composition")
}

func TestQueue_PreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Push(entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: float64(i)}})
	}
	assert.Equal(t, 5, q.Len())

	events := q.Drain()
	require.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, float64(i), ev.Position.X)
	}
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}
