package cdp

import (
	"testing"

	"github.com/chromedp/cdproto/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
)

func TestModifiers(t *testing.T) {
	assert.Equal(t, input.Modifier(0), modifiers(0))
	assert.Equal(t, input.ModifierCtrl|input.ModifierShift, modifiers(entity.ModCtrl|entity.ModShift))
	assert.Equal(t, input.ModifierMeta, modifiers(entity.ModSuper))
}

func TestCSSPoint_DividesByScale(t *testing.T) {
	x, y := cssPoint(entity.Point{X: 200, Y: 100}, 2)
	assert.InDelta(t, 100, x, 0.001)
	assert.InDelta(t, 50, y, 0.001)

	x, y = cssPoint(entity.Point{X: 30, Y: 40}, 0)
	assert.InDelta(t, 30, x, 0.001)
	assert.InDelta(t, 40, y, 0.001)
}

func TestMouseAction_TracksButtonsAndClicks(t *testing.T) {
	var s pointerState
	press := entity.InputEvent{Kind: entity.InputPointerButton, Button: entity.MouseLeft, Pressed: true, Content: entity.Point{X: 10, Y: 10}}
	release := press
	release.Pressed = false

	p := s.mouseAction(press, 1)
	require.NotNil(t, p)
	assert.Equal(t, input.MousePressed, p.Type)
	assert.Equal(t, input.Left, p.Button)
	assert.Equal(t, int64(1), p.Buttons)
	assert.Equal(t, int64(1), p.ClickCount, "missing count means a single click")

	p = s.mouseAction(release, 1)
	assert.Equal(t, input.MouseReleased, p.Type)
	assert.Equal(t, int64(0), p.Buttons)

	double := press
	double.ClickCount = 2
	p = s.mouseAction(double, 1)
	assert.Equal(t, int64(2), p.ClickCount)
	p = s.mouseAction(release, 1)
	assert.Equal(t, int64(2), p.ClickCount, "release repeats the press count")
}

func TestMouseAction_ClickCountComesFromEvent(t *testing.T) {
	var s pointerState
	at := func(x, y float64) entity.InputEvent {
		return entity.InputEvent{Kind: entity.InputPointerButton, Button: entity.MouseLeft, Pressed: true, ClickCount: 1, Content: entity.Point{X: x, Y: y}}
	}
	move := func(x, y float64) entity.InputEvent {
		return entity.InputEvent{Kind: entity.InputPointerMove, Content: entity.Point{X: x, Y: y}}
	}

	for _, ev := range []entity.InputEvent{at(10, 10), move(400, 10), at(400, 10), move(10, 300), at(10, 300)} {
		p := s.mouseAction(ev, 1)
		if ev.Kind == entity.InputPointerButton {
			assert.Equal(t, int64(1), p.ClickCount)
			s.mouseAction(entity.InputEvent{Kind: entity.InputPointerButton, Button: entity.MouseLeft, Content: ev.Content}, 1)
		}
	}
}

func TestMouseAction_ForwardsModifiers(t *testing.T) {
	var s pointerState
	p := s.mouseAction(entity.InputEvent{
		Kind:    entity.InputPointerButton,
		Button:  entity.MouseLeft,
		Pressed: true,
		Key:     entity.Key{Modifiers: entity.ModCtrl},
	}, 1)
	assert.Equal(t, input.ModifierCtrl, p.Modifiers)
}

func TestMouseAction_Scroll(t *testing.T) {
	var s pointerState
	p := s.mouseAction(entity.InputEvent{
		Kind:    entity.InputScroll,
		Content: entity.Point{X: 20, Y: 20},
		Delta:   entity.Point{X: 0, Y: 120},
	}, 2)
	require.NotNil(t, p)
	assert.Equal(t, input.MouseWheel, p.Type)
	assert.InDelta(t, 60, p.DeltaY, 0.001)
	assert.InDelta(t, 10, p.X, 0.001)
}

func TestMouseAction_IgnoresNonPointer(t *testing.T) {
	var s pointerState
	assert.Nil(t, s.mouseAction(entity.InputEvent{Kind: entity.InputKey}, 1))
}

func TestKeyAction(t *testing.T) {
	p := keyAction(entity.InputEvent{
		Kind:    entity.InputKey,
		Pressed: true,
		Key:     entity.Key{Name: "Enter", Code: "Enter", Modifiers: entity.ModShift},
	})
	assert.Equal(t, input.KeyRawDown, p.Type)
	assert.Equal(t, "Enter", p.Key)
	assert.Equal(t, int64(13), p.WindowsVirtualKeyCode)
	assert.Equal(t, input.ModifierShift, p.Modifiers)

	p = keyAction(entity.InputEvent{Kind: entity.InputKey, Key: entity.Key{Name: "a", Code: "KeyA"}})
	assert.Equal(t, input.KeyUp, p.Type)
	assert.Equal(t, int64('A'), p.WindowsVirtualKeyCode)
}

func TestCompositionAction_CaretInUTF16(t *testing.T) {
	// The emoji takes two UTF-16 units.
	p := compositionAction(entity.InputEvent{Kind: entity.InputComposition, Text: "😀か", Cursor: 1})
	assert.Equal(t, "😀か", p.Text)
	assert.Equal(t, int64(2), p.SelectionStart)
	assert.Equal(t, int64(2), p.SelectionEnd)

	p = compositionAction(entity.InputEvent{Kind: entity.InputComposition})
	assert.Empty(t, p.Text)
	assert.Zero(t, p.SelectionStart)
}

func TestWindowsVirtualKeyCode(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"ArrowLeft", 37},
		{"z", 'Z'},
		{"7", '7'},
		{"F5", 116},
		{"F24", 135},
		{"F25", 0},
		{"Dead", 0},
		{"é", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowsVirtualKeyCode(entity.Key{Name: tt.name}))
		})
	}
}
