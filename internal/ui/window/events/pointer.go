package events

import (
	"github.com/mattn/go-runewidth"

	"github.com/bnema/moto/internal/domain/entity"
)

// scrollStep is the distance of one wheel notch in logical pixels.
const scrollStep = 48

// MouseButton maps a GDK button number.
func MouseButton(button uint) entity.MouseButton {
	switch button {
	case 1:
		return entity.MouseLeft
	case 2:
		return entity.MouseMiddle
	case 3:
		return entity.MouseRight
	case 8:
		return entity.MouseBack
	case 9:
		return entity.MouseForward
	default:
		return entity.MouseNone
	}
}

// Button builds a button event from a GDK button number, modifier state and
// the gesture's press count. Unknown buttons report false.
func Button(button, state uint, nPress int, at entity.Point, pressed bool) (entity.NativeEvent, bool) {
	b := MouseButton(button)
	if b == entity.MouseNone {
		return entity.NativeEvent{}, false
	}
	return entity.NativeEvent{
		Kind:       entity.NativeMouseInput,
		Position:   at,
		Button:     b,
		Pressed:    pressed,
		ClickCount: max(nPress, 1),
		Key:        entity.Key{Modifiers: Modifiers(state)},
	}, true
}

// Title caps a window title at maxWidth display columns without splitting
// a character.
func Title(title string, maxWidth int) string {
	return runewidth.Truncate(title, maxWidth, "...")
}

// Leave is the pointer event sent when the pointer exits the window.
func Leave() entity.NativeEvent {
	return entity.NativeEvent{Kind: entity.NativeCursorMoved, Position: entity.Point{X: -1, Y: -1}}
}

// Scroll builds a wheel event in logical pixels. Wheel deltas count notches;
// smooth deltas are already pixels. Positive values scroll down and right.
func Scroll(at entity.Point, dx, dy float64, wheel bool) entity.NativeEvent {
	if wheel {
		dx, dy = dx*scrollStep, dy*scrollStep
	}
	return entity.NativeEvent{Kind: entity.NativeMouseWheel, Position: at, Delta: entity.Point{X: dx, Y: dy}}
}
