package cdp

import (
	"context"
	"fmt"
	"unicode/utf16"

	"github.com/chromedp/cdproto/input"

	"github.com/bnema/moto/internal/domain/entity"
)

// pointerState tracks what CDP needs for consecutive mouse events.
type pointerState struct {
	buttons int64
	// clicks is the count of the last press; its release repeats it.
	clicks int64
}

func modifiers(m entity.Modifiers) input.Modifier {
	var out input.Modifier
	if m.Has(entity.ModAlt) {
		out |= input.ModifierAlt
	}
	if m.Has(entity.ModCtrl) {
		out |= input.ModifierCtrl
	}
	if m.Has(entity.ModSuper) {
		out |= input.ModifierMeta
	}
	if m.Has(entity.ModShift) {
		out |= input.ModifierShift
	}
	return out
}

func mouseButton(b entity.MouseButton) (input.MouseButton, int64) {
	switch b {
	case entity.MouseLeft:
		return input.Left, 1
	case entity.MouseRight:
		return input.Right, 2
	case entity.MouseMiddle:
		return input.Middle, 4
	case entity.MouseBack:
		return input.Back, 8
	case entity.MouseForward:
		return input.Forward, 16
	default:
		return input.None, 0
	}
}

// cssPoint converts device pixels into the CSS pixels CDP expects.
func cssPoint(p entity.Point, scale float64) (float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	return p.X / scale, p.Y / scale
}

// mouseAction builds the CDP call for a pointer event, updating state.
func (s *pointerState) mouseAction(ev entity.InputEvent, scale float64) *input.DispatchMouseEventParams {
	x, y := cssPoint(ev.Content, scale)
	switch ev.Kind {
	case entity.InputPointerMove:
		return input.DispatchMouseEvent(input.MouseMoved, x, y).
			WithButtons(s.buttons).
			WithModifiers(modifiers(ev.Key.Modifiers))
	case entity.InputPointerButton:
		button, bit := mouseButton(ev.Button)
		typ := input.MouseReleased
		if ev.Pressed {
			typ = input.MousePressed
			s.buttons |= bit
			s.clicks = int64(max(ev.ClickCount, 1))
		} else {
			s.buttons &^= bit
		}
		return input.DispatchMouseEvent(typ, x, y).
			WithButton(button).
			WithButtons(s.buttons).
			WithClickCount(max(s.clicks, 1)).
			WithModifiers(modifiers(ev.Key.Modifiers))
	case entity.InputScroll:
		// Positive deltas scroll down and right in both conventions.
		dx, dy := cssPoint(ev.Delta, scale)
		return input.DispatchMouseEvent(input.MouseWheel, x, y).
			WithDeltaX(dx).
			WithDeltaY(dy).
			WithModifiers(modifiers(ev.Key.Modifiers))
	default:
		return nil
	}
}

// keyAction builds the CDP call for a key press or release. Printable
// characters arrive separately as InputText.
func keyAction(ev entity.InputEvent) *input.DispatchKeyEventParams {
	typ := input.KeyUp
	if ev.Pressed {
		typ = input.KeyRawDown
	}
	p := input.DispatchKeyEvent(typ).
		WithKey(ev.Key.Name).
		WithCode(ev.Key.Code).
		WithModifiers(modifiers(ev.Key.Modifiers))
	if vk := windowsVirtualKeyCode(ev.Key); vk != 0 {
		p = p.WithWindowsVirtualKeyCode(vk).WithNativeVirtualKeyCode(vk)
	}
	return p
}

// compositionAction shows the preedit text with the caret at ev.Cursor.
// CDP counts the selection in UTF-16 units.
func compositionAction(ev entity.InputEvent) *input.ImeSetCompositionParams {
	runes := []rune(ev.Text)
	caret := int64(len(utf16.Encode(runes[:max(0, min(ev.Cursor, len(runes)))])))
	return input.ImeSetComposition(ev.Text, caret, caret)
}

// dispatchInput sends one translated event to the page.
func dispatchInput(ctx context.Context, ev entity.InputEvent, pointer *pointerState, scale float64) error {
	switch {
	case ev.Kind.IsPointer():
		if p := pointer.mouseAction(ev, scale); p != nil {
			return p.Do(ctx)
		}
		return nil
	case ev.Kind == entity.InputKey:
		return keyAction(ev).Do(ctx)
	case ev.Kind == entity.InputText:
		if ev.Text == "" {
			return nil
		}
		return input.InsertText(ev.Text).Do(ctx)
	case ev.Kind == entity.InputComposition:
		return compositionAction(ev).Do(ctx)
	default:
		return fmt.Errorf("input kind %s is not forwarded to pages", ev.Kind)
	}
}

var namedVirtualKeys = map[string]int64{
	"Backspace":   8,
	"Tab":         9,
	"Enter":       13,
	"Shift":       16,
	"Control":     17,
	"Alt":         18,
	"Pause":       19,
	"CapsLock":    20,
	"Escape":      27,
	" ":           32,
	"PageUp":      33,
	"PageDown":    34,
	"End":         35,
	"Home":        36,
	"ArrowLeft":   37,
	"ArrowUp":     38,
	"ArrowRight":  39,
	"ArrowDown":   40,
	"Insert":      45,
	"Delete":      46,
	"Meta":        91,
	"ContextMenu": 93,
}

// windowsVirtualKeyCode maps DOM key names to the legacy key codes pages
// still read from KeyboardEvent.keyCode.
func windowsVirtualKeyCode(k entity.Key) int64 {
	if vk, ok := namedVirtualKeys[k.Name]; ok {
		return vk
	}
	if len(k.Name) == 1 {
		c := k.Name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return int64(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return int64(c)
		}
	}
	if len(k.Name) >= 2 && k.Name[0] == 'F' {
		var n int
		if _, err := fmt.Sscanf(k.Name[1:], "%d", &n); err == nil && n >= 1 && n <= 24 {
			return int64(111 + n)
		}
	}
	return 0
}
