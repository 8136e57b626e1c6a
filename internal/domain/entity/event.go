package entity

import (
	"strings"
	"time"
)

// NativeKind tags a native window event.
type NativeKind int

const (
	NativeCursorMoved NativeKind = iota
	NativeMouseInput
	NativeMouseWheel
	NativeKeyboardInput
	NativeReceivedText
	// NativeComposition carries the input method's preedit text. An empty
	// Text ends the composition.
	NativeComposition
	NativeResized
	NativeFocused
	NativeCloseRequested
	// NativeVisibility is a lifecycle event for the loop, not for any layer.
	NativeVisibility
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseBack
	MouseForward
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseBack:
		return "back"
	case MouseForward:
		return "forward"
	default:
		return "none"
	}
}

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether all bits in m2 are set.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Key describes a keyboard key using DOM naming: Name is the KeyboardEvent.key
// value ("a", "Enter", "ArrowLeft"), Code the physical KeyboardEvent.code.
type Key struct {
	Name      string
	Code      string
	Modifiers Modifiers
}

// Matches compares against a chord like "ctrl+l" or "alt+ArrowLeft".
func (k Key) Matches(chord string) bool {
	parts := strings.Split(chord, "+")
	var want Modifiers
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "shift":
			want |= ModShift
		case "ctrl":
			want |= ModCtrl
		case "alt":
			want |= ModAlt
		case "super":
			want |= ModSuper
		}
	}
	return k.Modifiers == want && strings.EqualFold(k.Name, parts[len(parts)-1])
}

// NativeEvent is a PendingEvent: a raw window event awaiting translation.
// Positions are in window logical pixels. Pointer events carry the held
// modifiers in Key.Modifiers.
type NativeEvent struct {
	Kind     NativeKind
	Position Point
	Button   MouseButton
	Pressed  bool
	// ClickCount is the platform's multi-click count for button presses.
	ClickCount int
	Delta      Point
	Key        Key
	Text       string
	// Cursor is the caret inside a composition, in runes.
	Cursor     int
	Size       Size
	Scale      float64
	Focused    bool
	Visible    bool
	Time       time.Time
}

// InputKind tags a translated event.
type InputKind int

const (
	InputPointerMove InputKind = iota
	InputPointerButton
	InputScroll
	InputKey
	InputText
	InputComposition
	InputResize
	InputFocus
	InputClose
)

var inputKindNames = [...]string{
	InputPointerMove:   "pointer-move",
	InputPointerButton: "pointer-button",
	InputScroll:        "scroll",
	InputKey:           "key",
	InputText:          "text",
	InputComposition:   "composition",
	InputResize:        "resize",
	InputFocus:         "focus",
	InputClose:         "close",
}

func (k InputKind) String() string {
	if int(k) < len(inputKindNames) {
		return inputKindNames[k]
	}
	return "unknown"
}

// IsPointer reports whether the event belongs to the pointer device class.
func (k InputKind) IsPointer() bool {
	return k == InputPointerMove || k == InputPointerButton || k == InputScroll
}

// IsKeyboard reports whether the event belongs to the keyboard device class.
func (k InputKind) IsKeyboard() bool {
	return k == InputKey || k == InputText || k == InputComposition
}

// InputEvent is a TranslatedEvent. Window holds the original window
// position; Content is the same point in the active WebView's device
// pixel space, clamped into its bounds.
type InputEvent struct {
	Kind       InputKind
	Window     Point
	Content    Point
	Button     MouseButton
	Pressed    bool
	ClickCount int
	Delta      Point
	Key        Key
	Text       string
	Cursor     int
	Size       Size
	Scale      float64
	Focused    bool
}
