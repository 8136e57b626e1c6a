// Package events turns GTK input (keyvals, hardware keycodes, modifier
// state, button numbers) into entity.NativeEvent values. It holds no GTK
// references so it can be tested without a display.
package events

import (
	"strconv"
	"unicode"

	"github.com/bnema/moto/internal/domain/entity"
)

// X keysyms, as reported by GDK.
const (
	keyISOLevel3Shift = 0xfe03
	keyISOLeftTab     = 0xfe20
	keyBackSpace      = 0xff08
	keyTab            = 0xff09
	keyReturn         = 0xff0d
	keyPause          = 0xff13
	keyEscape         = 0xff1b
	keyHome           = 0xff50
	keyLeft           = 0xff51
	keyUp             = 0xff52
	keyRight          = 0xff53
	keyDown           = 0xff54
	keyPageUp         = 0xff55
	keyPageDown       = 0xff56
	keyEnd            = 0xff57
	keyInsert         = 0xff63
	keyMenu           = 0xff67
	keyKPEnter        = 0xff8d
	keyF1             = 0xffbe
	keyF24            = 0xffd5
	keyShiftL         = 0xffe1
	keyShiftR         = 0xffe2
	keyControlL       = 0xffe3
	keyControlR       = 0xffe4
	keyCapsLock       = 0xffe5
	keyMetaL          = 0xffe7
	keyMetaR          = 0xffe8
	keyAltL           = 0xffe9
	keyAltR           = 0xffea
	keySuperL         = 0xffeb
	keySuperR         = 0xffec
	keyDelete         = 0xffff
)

var namedKeys = map[uint]string{
	keyISOLevel3Shift: "AltGraph",
	keyISOLeftTab:     "Tab",
	keyBackSpace:      "Backspace",
	keyTab:            "Tab",
	keyReturn:         "Enter",
	keyKPEnter:        "Enter",
	keyPause:          "Pause",
	keyEscape:         "Escape",
	keyHome:           "Home",
	keyLeft:           "ArrowLeft",
	keyUp:             "ArrowUp",
	keyRight:          "ArrowRight",
	keyDown:           "ArrowDown",
	keyPageUp:         "PageUp",
	keyPageDown:       "PageDown",
	keyEnd:            "End",
	keyInsert:         "Insert",
	keyMenu:           "ContextMenu",
	keyShiftL:         "Shift",
	keyShiftR:         "Shift",
	keyControlL:       "Control",
	keyControlR:       "Control",
	keyCapsLock:       "CapsLock",
	keyMetaL:          "Meta",
	keyMetaR:          "Meta",
	keyAltL:           "Alt",
	keyAltR:           "Alt",
	keySuperL:         "Meta",
	keySuperR:         "Meta",
	keyDelete:         "Delete",
}

// GDK modifier mask bits.
const (
	maskShift   = 1 << 0
	maskControl = 1 << 2
	maskAlt     = 1 << 3
	maskSuper   = 1 << 26
	maskMeta    = 1 << 28
)

// Modifiers converts a GdkModifierType bitmask.
func Modifiers(state uint) entity.Modifiers {
	var m entity.Modifiers
	if state&maskShift != 0 {
		m |= entity.ModShift
	}
	if state&maskControl != 0 {
		m |= entity.ModCtrl
	}
	if state&maskAlt != 0 {
		m |= entity.ModAlt
	}
	if state&(maskSuper|maskMeta) != 0 {
		m |= entity.ModSuper
	}
	return m
}

// KeyvalRune returns the character a keyval types, or 0.
func KeyvalRune(keyval uint) rune {
	switch {
	case keyval >= 0x20 && keyval <= 0x7e, keyval >= 0xa0 && keyval <= 0xff:
		return rune(keyval)
	case keyval >= 0x01000100 && keyval <= 0x0110ffff:
		return rune(keyval - 0x01000000)
	default:
		return 0
	}
}

// KeyName returns the KeyboardEvent.key value for keyval.
func KeyName(keyval uint) string {
	if name, ok := namedKeys[keyval]; ok {
		return name
	}
	if keyval >= keyF1 && keyval <= keyF24 {
		return "F" + strconv.Itoa(int(keyval-keyF1)+1)
	}
	if r := KeyvalRune(keyval); r != 0 && unicode.IsPrint(r) {
		return string(r)
	}
	return "Unidentified"
}

// Key builds the entity key for a GDK key event.
func Key(keyval, keycode, state uint) entity.Key {
	return entity.Key{
		Name:      KeyName(keyval),
		Code:      KeyCode(keycode),
		Modifiers: Modifiers(state),
	}
}

// KeyEvents returns the native events for one key press or release: the key
// itself, then the typed text for presses that produce a character without
// a command modifier.
func KeyEvents(keyval, keycode, state uint, pressed bool) []entity.NativeEvent {
	key := Key(keyval, keycode, state)
	out := []entity.NativeEvent{{Kind: entity.NativeKeyboardInput, Key: key, Pressed: pressed}}
	if !pressed || key.Modifiers&(entity.ModCtrl|entity.ModAlt|entity.ModSuper) != 0 {
		return out
	}
	if r := KeyvalRune(keyval); r != 0 && unicode.IsPrint(r) {
		out = append(out, entity.NativeEvent{Kind: entity.NativeReceivedText, Text: string(r)})
	}
	return out
}
