package events

// hardwareCodes maps XKB keycodes (evdev + 8) to KeyboardEvent.code values.
var hardwareCodes = map[uint]string{
	9:   "Escape",
	10:  "Digit1",
	11:  "Digit2",
	12:  "Digit3",
	13:  "Digit4",
	14:  "Digit5",
	15:  "Digit6",
	16:  "Digit7",
	17:  "Digit8",
	18:  "Digit9",
	19:  "Digit0",
	20:  "Minus",
	21:  "Equal",
	22:  "Backspace",
	23:  "Tab",
	24:  "KeyQ",
	25:  "KeyW",
	26:  "KeyE",
	27:  "KeyR",
	28:  "KeyT",
	29:  "KeyY",
	30:  "KeyU",
	31:  "KeyI",
	32:  "KeyO",
	33:  "KeyP",
	34:  "BracketLeft",
	35:  "BracketRight",
	36:  "Enter",
	37:  "ControlLeft",
	38:  "KeyA",
	39:  "KeyS",
	40:  "KeyD",
	41:  "KeyF",
	42:  "KeyG",
	43:  "KeyH",
	44:  "KeyJ",
	45:  "KeyK",
	46:  "KeyL",
	47:  "Semicolon",
	48:  "Quote",
	49:  "Backquote",
	50:  "ShiftLeft",
	51:  "Backslash",
	52:  "KeyZ",
	53:  "KeyX",
	54:  "KeyC",
	55:  "KeyV",
	56:  "KeyB",
	57:  "KeyN",
	58:  "KeyM",
	59:  "Comma",
	60:  "Period",
	61:  "Slash",
	62:  "ShiftRight",
	64:  "AltLeft",
	65:  "Space",
	66:  "CapsLock",
	67:  "F1",
	68:  "F2",
	69:  "F3",
	70:  "F4",
	71:  "F5",
	72:  "F6",
	73:  "F7",
	74:  "F8",
	75:  "F9",
	76:  "F10",
	95:  "F11",
	96:  "F12",
	104: "NumpadEnter",
	105: "ControlRight",
	108: "AltRight",
	110: "Home",
	111: "ArrowUp",
	112: "PageUp",
	113: "ArrowLeft",
	114: "ArrowRight",
	115: "End",
	116: "ArrowDown",
	117: "PageDown",
	118: "Insert",
	119: "Delete",
	133: "MetaLeft",
	134: "MetaRight",
	135: "ContextMenu",
}

// KeyCode returns the physical key code, empty when unknown.
func KeyCode(hardware uint) string {
	return hardwareCodes[hardware]
}
