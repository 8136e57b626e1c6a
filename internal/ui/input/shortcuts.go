// Package input turns native window events into engine input and routes each
// event to either the overlay or the active page.
package input

import (
	"context"
	"strings"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/logging"
)

// Action represents what happens when a shortcut is triggered.
type Action string

// Shell actions.
const (
	ActionNone          Action = ""
	ActionFocusLocation Action = "focus_location"
	ActionNewTab        Action = "new_tab"
	ActionCloseTab      Action = "close_tab"
	ActionNextTab       Action = "next_tab"
	ActionPreviousTab   Action = "previous_tab"
	ActionSwitchTab     Action = "switch_tab"
	ActionReload        Action = "reload"
	ActionStop          Action = "stop"
	ActionGoBack        Action = "go_back"
	ActionGoForward     Action = "go_forward"
	ActionBookmark      Action = "bookmark"
	ActionHistory       Action = "history"
	ActionOpenFile      Action = "open_file"
	ActionQuit          Action = "quit"
)

// KeyBinding is a normalized key chord.
type KeyBinding struct {
	Name      string // lower-cased KeyboardEvent.key
	Modifiers entity.Modifiers
}

// BindingFor normalizes a key for table lookup.
func BindingFor(k entity.Key) KeyBinding {
	return KeyBinding{Name: strings.ToLower(k.Name), Modifiers: k.Modifiers}
}

var keyAliases = map[string]string{
	"esc":   "escape",
	"left":  "arrowleft",
	"right": "arrowright",
	"up":    "arrowup",
	"down":  "arrowdown",
	"pgup":  "pageup",
	"pgdn":  "pagedown",
	"del":   "delete",
	"space": " ",
	"plus":  "+",
	"minus": "-",
}

// ParseKeyString parses a chord such as "ctrl+shift+t" or "alt+left".
func ParseKeyString(s string) (KeyBinding, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return KeyBinding{}, false
	}

	// "ctrl++" binds the plus key.
	var parts []string
	if strings.HasSuffix(s, "++") {
		parts = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	} else {
		parts = strings.Split(s, "+")
	}

	var b KeyBinding
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl", "control":
			b.Modifiers |= entity.ModCtrl
		case "shift":
			b.Modifiers |= entity.ModShift
		case "alt":
			b.Modifiers |= entity.ModAlt
		case "super", "meta", "cmd":
			b.Modifiers |= entity.ModSuper
		default:
			return KeyBinding{}, false
		}
	}

	name := parts[len(parts)-1]
	if name == "" {
		return KeyBinding{}, false
	}
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	b.Name = name
	return b, true
}

// ShortcutTable maps KeyBinding to Action.
type ShortcutTable map[KeyBinding]Action

// DefaultShortcuts returns the built-in chords.
func DefaultShortcuts() map[Action][]string {
	return map[Action][]string{
		ActionFocusLocation: {"ctrl+l", "f6"},
		ActionNewTab:        {"ctrl+t"},
		ActionCloseTab:      {"ctrl+w"},
		ActionNextTab:       {"ctrl+tab", "ctrl+pagedown"},
		ActionPreviousTab:   {"ctrl+shift+tab", "ctrl+pageup"},
		ActionReload:        {"ctrl+r", "f5"},
		ActionStop:          {"escape"},
		ActionGoBack:        {"alt+left"},
		ActionGoForward:     {"alt+right"},
		ActionBookmark:      {"ctrl+d"},
		ActionHistory:       {"ctrl+h"},
		ActionOpenFile:      {"ctrl+o"},
		ActionQuit:          {"ctrl+q"},
	}
}

// NewShortcutTable builds the table from the defaults, replacing the chords
// of any action present in overrides.
func NewShortcutTable(ctx context.Context, overrides map[string][]string) ShortcutTable {
	log := logging.FromContext(ctx)

	chords := DefaultShortcuts()
	for action, keys := range overrides {
		chords[Action(action)] = keys
	}

	table := make(ShortcutTable)
	for action, keys := range chords {
		for _, key := range keys {
			binding, ok := ParseKeyString(key)
			if !ok {
				log.Warn().Str("action", string(action)).Str("shortcut", key).Msg("failed to parse shortcut")
				continue
			}
			table[binding] = action
		}
	}

	log.Debug().Int("shortcuts", len(table)).Msg("shortcuts registered")
	return table
}

// Lookup returns the action bound to k. Alt+digit switches to a tab by
// physical key position; the returned index is only meaningful for
// ActionSwitchTab.
func (t ShortcutTable) Lookup(k entity.Key) (Action, int) {
	if k.Modifiers == entity.ModAlt {
		if idx, ok := CodeToDigitIndex(k.Code); ok {
			return ActionSwitchTab, idx
		}
	}
	return t[BindingFor(k)], -1
}
