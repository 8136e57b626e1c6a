package events

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		keyval uint
		want   string
	}{
		{'a', "a"},
		{'L', "L"},
		{' ', " "},
		{0xe9, "é"},
		{0x010020ac, "€"},
		{keyReturn, "Enter"},
		{keyISOLeftTab, "Tab"},
		{keyLeft, "ArrowLeft"},
		{keyF1, "F1"},
		{keyF1 + 11, "F12"},
		{keySuperL, "Meta"},
		{0xfe50, "Unidentified"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyName(tt.keyval))
		})
	}
}

func TestModifiers(t *testing.T) {
	assert.Equal(t, entity.Modifiers(0), Modifiers(0))
	assert.Equal(t, entity.ModCtrl|entity.ModShift, Modifiers(maskControl|maskShift))
	assert.Equal(t, entity.ModAlt, Modifiers(maskAlt))
	assert.Equal(t, entity.ModSuper, Modifiers(maskSuper))
	assert.Equal(t, entity.ModSuper, Modifiers(maskMeta))
}

func TestKeyEvents_PrintablePressAddsText(t *testing.T) {
	evs := KeyEvents('a', 38, 0, true)
	require.Len(t, evs, 2)
	assert.Equal(t, entity.NativeKeyboardInput, evs[0].Kind)
	assert.Equal(t, entity.Key{Name: "a", Code: "KeyA"}, evs[0].Key)
	assert.True(t, evs[0].Pressed)
	assert.Equal(t, entity.NativeReceivedText, evs[1].Kind)
	assert.Equal(t, "a", evs[1].Text)
}

func TestKeyEvents_ShiftedTextKeepsShift(t *testing.T) {
	evs := KeyEvents('A', 38, maskShift, true)
	require.Len(t, evs, 2)
	assert.Equal(t, "A", evs[1].Text)
	assert.True(t, evs[0].Key.Modifiers.Has(entity.ModShift))
}

func TestKeyEvents_NoTextForChordsOrReleases(t *testing.T) {
	assert.Len(t, KeyEvents('l', 46, maskControl, true), 1)
	assert.Len(t, KeyEvents('1', 10, maskAlt, true), 1)
	assert.Len(t, KeyEvents('a', 38, 0, false), 1)
	assert.Len(t, KeyEvents(keyReturn, 36, 0, true), 1)
}

func TestKeyEvents_DigitCodeSurvivesLayout(t *testing.T) {
	// AZERTY: the physical 1 key types '&'.
	evs := KeyEvents('&', 10, maskAlt, true)
	assert.Equal(t, "Digit1", evs[0].Key.Code)
	assert.Equal(t, "&", evs[0].Key.Name)
}

func TestMouseButton(t *testing.T) {
	assert.Equal(t, entity.MouseLeft, MouseButton(1))
	assert.Equal(t, entity.MouseMiddle, MouseButton(2))
	assert.Equal(t, entity.MouseRight, MouseButton(3))
	assert.Equal(t, entity.MouseBack, MouseButton(8))
	assert.Equal(t, entity.MouseForward, MouseButton(9))
	assert.Equal(t, entity.MouseNone, MouseButton(4))
}

func TestScroll(t *testing.T) {
	at := entity.Point{X: 10, Y: 20}
	wheel := Scroll(at, 0, 1, true)
	assert.Equal(t, entity.NativeMouseWheel, wheel.Kind)
	assert.Equal(t, entity.Point{X: 0, Y: scrollStep}, wheel.Delta)
	assert.Equal(t, at, wheel.Position)

	smooth := Scroll(at, -3.5, 0, false)
	assert.Equal(t, entity.Point{X: -3.5, Y: 0}, smooth.Delta)
}

func TestLeave(t *testing.T) {
	ev := Leave()
	assert.Equal(t, entity.NativeCursorMoved, ev.Kind)
	assert.Equal(t, entity.Point{X: -1, Y: -1}, ev.Position)
}

func TestButton(t *testing.T) {
	at := entity.Point{X: 5, Y: 6}
	ev, ok := Button(1, maskControl|maskShift, 2, at, true)
	require.True(t, ok)
	assert.Equal(t, entity.NativeMouseInput, ev.Kind)
	assert.Equal(t, entity.MouseLeft, ev.Button)
	assert.Equal(t, 2, ev.ClickCount)
	assert.Equal(t, entity.ModCtrl|entity.ModShift, ev.Key.Modifiers)
	assert.Equal(t, at, ev.Position)

	ev, ok = Button(3, 0, 0, at, false)
	require.True(t, ok)
	assert.Equal(t, 1, ev.ClickCount)

	_, ok = Button(7, 0, 1, at, true)
	assert.False(t, ok)
}

func TestTitle_KeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("日本", 100)
	got := Title(long, 255)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, runewidth.StringWidth(got), 255)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", Title("short", 255))
}
