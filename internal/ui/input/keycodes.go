package input

// Physical number-row keys, by KeyboardEvent.code. Matching on the physical
// position keeps Alt+1..9 working on layouts where the digit row produces
// other characters without Shift (AZERTY, QWERTZ).
var digitCodes = map[string]int{
	"Digit1": 0,
	"Digit2": 1,
	"Digit3": 2,
	"Digit4": 3,
	"Digit5": 4,
	"Digit6": 5,
	"Digit7": 6,
	"Digit8": 7,
	"Digit9": 8,
	"Digit0": 9,
}

// CodeToDigitIndex converts a physical key code to a tab index (0-9).
// Returns -1 and false for keys outside the number row.
//
// Mapping:
//   - "Digit1" -> index 0
//   - ...
//   - "Digit9" -> index 8
//   - "Digit0" -> index 9
func CodeToDigitIndex(code string) (index int, ok bool) {
	index, ok = digitCodes[code]
	if !ok {
		return -1, false
	}
	return index, true
}
