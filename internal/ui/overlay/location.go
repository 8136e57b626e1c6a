package overlay

// LocationField is the editable address bar. While the user edits it the
// field is dirty and url updates from the page do not overwrite the text.
type LocationField struct {
	text      []rune
	cursor    int
	focused   bool
	dirty     bool
	selectAll bool
}

// Text returns the current contents.
func (f *LocationField) Text() string { return string(f.text) }

// Cursor returns the caret position in runes.
func (f *LocationField) Cursor() int { return f.cursor }

// Focused reports whether the field has keyboard focus.
func (f *LocationField) Focused() bool { return f.focused }

// Dirty reports whether the text holds unsubmitted user edits.
func (f *LocationField) Dirty() bool { return f.dirty }

// Selected reports whether the whole text is selected.
func (f *LocationField) Selected() bool { return f.selectAll }

// SetURL shows url unless the user is editing.
func (f *LocationField) SetURL(url string) {
	if f.dirty {
		return
	}
	f.text = []rune(url)
	f.cursor = len(f.text)
}

// Focus gives the field keyboard focus and selects its text.
func (f *LocationField) Focus() {
	f.focused = true
	f.selectAll = len(f.text) > 0
	f.cursor = len(f.text)
}

// Prompt focuses the field with prefix typed in, ready for the rest.
func (f *LocationField) Prompt(prefix string) {
	f.text = []rune(prefix)
	f.cursor = len(f.text)
	f.focused = true
	f.dirty = true
	f.selectAll = false
}

// Blur drops keyboard focus. Unsubmitted edits stay visible.
func (f *LocationField) Blur() {
	f.focused = false
	f.selectAll = false
}

// Revert discards edits and restores url.
func (f *LocationField) Revert(url string) {
	f.dirty = false
	f.SetURL(url)
	f.Blur()
}

// Submit returns the text to navigate to and clears the dirty flag.
func (f *LocationField) Submit() string {
	f.dirty = false
	f.Blur()
	return string(f.text)
}

// MoveCursor places the caret at pos, clamped to the text.
func (f *LocationField) MoveCursor(pos int) {
	f.selectAll = false
	f.cursor = max(0, min(pos, len(f.text)))
}

// Insert types s at the caret, replacing a full selection.
func (f *LocationField) Insert(s string) {
	if s == "" {
		return
	}
	if f.selectAll {
		f.text = f.text[:0]
		f.cursor = 0
		f.selectAll = false
	}
	r := []rune(s)
	f.text = append(f.text[:f.cursor], append(r, f.text[f.cursor:]...)...)
	f.cursor += len(r)
	f.dirty = true
}

// Backspace deletes the rune before the caret, or the whole selection.
func (f *LocationField) Backspace() {
	if f.clearSelection() {
		return
	}
	if f.cursor == 0 {
		return
	}
	f.text = append(f.text[:f.cursor-1], f.text[f.cursor:]...)
	f.cursor--
	f.dirty = true
}

// Delete deletes the rune after the caret, or the whole selection.
func (f *LocationField) Delete() {
	if f.clearSelection() {
		return
	}
	if f.cursor >= len(f.text) {
		return
	}
	f.text = append(f.text[:f.cursor], f.text[f.cursor+1:]...)
	f.dirty = true
}

func (f *LocationField) clearSelection() bool {
	if !f.selectAll {
		return false
	}
	f.text = f.text[:0]
	f.cursor = 0
	f.selectAll = false
	f.dirty = true
	return true
}
