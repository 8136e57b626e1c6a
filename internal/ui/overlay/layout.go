package overlay

import "image"

const (
	buttonWidth   = 28
	newTabWidth   = 28
	closeBoxWidth = 16
	minTabWidth   = 64
	maxTabWidth   = 200
	padding       = 4
	menuWidth     = 360
	menuRowHeight = cellHeight + 2*padding
)

// layout holds hit rectangles in logical window pixels.
type layout struct {
	width, height int
	tabStrip      image.Rectangle
	tabs          []image.Rectangle
	closeBoxes    []image.Rectangle
	newTab        image.Rectangle
	toolbar       image.Rectangle
	back          image.Rectangle
	forward       image.Rectangle
	reload        image.Rectangle
	location      image.Rectangle
	history       image.Rectangle
	bookmark      image.Rectangle
}

func computeLayout(width, chromeHeight, tabCount int) layout {
	l := layout{width: width, height: chromeHeight}
	stripH := chromeHeight / 2
	l.tabStrip = image.Rect(0, 0, width, stripH)
	l.toolbar = image.Rect(0, stripH, width, chromeHeight)

	if tabCount > 0 {
		tabW := (width - newTabWidth) / tabCount
		tabW = max(minTabWidth, min(tabW, maxTabWidth))
		for i := 0; i < tabCount; i++ {
			r := image.Rect(i*tabW, 0, (i+1)*tabW, stripH)
			l.tabs = append(l.tabs, r)
			l.closeBoxes = append(l.closeBoxes, image.Rect(r.Max.X-closeBoxWidth-padding, r.Min.Y, r.Max.X-padding, r.Max.Y))
		}
	}
	tabsEnd := 0
	if n := len(l.tabs); n > 0 {
		tabsEnd = l.tabs[n-1].Max.X
	}
	l.newTab = image.Rect(tabsEnd, 0, tabsEnd+newTabWidth, stripH)

	y0, y1 := stripH+padding, chromeHeight-padding
	x := padding
	l.back = image.Rect(x, y0, x+buttonWidth, y1)
	x += buttonWidth + padding
	l.forward = image.Rect(x, y0, x+buttonWidth, y1)
	x += buttonWidth + padding
	l.reload = image.Rect(x, y0, x+buttonWidth, y1)
	x += buttonWidth + padding

	l.bookmark = image.Rect(width-padding-buttonWidth, y0, width-padding, y1)
	l.history = image.Rect(l.bookmark.Min.X-padding-buttonWidth, y0, l.bookmark.Min.X-padding, y1)
	l.location = image.Rect(x, y0, max(x, l.history.Min.X-padding), y1)
	return l
}

// menuRows returns the rows of an n-item menu hanging below the history
// button, kept inside the window.
func (l layout) menuRows(n int) []image.Rectangle {
	if n == 0 {
		return nil
	}
	w := min(menuWidth, l.width)
	x1 := min(l.width, l.history.Max.X)
	x0 := max(0, x1-w)
	rows := make([]image.Rectangle, n)
	for i := range rows {
		y := l.height + i*menuRowHeight
		rows[i] = image.Rect(x0, y, x0+w, y+menuRowHeight)
	}
	return rows
}

// menuAt returns the row under p, or -1.
func menuAt(rows []image.Rectangle, p image.Point) int {
	for i, r := range rows {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// tabAt returns the tab index under p and whether p is on its close box.
func (l layout) tabAt(p image.Point) (idx int, onClose bool) {
	for i, r := range l.tabs {
		if p.In(r) {
			return i, p.In(l.closeBoxes[i])
		}
	}
	return -1, false
}
