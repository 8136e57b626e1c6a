package overlay

import (
	"image"
	"image/color"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// MaxLabelColumns bounds tab labels.
const MaxLabelColumns = 20

const ellipsis = "…"

var face = basicfont.Face7x13

// Glyph cell of the built-in face, in logical pixels.
const (
	cellWidth  = 7
	cellHeight = 13
	baseline   = 11
)

// TruncateLabel shortens s to at most cols display columns, ending with an
// ellipsis when something was cut.
func TruncateLabel(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= cols {
		return s
	}
	return runewidth.Truncate(s, cols, ellipsis)
}

// fitColumns returns how many cells fit in px logical pixels.
func fitColumns(px int) int {
	if px <= 0 {
		return 0
	}
	return px / cellWidth
}

// drawText renders s with its top-left corner at pt, clipped to clip.
// Runes the face lacks are drawn as their ASCII fallback.
func drawText(dst *image.RGBA, clip image.Rectangle, pt image.Point, s string, c color.Color) {
	clipped, ok := dst.SubImage(clip.Intersect(dst.Bounds())).(*image.RGBA)
	if !ok || clipped.Bounds().Empty() {
		return
	}
	d := font.Drawer{
		Dst:  clipped,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+baseline),
	}
	d.DrawString(asciiFallback(s))
}

var fallbacks = strings.NewReplacer(
	"…", "...",
	"★", "*",
	"☆", "*",
	"←", "<",
	"→", ">",
	"×", "x",
)

func asciiFallback(s string) string {
	return fallbacks.Replace(s)
}

// textWidth returns the rendered width of s in logical pixels.
func textWidth(s string) int {
	return font.MeasureString(face, asciiFallback(s)).Round()
}
