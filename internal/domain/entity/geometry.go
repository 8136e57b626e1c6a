package entity

// Point is a position in floating point pixels.
type Point struct {
	X, Y float64
}

// Size is a pixel extent.
type Size struct {
	Width, Height int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Size returns the rectangle extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.X) && p.X < float64(r.X+r.Width) &&
		p.Y >= float64(r.Y) && p.Y < float64(r.Y+r.Height)
}
