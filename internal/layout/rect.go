package layout

// Rect represents a rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return max(r.X, other.X) < min(r.Right(), other.Right()) &&
		max(r.Y, other.Y) < min(r.Bottom(), other.Bottom())
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height}
}

// Span returns the [start, end) interval of the rectangle along the scroll axis.
func (r Rect) Span(horizontal bool) (start, end float64) {
	if horizontal {
		return r.X, r.Right()
	}
	return r.Y, r.Bottom()
}
