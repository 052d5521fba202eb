package layout

// Type tags a family of items that share a view template and can recycle
// each other's slots.
type Type string

// Layout holds the computed geometry of one data index.
type Layout struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`
	Type   Type    `msgpack:"t"`

	// IsOverridden marks a size that came from a measurement rather than
	// the layout policy's estimate. Relayout keeps it while Type is unchanged.
	IsOverridden bool `msgpack:"o,omitempty"`
}

// Rect returns the layout bounds.
func (l Layout) Rect() Rect {
	return Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}

// Origin returns the top-left corner.
func (l Layout) Origin() Point {
	return Point{X: l.X, Y: l.Y}
}

// Size returns the layout dimensions.
func (l Layout) Size() Dimension {
	return Dimension{Width: l.Width, Height: l.Height}
}

// Policy supplies item types and estimated sizes to a Manager.
type Policy interface {
	// LayoutTypeForIndex returns the view type of the item at index.
	LayoutTypeForIndex(index int) Type

	// EstimateDimension returns the expected size of an item.
	EstimateDimension(t Type, index int) Dimension
}

// Listener is notified with the new content dimension after every relayout.
type Listener interface {
	OnLayoutChange(content Dimension)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(content Dimension)

// OnLayoutChange calls f.
func (f ListenerFunc) OnLayoutChange(content Dimension) { f(content) }
