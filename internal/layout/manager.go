package layout

import "github.com/grindlemire/go-recycler/internal/errs"

// Manager owns the layout list of a virtualized collection.
// The layout list is exclusively mutated by its Manager; other components
// only read it.
type Manager interface {
	// ContentDimension returns the total scrollable extent.
	ContentDimension() Dimension

	// Layouts returns the index-aligned layout list. Callers must not mutate it.
	Layouts() []Layout

	// Layout returns the layout at index, or false if none is computed.
	Layout(index int) (Layout, bool)

	// OffsetForIndex returns the origin of the item at index.
	// It panics with a LayoutUnavailable error if index has no layout.
	OffsetForIndex(index int) Point

	// OverrideLayout records a measured size and reports whether a relayout
	// should be scheduled.
	OverrideLayout(index int, dim Dimension) bool

	// RelayoutFromIndex recomputes geometry from the row containing
	// startIndex through itemCount-1 and trims surplus entries.
	RelayoutFromIndex(startIndex, itemCount int)

	// RemoveLayout deletes the layout at index.
	RemoveLayout(index int)

	// CrossSizeForIndex returns a cross-axis size the renderer must apply,
	// if the manager imposes one.
	CrossSizeForIndex(index int) (float64, bool)

	// ClampToWindow limits the cross-axis extent of dim to the window.
	ClampToWindow(dim Dimension) Dimension

	// Window returns the render window the manager packs into.
	Window() Dimension

	// IsHorizontal reports whether the scroll axis is horizontal.
	IsHorizontal() bool

	// SetListener registers (or, with nil, detaches) the layout change listener.
	SetListener(l Listener)
}

// offsetForIndex is shared by managers backed by a layout slice.
func offsetForIndex(layouts []Layout, index int) Point {
	if index < 0 || index >= len(layouts) {
		panic(errs.New(errs.KindLayoutUnavailable, "no layout available for index: %d", index))
	}
	return layouts[index].Origin()
}
