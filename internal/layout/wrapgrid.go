package layout

// boundsEpsilon absorbs sub-pixel rounding when deciding whether an item
// still fits in the current row.
const boundsEpsilon = 0.9

// WrapGrid packs items into rows (vertical scrolling) or columns
// (horizontal scrolling), wrapping when the window's cross extent is used up.
type WrapGrid struct {
	policy     Policy
	window     Dimension
	horizontal bool
	layouts    []Layout

	totalWidth  float64
	totalHeight float64

	listener Listener
}

// NewWrapGrid creates a wrap grid manager. cached, if non-nil, seeds the
// layout list (for example layouts persisted before the list was torn down).
func NewWrapGrid(policy Policy, window Dimension, horizontal bool, cached []Layout) *WrapGrid {
	g := &WrapGrid{
		policy:     policy,
		window:     window,
		horizontal: horizontal,
	}
	if cached != nil {
		g.layouts = append([]Layout(nil), cached...)
	}
	return g
}

// ContentDimension implements Manager.
func (g *WrapGrid) ContentDimension() Dimension {
	return Dimension{Width: g.totalWidth, Height: g.totalHeight}
}

// Layouts implements Manager.
func (g *WrapGrid) Layouts() []Layout {
	return g.layouts
}

// Layout implements Manager.
func (g *WrapGrid) Layout(index int) (Layout, bool) {
	if index < 0 || index >= len(g.layouts) {
		return Layout{}, false
	}
	return g.layouts[index], true
}

// OffsetForIndex implements Manager.
func (g *WrapGrid) OffsetForIndex(index int) Point {
	return offsetForIndex(g.layouts, index)
}

// Window implements Manager.
func (g *WrapGrid) Window() Dimension {
	return g.window
}

// IsHorizontal implements Manager.
func (g *WrapGrid) IsHorizontal() bool {
	return g.horizontal
}

// SetListener implements Manager.
func (g *WrapGrid) SetListener(l Listener) {
	g.listener = l
}

// CrossSizeForIndex implements Manager. A wrap grid imposes no cross size.
func (g *WrapGrid) CrossSizeForIndex(int) (float64, bool) {
	return 0, false
}

// OverrideLayout implements Manager.
func (g *WrapGrid) OverrideLayout(index int, dim Dimension) bool {
	if index < 0 || index >= len(g.layouts) {
		return false
	}
	l := &g.layouts[index]
	l.IsOverridden = true
	l.Width = dim.Width
	l.Height = dim.Height
	return true
}

// RemoveLayout implements Manager.
func (g *WrapGrid) RemoveLayout(index int) {
	if index >= 0 && index < len(g.layouts) {
		g.layouts = append(g.layouts[:index], g.layouts[index+1:]...)
	}
	if index == 0 && len(g.layouts) > 0 {
		g.layouts[0].X = 0
		g.layouts[0].Y = 0
	}
	if len(g.layouts) == 0 {
		g.totalWidth = 0
		g.totalHeight = 0
	}
}

// ClampToWindow implements Manager. An item can never be wider (vertical) or
// taller (horizontal) than the window.
func (g *WrapGrid) ClampToWindow(dim Dimension) Dimension {
	if g.horizontal {
		dim.Height = min(g.window.Height, dim.Height)
	} else {
		dim.Width = min(g.window.Width, dim.Width)
	}
	return dim
}

// RelayoutFromIndex implements Manager.
func (g *WrapGrid) RelayoutFromIndex(startIndex, itemCount int) {
	if itemCount < 0 {
		itemCount = 0
	}
	startIndex = g.firstNeighbourIndex(startIndex)

	var startX, startY, maxBound float64
	if startIndex < len(g.layouts) {
		start := g.layouts[startIndex]
		startX, startY = start.X, start.Y
		// Totals restart at the anchor row; rows before it are unchanged.
		if g.horizontal {
			g.totalWidth = start.X
		} else {
			g.totalHeight = start.Y
		}
	} else if g.horizontal {
		g.totalWidth = 0
	} else {
		g.totalHeight = 0
	}

	oldCount := len(g.layouts)
	for i := startIndex; i < itemCount; i++ {
		t := g.policy.LayoutTypeForIndex(i)

		var dim Dimension
		overridden := false
		if i < oldCount && g.layouts[i].IsOverridden && g.layouts[i].Type == t {
			dim = g.layouts[i].Size()
			overridden = true
		} else {
			dim = g.policy.EstimateDimension(t, i)
		}
		dim = g.ClampToWindow(dim)

		for !g.fits(startX, startY, dim) {
			if g.horizontal {
				startX += maxBound
				startY = 0
				g.totalWidth += maxBound
			} else {
				startX = 0
				startY += maxBound
				g.totalHeight += maxBound
			}
			maxBound = 0
		}

		maxBound = max(maxBound, dim.Primary(g.horizontal))

		l := Layout{X: startX, Y: startY, Width: dim.Width, Height: dim.Height, Type: t, IsOverridden: overridden}
		if i < oldCount {
			g.layouts[i] = l
		} else {
			g.layouts = append(g.layouts, l)
		}

		if g.horizontal {
			startY += dim.Height
		} else {
			startX += dim.Width
		}
	}

	if oldCount > itemCount {
		g.layouts = g.layouts[:itemCount]
	}
	g.setFinalDimensions(maxBound)
}

func (g *WrapGrid) setFinalDimensions(maxBound float64) {
	if g.horizontal {
		g.totalHeight = g.window.Height
		g.totalWidth += maxBound
	} else {
		g.totalWidth = g.window.Width
		g.totalHeight += maxBound
	}
	if g.listener != nil {
		g.listener.OnLayoutChange(g.ContentDimension())
	}
}

// firstNeighbourIndex walks back from startIndex to the first item of its
// row. Wrapping depends only on cross-axis usage within the current row, so
// relayout never has to start earlier.
func (g *WrapGrid) firstNeighbourIndex(startIndex int) int {
	startIndex = min(max(startIndex, 0), len(g.layouts))
	if startIndex == 0 {
		return 0
	}
	i := startIndex - 1
	for ; i > 0; i-- {
		if g.horizontal {
			if g.layouts[i].Y == 0 {
				break
			}
		} else if g.layouts[i].X == 0 {
			break
		}
	}
	return i
}

func (g *WrapGrid) fits(x, y float64, dim Dimension) bool {
	if g.horizontal {
		return y+dim.Height <= g.window.Height+boundsEpsilon
	}
	return x+dim.Width <= g.window.Width+boundsEpsilon
}
