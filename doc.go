// Package recycler virtualizes arbitrarily long lists and grids.
//
// A [ListView] materializes only the items inside (or near) its viewport and
// reuses a small set of view slots as the user scrolls. Hosts supply three
// collaborators:
//
//   - a [DataProvider] holding the items and their stable identities,
//   - a [LayoutProvider] assigning each index a [LayoutType] and a size,
//   - a [RowRenderer] that draws one [Row] per render stack entry.
//
// The host drives the view: it reports the viewport size with SetSize,
// scroll positions with OnScroll, and measured sizes with ReportItemSize,
// then calls Tick at the start of each frame and Render to draw.
//
//	dp := recycler.NewDataProvider(func(a, b Item) bool { return a != b }).
//	    CloneWithRows(items)
//	lp := recycler.NewLayoutProvider(
//	    func(int) recycler.LayoutType { return "row" },
//	    func(recycler.LayoutType, int) recycler.Dimension {
//	        return recycler.Dimension{Width: 80, Height: 1}
//	    },
//	)
//	lv, err := recycler.NewListView(lp, dp, drawRow)
//
// The engine is single-threaded. All methods must be called from the
// goroutine driving the host's render loop.
package recycler
