package recycler

import (
	"golang.org/x/exp/maps"

	"github.com/grindlemire/go-recycler/internal/errs"
	"github.com/grindlemire/go-recycler/internal/virtual"
)

// Row is one materialized item handed to a RowRenderer.
type Row[T any] struct {
	// Key identifies the view slot. A renderer that keeps per-slot state
	// (widgets, caches) should key it by Key: the slot moves between items
	// as the list recycles.
	Key   string
	Type  LayoutType
	Data  T
	Index int
	Frame Rect

	// CrossSize is the cross-axis extent the layout manager imposes on the
	// item, or zero when it imposes none.
	CrossSize float64

	// Extended is the value given to WithExtendedState.
	Extended any
}

// RowRenderer draws one row.
type RowRenderer[T any] func(row Row[T])

// ListView virtualizes a list of T. It is not safe for concurrent use.
type ListView[T any] struct {
	config

	layoutProvider LayoutProvider
	dataProvider   *DataProvider[T]
	renderRow      RowRenderer[T]
	renderer       *virtual.Renderer

	window         Dimension
	initComplete   bool
	restoredOffset float64
	cachedLayouts  []Layout

	relayoutReqIndex      int
	pendingScrollToOffset *Point
	hasPendingStack       bool
	renderStack           RenderStack
	onEndReachedCalled    bool

	dirty bool
	batch batchState

	closed bool
}

// NewListView creates a list view. It fails with an UnresolvedDependencies
// error when a collaborator is missing, with a ContextStore error when saved
// state cannot be read, and with the option's error for invalid options.
//
// Layout providers are compared by identity to detect changes, so
// implementations must be comparable (usually pointers).
func NewListView[T any](lp LayoutProvider, dp *DataProvider[T], renderRow RowRenderer[T], opts ...Option) (*ListView[T], error) {
	if lp == nil || dp == nil {
		return nil, errs.ErrUnresolvedDependencies
	}
	if renderRow == nil {
		return nil, errs.New(errs.KindUnresolvedDependencies, "a row renderer is required")
	}

	l := &ListView[T]{
		config:           defaultConfig(),
		layoutProvider:   lp,
		dataProvider:     dp,
		renderRow:        renderRow,
		relayoutReqIndex: -1,
		renderStack:      make(RenderStack),
	}
	for _, opt := range opts {
		if err := opt(&l.config); err != nil {
			return nil, err
		}
	}
	if l.progressive != nil && !l.renderAheadSet {
		l.renderAheadOffset = 0
	}

	l.renderer = virtual.New(l.renderStackWhenReady, l.scrollOnNextUpdate, l.stableID, l.recycling)

	rc, err := loadContext(l.store, l.uniqueKey, l.nonDeterministic)
	if err != nil {
		return nil, err
	}
	if rc.offset > 0 {
		l.restoredOffset = rc.offset
		if l.onRecreate != nil {
			l.onRecreate(rc.offset)
		}
	}
	l.cachedLayouts = rc.layouts

	if l.layoutSize != nil {
		l.window = *l.layoutSize
		l.initComplete = true
		if err := l.initTrackers(); err != nil {
			return nil, err
		}
	}

	if l.progressive != nil && !l.nonDeterministic {
		l.progressive.schedule(l.CurrentRenderAheadOffset())
	}
	return l, nil
}

func (l *ListView[T]) stableID(index int) string {
	return l.dataProvider.StableID(index)
}

// DataProvider returns the current data provider.
func (l *ListView[T]) DataProvider() *DataProvider[T] {
	return l.dataProvider
}

// LayoutProvider returns the current layout provider.
func (l *ListView[T]) LayoutProvider() LayoutProvider {
	return l.layoutProvider
}

// IsHorizontal reports whether the list scrolls along the x axis.
func (l *ListView[T]) IsHorizontal() bool {
	return l.horizontal
}

// LayoutManager returns the active layout manager, or nil before the
// viewport size is known.
func (l *ListView[T]) LayoutManager() LayoutManager {
	return l.renderer.LayoutManager()
}

// Layout returns the computed layout of the item at index.
func (l *ListView[T]) Layout(index int) (Layout, bool) {
	m := l.renderer.LayoutManager()
	if m == nil {
		return Layout{}, false
	}
	return m.Layout(index)
}

// ContentDimension returns the size of all laid out content.
func (l *ListView[T]) ContentDimension() Dimension {
	return l.renderer.LayoutDimension()
}

// RenderedSize returns the viewport size.
func (l *ListView[T]) RenderedSize() Dimension {
	return l.window
}

// RenderStack returns a copy of the render stack the next Render draws.
func (l *ListView[T]) RenderStack() RenderStack {
	return maps.Clone(l.renderStack)
}

// VisibleIndexes returns the indexes intersecting the viewport.
func (l *ListView[T]) VisibleIndexes() []int {
	if t := l.renderer.Tracker(); t != nil {
		return append([]int(nil), t.VisibleIndexes()...)
	}
	return nil
}

// FindApproxFirstVisibleIndex returns the first index of the first visible
// row, or 0 before the list is measured.
func (l *ListView[T]) FindApproxFirstVisibleIndex() int {
	if t := l.renderer.Tracker(); t != nil {
		return t.FindFirstLogicallyVisibleIndex()
	}
	return 0
}

// CurrentScrollOffset returns the last offset reported through OnScroll.
func (l *ListView[T]) CurrentScrollOffset() float64 {
	if t := l.renderer.Tracker(); t != nil {
		return max(0, t.LastActualOffset())
	}
	return 0
}

// CurrentRenderAheadOffset returns the render-ahead margin in effect.
func (l *ListView[T]) CurrentRenderAheadOffset() float64 {
	if l.renderer.Tracker() != nil {
		return l.renderer.RenderAheadOffset()
	}
	return l.renderAheadOffset
}

// UpdateRenderAheadOffset changes the render-ahead margin and refreshes the
// engaged range. It reports false when tracking has not started yet.
func (l *ListView[T]) UpdateRenderAheadOffset(offset float64) bool {
	var ok bool
	l.Batch(func() {
		ok = l.renderer.UpdateRenderAheadOffset(offset)
	})
	return ok
}

// UpdateRenderBehindOffset changes the margin kept behind the scroll
// direction. A negative value mirrors the render-ahead margin.
func (l *ListView[T]) UpdateRenderBehindOffset(offset float64) bool {
	l.renderBehindOffset = offset
	var ok bool
	l.Batch(func() {
		ok = l.renderer.UpdateRenderBehindOffset(offset)
	})
	return ok
}

// PrepareForLayoutAnimationRender keeps removed items' slots out of the
// recycle pool during the next data change so they can animate out. It is
// reset at the next Tick.
func (l *ListView[T]) PrepareForLayoutAnimationRender() {
	l.renderer.SetOptimizeForAnimations(true)
}
