package recycler

import (
	"github.com/grindlemire/go-recycler/internal/debug"
	"github.com/grindlemire/go-recycler/internal/errs"
	"github.com/grindlemire/go-recycler/internal/virtual"
)

const animationOnPagination = "layout animation render requested while paginating; " +
	"ignored to avoid creating too many items"

// SetSize reports the viewport size. The first call lays the list out and
// starts tracking. Later calls that change the cross axis rebuild the
// layout manager from the current layouts; primary-axis changes only
// refresh the visible range.
//
// A zero or negative width or height returns a BoundedSize error unless
// WithSuppressBoundedSizeError was given, in which case it is ignored.
func (l *ListView[T]) SetSize(size Dimension) error {
	if size.Width <= 0 || size.Height <= 0 {
		if !l.suppressBoundedSize {
			return errs.ErrBoundedSize
		}
		return nil
	}
	if !l.canChangeSize && l.layoutSize != nil {
		return nil
	}

	heightChanged := l.window.Height != size.Height
	widthChanged := l.window.Width != size.Width
	l.window = size

	var err error
	l.Batch(func() {
		if !l.initComplete {
			l.initComplete = true
			if err = l.initTrackers(); err != nil {
				return
			}
			l.processOnEndReached()
			return
		}
		if (heightChanged && widthChanged) ||
			(heightChanged && l.horizontal) ||
			(widthChanged && !l.horizontal) {
			err = l.checkAndChangeLayouts(l.layoutProvider, l.dataProvider, l.horizontal, true)
			return
		}
		l.syncParams()
		err = l.refreshViewability()
	})
	return err
}

// SetDataProvider replaces the data. Layout is recomputed from the
// provider's first changed index, and with stable ids, slots follow their
// items to new indexes.
func (l *ListView[T]) SetDataProvider(dp *DataProvider[T]) error {
	if dp == nil {
		return errs.ErrUnresolvedDependencies
	}
	var err error
	l.Batch(func() {
		if err = l.checkAndChangeLayouts(l.layoutProvider, dp, l.horizontal, false); err != nil {
			return
		}
		l.clampScroll()
	})
	l.markDirty()
	return err
}

// SetLayoutProvider replaces the layout provider and relays out every item.
func (l *ListView[T]) SetLayoutProvider(lp LayoutProvider) error {
	if lp == nil {
		return errs.ErrUnresolvedDependencies
	}
	var err error
	l.Batch(func() {
		err = l.checkAndChangeLayouts(lp, l.dataProvider, l.horizontal, false)
	})
	l.markDirty()
	return err
}

// SetHorizontal switches the scroll axis and relays out every item.
func (l *ListView[T]) SetHorizontal(horizontal bool) error {
	var err error
	l.Batch(func() {
		err = l.checkAndChangeLayouts(l.layoutProvider, l.dataProvider, horizontal, false)
	})
	l.markDirty()
	return err
}

// Tick performs the work deferred to the start of a frame: a pending
// initial or anchoring scroll, end reached detection, a pending relayout
// requested by a size discrepancy, and a progressive render-ahead step.
// It reports whether the list needs to be rendered.
func (l *ListView[T]) Tick() (bool, error) {
	if l.closed {
		return false, nil
	}
	var err error
	l.Batch(func() {
		l.processInitialOffset()
		l.processOnEndReached()
		err = l.checkAndChangeLayouts(l.layoutProvider, l.dataProvider, l.horizontal, false)
		l.renderer.SetOptimizeForAnimations(false)
		if l.progressive != nil {
			l.progressive.tick(l)
		}
	})
	return l.checkAndClearDirty(), err
}

// Close saves the scroll offset (and, with non-deterministic rendering, the
// layouts) to the context store. The list view must not be used afterwards.
func (l *ListView[T]) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.progressive = nil

	var layouts []Layout
	if l.nonDeterministic {
		if m := l.renderer.LayoutManager(); m != nil {
			layouts = append([]Layout{}, m.Layouts()...)
		}
	}
	err := saveContext(l.store, l.uniqueKey, l.CurrentScrollOffset(), layouts)
	if l.ownsDebugLog {
		if cerr := debug.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (l *ListView[T]) initTrackers() error {
	if l.onVisibleIndicesChanged != nil {
		l.renderer.AttachVisibleItemsListener(l.onVisibleIndicesChanged)
	}
	initial := l.initialOffset
	if l.restoredOffset > 0 {
		initial = l.restoredOffset
	}
	l.renderer.SetParamsAndDimensions(virtual.Params{
		Horizontal:         l.horizontal,
		ItemCount:          l.dataProvider.Size(),
		InitialOffset:      initial,
		InitialRenderIndex: l.initialRenderIndex,
		RenderAheadOffset:  l.renderAheadOffset,
	}, l.window)

	manager, err := l.layoutProvider.CreateLayoutManager(l.window, l.horizontal, l.cachedLayouts)
	if err != nil {
		return err
	}
	l.cachedLayouts = nil
	l.renderer.SetLayoutPolicy(l.layoutProvider)
	l.renderer.SetLayoutManager(manager)
	if err := l.renderer.Init(); err != nil {
		return err
	}
	if l.renderBehindOffset >= 0 {
		l.renderer.UpdateRenderBehindOffset(l.renderBehindOffset)
	}

	offset := l.renderer.InitialOffset()
	content := manager.ContentDimension()
	if (offset.Y > 0 && content.Height > l.window.Height) || (offset.X > 0 && content.Width > l.window.Width) {
		l.scrollOnNextUpdate(offset)
		return nil
	}
	l.renderer.StartViewabilityTracker(l.windowCorrection(offset.X, offset.Y))
	return nil
}

// syncParams pushes the current axis, item count and viewport size to the
// renderer, keeping the rest of its parameters.
func (l *ListView[T]) syncParams() {
	p, _ := l.renderer.Params()
	p.Horizontal = l.horizontal
	p.ItemCount = l.dataProvider.Size()
	l.renderer.SetParamsAndDimensions(p, l.window)
}

// checkAndChangeLayouts installs the given collaborators and brings layout
// and tracking up to date with whatever changed.
func (l *ListView[T]) checkAndChangeLayouts(lp LayoutProvider, dp *DataProvider[T], horizontal, forceFullRender bool) error {
	prevLP, prevDP, prevHorizontal := l.layoutProvider, l.dataProvider, l.horizontal
	l.layoutProvider, l.dataProvider, l.horizontal = lp, dp, horizontal
	if !l.initComplete {
		return nil
	}

	l.syncParams()
	l.renderer.SetLayoutPolicy(lp)
	if prevDP != dp {
		// Index identities past a shrink must be released as well.
		shrunk := dp.Size() < prevDP.Size()
		switch {
		case (dp.HasStableIDs() && dp.RequiresDataChangeHandling()) || shrunk:
			l.renderer.HandleDataSetChange(dp)
			l.renderStackWhenReady(l.renderer.RenderStack())
		case dp.HasStableIDs() && l.renderer.HasPendingAnimationOptimization():
			debug.Warn(animationOnPagination)
		}
	}

	switch {
	case prevLP != lp || prevHorizontal != horizontal:
		m, err := lp.CreateLayoutManager(l.window, horizontal, nil)
		if err != nil {
			return err
		}
		l.renderer.SetLayoutManager(m)
		if lp.ShouldRefreshWithAnchoring() {
			err = l.renderer.RefreshWithAnchor()
		} else {
			err = l.renderer.Refresh()
		}
		if err != nil {
			return err
		}
		return l.refreshViewability()
	case prevDP != dp:
		if dp.Size() > prevDP.Size() {
			l.onEndReachedCalled = false
		}
		if m := l.renderer.LayoutManager(); m != nil {
			m.RelayoutFromIndex(dp.FirstIndexToProcess(), dp.Size())
			return l.renderer.Refresh()
		}
	case forceFullRender:
		if m := l.renderer.LayoutManager(); m != nil {
			next, err := lp.CreateLayoutManager(l.window, horizontal, m.Layouts())
			if err != nil {
				return err
			}
			l.renderer.SetLayoutManager(next)
			return l.refreshViewability()
		}
	case l.relayoutReqIndex >= 0:
		if m := l.renderer.LayoutManager(); m != nil {
			size := dp.Size()
			m.RelayoutFromIndex(min(max(size-1, 0), l.relayoutReqIndex), size)
			l.relayoutReqIndex = -1
			return l.refreshViewability()
		}
	}
	return nil
}

// clampScroll pulls the offset back inside the content after it shrank.
// A host scroll surface does this itself and reports it through OnScroll.
func (l *ListView[T]) clampScroll() {
	if l.surface != nil || l.renderer.Tracker() == nil {
		return
	}
	limit := max(0, l.ContentDimension().Primary(l.horizontal)-l.window.Primary(l.horizontal))
	if current := l.CurrentScrollOffset(); current > limit {
		l.ScrollToOffset(limit, limit, false, false)
	}
}

func (l *ListView[T]) refreshViewability() error {
	err := l.renderer.Refresh()
	l.queueStateRefresh()
	return err
}

// requestRelayout records that layout must be recomputed from index on the
// next Tick.
func (l *ListView[T]) requestRelayout(index int) {
	if l.relayoutReqIndex == -1 {
		l.relayoutReqIndex = index
		return
	}
	l.relayoutReqIndex = min(l.relayoutReqIndex, index)
}
