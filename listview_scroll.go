package recycler

import (
	"github.com/grindlemire/go-recycler/internal/debug"
	"github.com/grindlemire/go-recycler/internal/errs"
)

const scrollBeforeMeasure = "scroll requested before the list was measured; call SetSize first"

// OnScroll reports the scroll position of the host's scroll surface.
func (l *ListView[T]) OnScroll(offsetX, offsetY float64) {
	l.Batch(func() {
		l.renderer.UpdateOffset(offsetX, offsetY, true, l.windowCorrection(offsetX, offsetY))
		if l.onScroll != nil {
			l.onScroll(offsetX, offsetY)
		}
		l.processOnEndReached()
	})
}

// ScrollToOffset scrolls to (x, y). The cross-axis coordinate is ignored.
// With useWindowCorrection the window shift is subtracted first.
func (l *ListView[T]) ScrollToOffset(x, y float64, animate, useWindowCorrection bool) {
	shift := 0.0
	if useWindowCorrection {
		shift = l.correction.Value.WindowShift
	}
	if l.horizontal {
		x, y = x-shift, 0
	} else {
		x, y = 0, y-shift
	}
	if l.surface != nil {
		l.surface.ScrollTo(x, y, animate)
		return
	}
	// Without a surface the list is its own scroll surface and clamps like one.
	limit := max(0, l.ContentDimension().Primary(l.horizontal)-l.window.Primary(l.horizontal))
	if l.horizontal {
		x = min(max(x, 0), limit)
	} else {
		y = min(max(y, 0), limit)
	}
	l.OnScroll(x, y)
}

// ScrollBy scrolls delta along the scroll axis from the current offset.
func (l *ListView[T]) ScrollBy(delta float64, animate bool) {
	offset := l.CurrentScrollOffset() + delta
	l.ScrollToOffset(offset, offset, animate, false)
}

// ScrollToIndex scrolls the item at index to the start of the viewport.
// It returns a LayoutUnavailable error for an index without layout.
func (l *ListView[T]) ScrollToIndex(index int, animate bool) error {
	m := l.renderer.LayoutManager()
	if m == nil {
		debug.Warn(scrollBeforeMeasure)
		return nil
	}
	if _, ok := m.Layout(index); !ok {
		return errs.New(errs.KindLayoutUnavailable, "no layout available for index: %d", index)
	}
	p := m.OffsetForIndex(index)
	l.ScrollToOffset(p.X, p.Y, animate, l.correction.ApplyToItemScroll)
	return nil
}

// ScrollToItem scrolls to the first item match accepts. It reports whether
// one was found.
func (l *ListView[T]) ScrollToItem(match func(item T) bool, animate bool) (bool, error) {
	for i, item := range l.dataProvider.All() {
		if match(item) {
			return true, l.ScrollToIndex(i, animate)
		}
	}
	return false, nil
}

// ScrollToTop scrolls to offset zero.
func (l *ListView[T]) ScrollToTop(animate bool) {
	l.ScrollToOffset(0, 0, animate, false)
}

// ScrollToEnd scrolls to the last item.
func (l *ListView[T]) ScrollToEnd(animate bool) error {
	last := l.dataProvider.Size() - 1
	if last < 0 {
		return nil
	}
	return l.ScrollToIndex(last, animate)
}

// BringToFocus scrolls the least amount needed to show the item at index.
// Items larger than the viewport, or starting outside it, are scrolled to
// the start of the viewport; an item cut off at the end is scrolled just
// into view.
func (l *ListView[T]) BringToFocus(index int, animate bool) error {
	item, ok := l.Layout(index)
	if !ok {
		return nil
	}
	current := l.CurrentScrollOffset() + l.correction.Value.WindowShift

	itemSize := item.Size().Primary(l.horizontal)
	itemPos := item.Origin().Y
	if l.horizontal {
		itemPos = item.Origin().X
	}
	listSize := l.window.Primary(l.horizontal)
	screenEnd := listSize + current

	if itemSize > listSize || itemPos < current || itemPos > screenEnd {
		return l.ScrollToIndex(index, animate)
	}
	if viewEnd := itemPos + itemSize; viewEnd > screenEnd {
		offset := viewEnd - screenEnd + current
		l.ScrollToOffset(offset, offset, animate, true)
	}
	return nil
}

func (l *ListView[T]) windowCorrection(offsetX, offsetY float64) WindowCorrection {
	if l.correctionFn != nil {
		l.correctionFn(offsetX, offsetY, &l.correction.Value)
	}
	return l.correction.Value
}

// processInitialOffset performs a scroll deferred by initialization or by
// an anchored layout swap, then releases the render stack held back while
// it was pending.
func (l *ListView[T]) processInitialOffset() {
	if l.pendingScrollToOffset == nil {
		return
	}
	offset := *l.pendingScrollToOffset
	l.pendingScrollToOffset = nil
	if l.horizontal {
		offset.Y = 0
	} else {
		offset.X = 0
	}
	l.ScrollToOffset(offset.X, offset.Y, false, l.correction.ApplyToInitialOffset)
	if l.hasPendingStack {
		l.hasPendingStack = false
		l.renderStackWhenReady(l.renderer.RenderStack())
	}
}

// processOnEndReached fires OnEndReached once when the remaining content
// past the viewport drops within either threshold, and re-arms once it
// grows past them again.
func (l *ListView[T]) processOnEndReached() {
	if l.onEndReached == nil {
		return
	}
	t := l.renderer.Tracker()
	if t == nil {
		return
	}
	content := l.renderer.LayoutDimension()
	listLength := l.window.Primary(l.horizontal)
	windowBound := content.Primary(l.horizontal) - listLength
	threshold := windowBound - t.LastOffset()

	relative := listLength * l.endReachedThresholdRelative
	if threshold <= relative || threshold <= l.endReachedThreshold {
		if !l.onEndReachedCalled {
			l.onEndReachedCalled = true
			l.onEndReached()
		}
		return
	}
	l.onEndReachedCalled = false
}
