// Package viewability tracks which item indexes intersect the viewport
// (visible) and which are close enough to it to stay materialized (engaged)
// as the scroll offset moves.
package viewability

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/grindlemire/go-recycler/internal/layout"
)

// linearFitThreshold is the offset below which the initial fit scans
// linearly instead of binary searching.
const linearFitThreshold = 5000

// WindowCorrection shifts the tracked window, for example when an overlay
// covers the top of the viewport. WindowShift moves both edges;
// StartCorrection and EndCorrection move one edge each.
type WindowCorrection struct {
	WindowShift     float64
	StartCorrection float64
	EndCorrection   float64
}

// RangeFunc receives every index in the range, the indexes that entered it
// and the indexes that left it. All three slices are sorted ascending.
type RangeFunc func(all, now, notNow []int)

type span struct {
	start, end float64
}

// Tracker computes engaged and visible index ranges from a layout list and
// a scroll offset and reports the delta after every recompute.
type Tracker struct {
	layouts       []layout.Layout
	contentExtent float64
	windowBound   float64
	horizontal    bool

	currentOffset float64
	actualOffset  float64
	direction     int

	renderAheadOffset  float64
	renderBehindOffset float64

	visibleWindow span
	engagedWindow span

	visibleIndexes []int
	engagedIndexes []int

	onVisible RangeFunc
	onEngaged RangeFunc

	initialized bool
}

// New creates a tracker starting at initialOffset with the given render-ahead
// margin. The margin behind the scroll direction mirrors the render-ahead
// margin until UpdateRenderBehindOffset is called.
func New(renderAheadOffset, initialOffset float64) *Tracker {
	return &Tracker{
		currentOffset:      max(0, initialOffset),
		actualOffset:       -1,
		direction:          1,
		renderAheadOffset:  max(0, renderAheadOffset),
		renderBehindOffset: -1,
	}
}

// SetLayouts installs the layout list and total content extent along the
// scroll axis. The slice is read, never written.
func (t *Tracker) SetLayouts(layouts []layout.Layout, contentExtent float64) {
	t.layouts = layouts
	t.contentExtent = contentExtent
}

// SetDimensions sets the viewport size and scroll axis.
func (t *Tracker) SetDimensions(window layout.Dimension, horizontal bool) {
	t.horizontal = horizontal
	t.windowBound = window.Primary(horizontal)
}

// SetEngagedFunc sets the engaged range callback. nil detaches it.
func (t *Tracker) SetEngagedFunc(fn RangeFunc) { t.onEngaged = fn }

// SetVisibleFunc sets the visible range callback. nil detaches it, and the
// visible delta is then not computed at all.
func (t *Tracker) SetVisibleFunc(fn RangeFunc) { t.onVisible = fn }

// Init performs the first fit at the tracker's current offset.
func (t *Tracker) Init(correction WindowCorrection) {
	t.initialized = true
	t.initialFit(t.currentOffset, correction)
}

// Initialized reports whether Init has run.
func (t *Tracker) Initialized() bool { return t.initialized }

// UpdateOffset moves the tracked window. An actual offset comes from the
// scroll surface: it is recorded and corrected by the window shift and start
// correction before use.
func (t *Tracker) UpdateOffset(offset float64, isActual bool, correction WindowCorrection) {
	corrected := offset
	if isActual {
		t.actualOffset = offset
		offset = min(t.maxOffset(), max(0, offset))
		corrected = min(t.maxOffset(), max(0, offset+correction.WindowShift+correction.StartCorrection))
	}
	if t.currentOffset == corrected {
		return
	}
	if t.currentOffset >= 0 {
		switch {
		case corrected > t.currentOffset:
			t.direction = 1
		case corrected < t.currentOffset:
			t.direction = -1
		}
	}
	t.currentOffset = corrected
	t.updateTrackingWindows(offset, correction)

	startIndex := 0
	if len(t.visibleIndexes) > 0 {
		startIndex = t.visibleIndexes[0]
	}
	t.fitAndUpdate(startIndex)
}

// ForceRefresh recomputes the ranges at the current offset.
func (t *Tracker) ForceRefresh() {
	t.ForceRefreshWithOffset(t.currentOffset)
}

// ForceRefreshWithOffset recomputes the ranges unconditionally, anchored at
// offset.
func (t *Tracker) ForceRefreshWithOffset(offset float64) {
	t.currentOffset = -1
	t.UpdateOffset(offset, false, WindowCorrection{})
}

// UpdateRenderAheadOffset sets the render-ahead margin. Negative values are
// treated as zero. It reports false, without refreshing, when the tracker
// has not been initialized yet; the value is kept either way.
func (t *Tracker) UpdateRenderAheadOffset(v float64) bool {
	t.renderAheadOffset = max(0, v)
	if !t.initialized {
		return false
	}
	t.ForceRefreshWithOffset(t.currentOffset)
	return true
}

// UpdateRenderBehindOffset sets the margin kept behind the scroll direction.
// A negative value makes it mirror the render-ahead margin again.
func (t *Tracker) UpdateRenderBehindOffset(v float64) bool {
	if v < 0 {
		v = -1
	}
	t.renderBehindOffset = v
	if !t.initialized {
		return false
	}
	t.ForceRefreshWithOffset(t.currentOffset)
	return true
}

// RenderAheadOffset returns the current render-ahead margin.
func (t *Tracker) RenderAheadOffset() float64 { return t.renderAheadOffset }

// LastOffset returns the corrected offset last tracked.
func (t *Tracker) LastOffset() float64 { return t.currentOffset }

// LastActualOffset returns the last offset reported by the scroll surface,
// or -1 if none was.
func (t *Tracker) LastActualOffset() float64 { return t.actualOffset }

// SetActualOffset records an offset reported by the scroll surface without
// recomputing ranges.
func (t *Tracker) SetActualOffset(offset float64) { t.actualOffset = offset }

// EngagedIndexes returns the engaged indexes in ascending order.
func (t *Tracker) EngagedIndexes() []int { return t.engagedIndexes }

// VisibleIndexes returns the visible indexes in ascending order.
func (t *Tracker) VisibleIndexes() []int { return t.visibleIndexes }

// EngagedWindow returns the engaged window bounds along the scroll axis.
func (t *Tracker) EngagedWindow() (start, end float64) {
	return t.engagedWindow.start, t.engagedWindow.end
}

// VisibleWindow returns the visible window bounds along the scroll axis.
func (t *Tracker) VisibleWindow() (start, end float64) {
	return t.visibleWindow.start, t.visibleWindow.end
}

// FindFirstLogicallyVisibleIndex returns the first index of the row that
// contains the first visible item. Items sharing that row's primary
// coordinate are walked back so anchoring never lands mid-row.
func (t *Tracker) FindFirstLogicallyVisibleIndex() int {
	if len(t.layouts) == 0 {
		return 0
	}
	relevant := t.firstVisibleIndexBS(0.001)
	pos := t.primaryStart(relevant)
	result := relevant
	for i := relevant - 1; i >= 0; i-- {
		if t.primaryStart(i) != pos {
			break
		}
		result = i
	}
	return result
}

func (t *Tracker) maxOffset() float64 {
	return max(0, t.contentExtent-t.windowBound)
}

func (t *Tracker) behindOffset() float64 {
	if t.renderBehindOffset < 0 {
		return t.renderAheadOffset
	}
	return t.renderBehindOffset
}

func (t *Tracker) updateTrackingWindows(offset float64, c WindowCorrection) {
	start := offset + c.WindowShift + c.StartCorrection
	end := offset + t.windowBound + c.WindowShift + c.EndCorrection

	before, after := t.behindOffset(), t.renderAheadOffset
	if t.direction < 0 {
		before, after = after, before
	}
	t.engagedWindow = span{start: max(0, start-before), end: end + after}
	t.visibleWindow = span{start: start, end: end}
}

func (t *Tracker) initialFit(offset float64, c WindowCorrection) {
	offset = min(t.maxOffset(), max(0, offset))
	t.currentOffset = offset
	t.updateTrackingWindows(offset, c)

	first := 0
	if offset > linearFitThreshold && len(t.layouts) > 0 {
		first = t.firstVisibleIndexBS(0)
	} else {
		first = t.firstVisibleIndexLinear()
	}
	t.fitAndUpdate(first)
}

func (t *Tracker) fitAndUpdate(startIndex int) {
	if n := len(t.layouts); n > 0 && (startIndex >= n || !t.intersects(t.engagedWindow, startIndex)) {
		startIndex = t.firstVisibleIndexBS(0)
	}

	var visible, engaged []int
	visible, engaged = t.fit(visible, engaged, startIndex, true)
	visible, engaged = t.fit(visible, engaged, startIndex+1, false)
	t.diffAndNotify(visible, engaged)
}

// fit walks from startIndex (backwards if reverse) collecting items that
// intersect the windows, and stops at the first miss after a hit.
func (t *Tracker) fit(visible, engaged []int, startIndex int, reverse bool) ([]int, []int) {
	n := len(t.layouts)
	if startIndex < 0 || startIndex >= n {
		return visible, engaged
	}
	step := 1
	if reverse {
		step = -1
	}
	found := false
	for i := startIndex; i >= 0 && i < n; i += step {
		switch {
		case t.intersects(t.visibleWindow, i):
			visible = insert(visible, i, reverse)
			engaged = insert(engaged, i, reverse)
		case t.intersects(t.engagedWindow, i):
			engaged = insert(engaged, i, reverse)
		default:
			if found {
				return visible, engaged
			}
			continue
		}
		found = true
	}
	return visible, engaged
}

func insert(s []int, v int, front bool) []int {
	if front {
		return slices.Insert(s, 0, v)
	}
	return append(s, v)
}

func (t *Tracker) diffAndNotify(visible, engaged []int) {
	if t.onVisible != nil {
		notifyDiff(visible, t.visibleIndexes, t.onVisible)
	}
	if t.onEngaged != nil {
		notifyDiff(engaged, t.engagedIndexes, t.onEngaged)
	}
	t.visibleIndexes = visible
	t.engagedIndexes = engaged
}

func notifyDiff(next, prev []int, fn RangeFunc) {
	now := missingFrom(next, prev)
	notNow := missingFrom(prev, next)
	if len(now) > 0 || len(notNow) > 0 {
		fn(slices.Clone(next), now, notNow)
	}
}

// missingFrom returns the elements of a that are not in the sorted slice b.
func missingFrom(a, b []int) []int {
	var out []int
	for _, v := range a {
		if _, ok := slices.BinarySearch(b, v); !ok {
			out = append(out, v)
		}
	}
	return out
}

func (t *Tracker) firstVisibleIndexLinear() int {
	for i := range t.layouts {
		if t.intersects(t.visibleWindow, i) {
			return i
		}
	}
	return 0
}

// firstVisibleIndexBS returns the first index whose trailing edge reaches the
// visible window start plus bias, or the last index if none does.
func (t *Tracker) firstVisibleIndexBS(bias float64) int {
	n := len(t.layouts)
	target := t.visibleWindow.start + bias
	i := sort.Search(n, func(i int) bool {
		_, end := t.layouts[i].Rect().Span(t.horizontal)
		return end >= target
	})
	return min(i, max(0, n-1))
}

func (t *Tracker) primaryStart(index int) float64 {
	start, _ := t.layouts[index].Rect().Span(t.horizontal)
	return start
}

func (t *Tracker) intersects(w span, index int) bool {
	start, end := t.layouts[index].Rect().Span(t.horizontal)
	return itemIntersectsWindow(w, start, end)
}

func itemIntersectsWindow(w span, start, end float64) bool {
	inBounds := func(bound float64) bool { return w.start < bound && w.end > bound }
	covers := w.start >= start && w.end <= end
	zeroAtEdge := end-start == 0 && (w.start == start || w.end == end)
	return inBounds(start) || inBounds(end) || covers || zeroAtEdge
}
