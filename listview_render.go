package recycler

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/grindlemire/go-recycler/internal/errs"
)

// Render calls the row renderer once per render stack entry, in index
// order. With deterministic rendering, an item whose layout no longer
// matches the layout provider's size schedules a relayout for the next
// Tick. It returns an ItemTypeNull error if the layout provider returns an
// empty type.
func (l *ListView[T]) Render() error {
	m := l.renderer.LayoutManager()
	if m == nil {
		return nil
	}
	size := l.dataProvider.Size()
	layouts := m.Layouts()

	keys := maps.Keys(l.renderStack)
	slices.SortFunc(keys, func(a, b string) bool {
		ia, ib := l.renderStack[a].DataIndex, l.renderStack[b].DataIndex
		if ia != ib {
			return ia < ib
		}
		return a < b
	})

	for _, key := range keys {
		index := l.renderStack[key].DataIndex
		if index < 0 || index >= size || index >= len(layouts) {
			continue
		}
		item := layouts[index]
		t := l.layoutProvider.LayoutTypeForIndex(index)
		if t == "" {
			return errs.ErrItemTypeNull
		}
		slot := l.renderer.SyncAndGetKey(index)
		if !l.nonDeterministic && l.layoutProvider.HasDimensionDiscrepancy(item.Size(), t, index) {
			l.requestRelayout(index)
		}

		row := Row[T]{
			Key:      slot,
			Type:     t,
			Data:     l.dataProvider.DataAt(index),
			Index:    index,
			Frame:    item.Rect(),
			Extended: l.extendedState,
		}
		if cross, ok := m.CrossSizeForIndex(index); ok {
			row.CrossSize = cross
		}
		l.renderRow(row)
	}
	return nil
}

// ReportItemSize reports the measured size of the item at index. With
// non-deterministic rendering a size that differs from the layout is
// recorded and the layout is recomputed from that index on the next Tick.
func (l *ListView[T]) ReportItemSize(index int, size Dimension) {
	if m := l.renderer.LayoutManager(); m != nil && l.nonDeterministic && m.OverrideLayout(index, size) {
		l.requestRelayout(index)
		l.queueStateRefresh()
	}
	l.itemLayout(index)
}

func (l *ListView[T]) itemLayout(index int) {
	if p := l.progressive; p != nil && !p.firstLayoutComplete {
		p.firstLayoutComplete = true
		if l.nonDeterministic {
			p.schedule(l.CurrentRenderAheadOffset())
		}
	}
	if l.onItemLayout != nil {
		l.onItemLayout(index)
	}
}
