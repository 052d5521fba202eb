package layout

import (
	"math"

	"github.com/grindlemire/go-recycler/internal/errs"
)

// SpanFunc returns how many of the grid's max span an item occupies.
type SpanFunc func(index int) int

// Grid is a WrapGrid whose items take a fraction of the window's cross
// extent given by their span.
type Grid struct {
	*WrapGrid

	span            SpanFunc
	maxSpan         int
	acceptableDelta float64
}

// NewGrid creates a span grid manager. maxSpan must be positive and
// acceptableDelta non-negative.
func NewGrid(policy Policy, window Dimension, span SpanFunc, maxSpan int, acceptableDelta float64, horizontal bool, cached []Layout) (*Grid, error) {
	if acceptableDelta < 0 {
		return nil, errs.New(errs.KindInvalidConfig, "acceptable relayout delta cannot be less than 0")
	}
	if maxSpan <= 0 {
		return nil, errs.New(errs.KindInvalidConfig, "max span cannot be less than or equal to 0")
	}
	if span == nil {
		return nil, errs.New(errs.KindInvalidConfig, "span function is required")
	}
	return &Grid{
		WrapGrid:        NewWrapGrid(policy, window, horizontal, cached),
		span:            span,
		maxSpan:         maxSpan,
		acceptableDelta: acceptableDelta,
	}, nil
}

// MaxSpan returns the number of span units in one row (or column).
func (g *Grid) MaxSpan() int {
	return g.maxSpan
}

// CrossSizeForIndex implements Manager. It panics with a SpanOverflow
// error when the item's span exceeds the max span.
func (g *Grid) CrossSizeForIndex(index int) (float64, bool) {
	span := g.span(index)
	if span > g.maxSpan {
		panic(errs.New(errs.KindSpanOverflow, "item span for index %d is more than the max span", index))
	}
	cross := g.window.Cross(g.horizontal)
	return cross / float64(g.maxSpan) * float64(span), true
}

// OverrideLayout implements Manager. Measurements whose span-constrained
// extent differs from the known layout by less than the acceptable delta are
// snapped back to the known value; if nothing else changed the override is
// rejected so sub-pixel noise never triggers a relayout.
func (g *Grid) OverrideLayout(index int, dim Dimension) bool {
	l, ok := g.Layout(index)
	if !ok {
		return false
	}
	heightDiff := math.Abs(dim.Height - l.Height)
	widthDiff := math.Abs(dim.Width - l.Width)
	if g.horizontal {
		if heightDiff < g.acceptableDelta {
			if widthDiff == 0 {
				return false
			}
			dim.Height = l.Height
		}
	} else if widthDiff < g.acceptableDelta {
		if heightDiff == 0 {
			return false
		}
		dim.Width = l.Width
	}
	return g.WrapGrid.OverrideLayout(index, dim)
}
