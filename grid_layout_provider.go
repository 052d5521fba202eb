package recycler

import (
	"github.com/grindlemire/go-recycler/internal/errs"
	"github.com/grindlemire/go-recycler/internal/layout"
)

const defaultAcceptableRelayoutDelta = 1

// GridLayoutProvider lays items out in a grid of maxSpan columns (vertical)
// or rows (horizontal). Each item covers span(index) of them and has a fixed
// extent along the scroll axis.
type GridLayoutProvider struct {
	maxSpan int
	typeFn  func(index int) LayoutType
	spanFn  func(index int) int
	sizeFn  func(index int) float64
	config  providerConfig

	window     Dimension
	horizontal bool
	manager    *layout.Grid
}

// NewGridLayoutProvider creates a span grid provider. sizeFn returns the
// height (vertical) or width (horizontal) of an item.
func NewGridLayoutProvider(maxSpan int, typeFn func(index int) LayoutType, spanFn func(index int) int, sizeFn func(index int) float64, opts ...ProviderOption) *GridLayoutProvider {
	if typeFn == nil || spanFn == nil || sizeFn == nil {
		panic("recycler: nil function in NewGridLayoutProvider")
	}
	p := &GridLayoutProvider{
		maxSpan: maxSpan,
		typeFn:  typeFn,
		spanFn:  spanFn,
		sizeFn:  sizeFn,
	}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// MaxSpan returns the number of span units per row (or column).
func (p *GridLayoutProvider) MaxSpan() int {
	return p.maxSpan
}

// LayoutTypeForIndex implements LayoutProvider.
func (p *GridLayoutProvider) LayoutTypeForIndex(index int) LayoutType {
	return p.typeFn(index)
}

// EstimateDimension implements LayoutProvider. It panics if no manager has
// been created yet, since the cross extent depends on the window.
func (p *GridLayoutProvider) EstimateDimension(_ LayoutType, index int) Dimension {
	span := p.spanFn(index)
	if span > p.maxSpan {
		panic(errs.New(errs.KindSpanOverflow, "item span for index %d is more than the max span", index))
	}
	if p.manager == nil {
		panic(errs.New(errs.KindInitialization, "grid size requested before a layout manager was created"))
	}
	cross := p.window.Cross(p.horizontal) / float64(p.maxSpan) * float64(span)
	if p.horizontal {
		return Dimension{Width: p.sizeFn(index), Height: cross}
	}
	return Dimension{Width: cross, Height: p.sizeFn(index)}
}

// HasDimensionDiscrepancy implements LayoutProvider.
func (p *GridLayoutProvider) HasDimensionDiscrepancy(current Dimension, t LayoutType, index int) bool {
	var m LayoutManager
	if p.manager != nil {
		m = p.manager
	}
	return hasDiscrepancy(p, m, current, t, index)
}

// CreateLayoutManager implements LayoutProvider. It returns an InvalidConfig
// error for a non-positive max span or a negative acceptable delta.
func (p *GridLayoutProvider) CreateLayoutManager(window Dimension, horizontal bool, cached []Layout) (LayoutManager, error) {
	delta := float64(defaultAcceptableRelayoutDelta)
	if p.config.acceptableDelta != nil {
		delta = *p.config.acceptableDelta
	}
	g, err := layout.NewGrid(p, window, p.spanFn, p.maxSpan, delta, horizontal, cached)
	if err != nil {
		return nil, err
	}
	p.window = window
	p.horizontal = horizontal
	p.manager = g
	return g, nil
}

// ShouldRefreshWithAnchoring implements LayoutProvider.
func (p *GridLayoutProvider) ShouldRefreshWithAnchoring() bool {
	return !p.config.noAnchoring
}
