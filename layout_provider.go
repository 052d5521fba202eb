package recycler

import (
	"github.com/grindlemire/go-recycler/internal/layout"
)

// LayoutProvider assigns layout types and sizes to indexes and builds the
// layout manager a list view packs items with.
type LayoutProvider interface {
	// LayoutTypeForIndex returns the type of the item at index. It must not
	// be empty.
	LayoutTypeForIndex(index int) LayoutType

	// EstimateDimension returns the expected size of an item.
	EstimateDimension(t LayoutType, index int) Dimension

	// HasDimensionDiscrepancy reports whether current differs from the size
	// the provider would assign now.
	HasDimensionDiscrepancy(current Dimension, t LayoutType, index int) bool

	// CreateLayoutManager builds a manager for the given window. cached, if
	// non-nil, seeds the layout list.
	CreateLayoutManager(window Dimension, horizontal bool, cached []Layout) (LayoutManager, error)

	// ShouldRefreshWithAnchoring reports whether swapping in this provider
	// keeps the first visible item in place.
	ShouldRefreshWithAnchoring() bool
}

// ProviderOption configures the built-in layout providers.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	noAnchoring     bool
	acceptableDelta *float64
}

// WithoutAnchoring makes a provider swap refresh at the current offset
// instead of scrolling back to the first visible item.
func WithoutAnchoring() ProviderOption {
	return func(c *providerConfig) {
		c.noAnchoring = true
	}
}

// WithAcceptableRelayoutDelta sets how far a measured size on a grid's
// span-constrained axis may drift before it triggers a relayout.
// Default is 1. Ignored by providers without spans.
func WithAcceptableRelayoutDelta(delta float64) ProviderOption {
	return func(c *providerConfig) {
		c.acceptableDelta = &delta
	}
}

// BasicLayoutProvider is a LayoutProvider built from two functions. Its
// managers pack items with the wrap grid algorithm.
type BasicLayoutProvider struct {
	typeFn func(index int) LayoutType
	dimFn  func(t LayoutType, index int) Dimension
	config providerConfig

	manager LayoutManager
}

// NewLayoutProvider creates a wrap grid layout provider. typeFn returns the
// layout type of an index, dimFn its estimated size.
func NewLayoutProvider(typeFn func(index int) LayoutType, dimFn func(t LayoutType, index int) Dimension, opts ...ProviderOption) *BasicLayoutProvider {
	if typeFn == nil || dimFn == nil {
		panic("recycler: nil function in NewLayoutProvider")
	}
	p := &BasicLayoutProvider{typeFn: typeFn, dimFn: dimFn}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// LayoutTypeForIndex implements LayoutProvider.
func (p *BasicLayoutProvider) LayoutTypeForIndex(index int) LayoutType {
	return p.typeFn(index)
}

// EstimateDimension implements LayoutProvider.
func (p *BasicLayoutProvider) EstimateDimension(t LayoutType, index int) Dimension {
	return p.dimFn(t, index)
}

// HasDimensionDiscrepancy implements LayoutProvider.
func (p *BasicLayoutProvider) HasDimensionDiscrepancy(current Dimension, t LayoutType, index int) bool {
	return hasDiscrepancy(p, p.manager, current, t, index)
}

// CreateLayoutManager implements LayoutProvider.
func (p *BasicLayoutProvider) CreateLayoutManager(window Dimension, horizontal bool, cached []Layout) (LayoutManager, error) {
	p.manager = layout.NewWrapGrid(p, window, horizontal, cached)
	return p.manager, nil
}

// LayoutManager returns the manager created last, or nil.
func (p *BasicLayoutProvider) LayoutManager() LayoutManager {
	return p.manager
}

// ShouldRefreshWithAnchoring implements LayoutProvider.
func (p *BasicLayoutProvider) ShouldRefreshWithAnchoring() bool {
	return !p.config.noAnchoring
}

// hasDiscrepancy compares current with a fresh estimate clamped the same way
// the manager clamps it during layout.
func hasDiscrepancy(p layout.Policy, m LayoutManager, current Dimension, t LayoutType, index int) bool {
	estimate := p.EstimateDimension(t, index)
	if m != nil {
		estimate = m.ClampToWindow(estimate)
	}
	return current != estimate
}
