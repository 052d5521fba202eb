package recycler

import (
	"errors"
	"testing"
)

func expectPanicKind(t *testing.T, kind ErrorKind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a %v panic", kind)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, &Error{Kind: kind}) {
			t.Errorf("panic = %v, want kind %v", r, kind)
		}
	}()
	fn()
}

func newTestGrid(maxSpan int, opts ...ProviderOption) *GridLayoutProvider {
	return NewGridLayoutProvider(maxSpan,
		func(int) LayoutType { return "cell" },
		func(index int) int { return index%maxSpan + 1 },
		func(int) float64 { return 80 },
		opts...,
	)
}

func TestGridLayoutProvider_EstimateDimension(t *testing.T) {
	type tc struct {
		horizontal bool
		index      int
		want       Dimension
	}

	tests := map[string]tc{
		"vertical single span":   {index: 0, want: Dimension{Width: 100, Height: 80}},
		"vertical triple span":   {index: 2, want: Dimension{Width: 300, Height: 80}},
		"horizontal double span": {horizontal: true, index: 1, want: Dimension{Width: 80, Height: 250}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestGrid(4)
			if _, err := p.CreateLayoutManager(Dimension{Width: 400, Height: 500}, tt.horizontal, nil); err != nil {
				t.Fatalf("CreateLayoutManager() error = %v", err)
			}
			if got := p.EstimateDimension("cell", tt.index); got != tt.want {
				t.Errorf("EstimateDimension(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestGridLayoutProvider_Panics(t *testing.T) {
	t.Run("before a manager exists", func(t *testing.T) {
		p := newTestGrid(2)
		expectPanicKind(t, KindInitialization, func() {
			p.EstimateDimension("cell", 0)
		})
	})

	t.Run("span overflow", func(t *testing.T) {
		p := NewGridLayoutProvider(2,
			func(int) LayoutType { return "cell" },
			func(int) int { return 3 },
			func(int) float64 { return 80 },
		)
		expectPanicKind(t, KindSpanOverflow, func() {
			p.EstimateDimension("cell", 0)
		})
	})
}

func TestGridLayoutProvider_InvalidConfig(t *testing.T) {
	type tc struct {
		maxSpan int
		opts    []ProviderOption
	}

	tests := map[string]tc{
		"zero max span":     {maxSpan: 0},
		"negative max span": {maxSpan: -2},
		"negative delta":    {maxSpan: 2, opts: []ProviderOption{WithAcceptableRelayoutDelta(-1)}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewGridLayoutProvider(tt.maxSpan,
				func(int) LayoutType { return "cell" },
				func(int) int { return 1 },
				func(int) float64 { return 80 },
				tt.opts...,
			)
			_, err := p.CreateLayoutManager(Dimension{Width: 400, Height: 500}, false, nil)
			if !errors.Is(err, &Error{Kind: KindInvalidConfig}) {
				t.Errorf("CreateLayoutManager() error = %v, want InvalidConfig", err)
			}
		})
	}
}

func TestGridLayoutProvider_AcceptableDelta(t *testing.T) {
	type tc struct {
		opts []ProviderOption
		dim  Dimension
		want bool
	}

	tests := map[string]tc{
		"default ignores sub-unit width noise": {
			dim:  Dimension{Width: 200.5, Height: 80},
			want: false,
		},
		"height change overrides": {
			dim:  Dimension{Width: 200.5, Height: 90},
			want: true,
		},
		"wider delta ignores larger noise": {
			opts: []ProviderOption{WithAcceptableRelayoutDelta(5)},
			dim:  Dimension{Width: 204, Height: 80},
			want: false,
		},
		"zero delta accepts any change": {
			opts: []ProviderOption{WithAcceptableRelayoutDelta(0)},
			dim:  Dimension{Width: 200.5, Height: 80},
			want: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewGridLayoutProvider(2,
				func(int) LayoutType { return "cell" },
				func(int) int { return 1 },
				func(int) float64 { return 80 },
				tt.opts...,
			)
			m, err := p.CreateLayoutManager(Dimension{Width: 400, Height: 500}, false, nil)
			if err != nil {
				t.Fatalf("CreateLayoutManager() error = %v", err)
			}
			m.RelayoutFromIndex(0, 4)
			if got := m.OverrideLayout(1, tt.dim); got != tt.want {
				t.Errorf("OverrideLayout(%v) = %v, want %v", tt.dim, got, tt.want)
			}
		})
	}
}

func TestLayoutProvider_HasDimensionDiscrepancy(t *testing.T) {
	type tc struct {
		current Dimension
		want    bool
	}

	// The estimate is wider than the window; layout clamps it to 400.
	tests := map[string]tc{
		"clamped estimate matches": {current: Dimension{Width: 400, Height: 100}},
		"height differs":           {current: Dimension{Width: 400, Height: 120}, want: true},
		"unclamped width differs":  {current: Dimension{Width: 600, Height: 100}, want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewLayoutProvider(
				func(int) LayoutType { return "row" },
				func(LayoutType, int) Dimension { return Dimension{Width: 600, Height: 100} },
			)
			if _, err := p.CreateLayoutManager(Dimension{Width: 400, Height: 500}, false, nil); err != nil {
				t.Fatalf("CreateLayoutManager() error = %v", err)
			}
			if got := p.HasDimensionDiscrepancy(tt.current, "row", 0); got != tt.want {
				t.Errorf("HasDimensionDiscrepancy(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestLayoutProvider_Anchoring(t *testing.T) {
	typeFn := func(int) LayoutType { return "row" }
	dimFn := func(LayoutType, int) Dimension { return Dimension{Width: 10, Height: 10} }

	if !NewLayoutProvider(typeFn, dimFn).ShouldRefreshWithAnchoring() {
		t.Error("ShouldRefreshWithAnchoring() = false by default")
	}
	if NewLayoutProvider(typeFn, dimFn, WithoutAnchoring()).ShouldRefreshWithAnchoring() {
		t.Error("ShouldRefreshWithAnchoring() = true with WithoutAnchoring")
	}
	if newTestGrid(2, WithoutAnchoring()).ShouldRefreshWithAnchoring() {
		t.Error("grid ShouldRefreshWithAnchoring() = true with WithoutAnchoring")
	}
}

func TestNewLayoutProvider_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil dimension function")
		}
	}()
	NewLayoutProvider(func(int) LayoutType { return "row" }, nil)
}
