package layout

import (
	"errors"
	"testing"

	"github.com/grindlemire/go-recycler/internal/errs"
)

// spanPolicy sizes items the way a span grid provider does: cross extent
// from the manager's span computation, primary extent fixed.
type spanPolicy struct {
	grid    *Grid
	primary float64
}

func (p *spanPolicy) LayoutTypeForIndex(int) Type { return "cell" }

func (p *spanPolicy) EstimateDimension(_ Type, index int) Dimension {
	cross, _ := p.grid.CrossSizeForIndex(index)
	if p.grid.IsHorizontal() {
		return Dimension{Width: p.primary, Height: cross}
	}
	return Dimension{Width: cross, Height: p.primary}
}

func newSpanGrid(t *testing.T, spans []int, maxSpan int, delta float64, horizontal bool) *Grid {
	t.Helper()
	p := &spanPolicy{primary: 90}
	g, err := NewGrid(p, Dimension{Width: 300, Height: 300}, func(i int) int { return spans[i] }, maxSpan, delta, horizontal, nil)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	p.grid = g
	return g
}

func TestNewGrid_ConfigErrors(t *testing.T) {
	type tc struct {
		maxSpan int
		delta   float64
		span    SpanFunc
	}
	one := func(int) int { return 1 }

	tests := map[string]tc{
		"negative delta": {maxSpan: 3, delta: -1, span: one},
		"zero max span":  {maxSpan: 0, delta: 1, span: one},
		"nil span":       {maxSpan: 3, delta: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewGrid(rowPolicy(1, 1), Dimension{Width: 10, Height: 10}, tt.span, tt.maxSpan, tt.delta, false, nil)
			var e *errs.Error
			if !errors.As(err, &e) || e.Kind != errs.KindInvalidConfig {
				t.Errorf("NewGrid() error = %v, want InvalidConfig", err)
			}
		})
	}
}

func TestGrid_FullRowSpanWraps(t *testing.T) {
	g := newSpanGrid(t, []int{3, 1, 1, 1, 2}, 3, 1, false)
	g.RelayoutFromIndex(0, 5)

	l := g.Layouts()
	if l[0].Width != 300 {
		t.Errorf("layouts[0].Width = %v, want 300", l[0].Width)
	}
	if l[1].X != 0 || l[1].Y != l[0].Height {
		t.Errorf("layouts[1] origin = (%v, %v), want (0, %v)", l[1].X, l[1].Y, l[0].Height)
	}
	if l[1].Width != 100 || l[3].X != 200 {
		t.Errorf("single span cells = %v wide, third at x=%v; want 100 and 200", l[1].Width, l[3].X)
	}
	if l[4].Y != 180 || l[4].Width != 200 {
		t.Errorf("layouts[4] = %+v, want y=180 width=200", l[4])
	}
}

func TestGrid_SpanOverflowPanics(t *testing.T) {
	g := newSpanGrid(t, []int{1, 4}, 3, 1, false)

	defer func() {
		r := recover()
		err, ok := r.(error)
		var e *errs.Error
		if !ok || !errors.As(err, &e) || e.Kind != errs.KindSpanOverflow {
			t.Errorf("panic = %v, want SpanOverflow error", r)
		}
	}()
	g.RelayoutFromIndex(0, 2)
}

func TestGrid_OverrideSuppression(t *testing.T) {
	type tc struct {
		horizontal bool
		measured   func(l Layout) Dimension
		wantAccept bool
		wantSize   func(l Layout) Dimension
	}

	tests := map[string]tc{
		"vertical noise on width only": {
			measured:   func(l Layout) Dimension { return Dimension{Width: l.Width + 0.4, Height: l.Height} },
			wantAccept: false,
			wantSize:   func(l Layout) Dimension { return l.Size() },
		},
		"vertical noise on width with height change": {
			measured:   func(l Layout) Dimension { return Dimension{Width: l.Width + 0.4, Height: l.Height + 20} },
			wantAccept: true,
			wantSize:   func(l Layout) Dimension { return Dimension{Width: l.Width, Height: l.Height + 20} },
		},
		"vertical width change beyond delta": {
			measured:   func(l Layout) Dimension { return Dimension{Width: l.Width + 5, Height: l.Height} },
			wantAccept: true,
			wantSize:   func(l Layout) Dimension { return Dimension{Width: l.Width + 5, Height: l.Height} },
		},
		"horizontal noise on height only": {
			horizontal: true,
			measured:   func(l Layout) Dimension { return Dimension{Width: l.Width, Height: l.Height - 0.5} },
			wantAccept: false,
			wantSize:   func(l Layout) Dimension { return l.Size() },
		},
		"horizontal noise on height with width change": {
			horizontal: true,
			measured:   func(l Layout) Dimension { return Dimension{Width: l.Width + 7, Height: l.Height - 0.5} },
			wantAccept: true,
			wantSize:   func(l Layout) Dimension { return Dimension{Width: l.Width + 7, Height: l.Height} },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := newSpanGrid(t, []int{1, 1, 1}, 3, 1, tt.horizontal)
			g.RelayoutFromIndex(0, 3)
			before := g.Layouts()[1]

			got := g.OverrideLayout(1, tt.measured(before))
			if got != tt.wantAccept {
				t.Errorf("OverrideLayout() = %v, want %v", got, tt.wantAccept)
			}
			after := g.Layouts()[1]
			if after.IsOverridden != tt.wantAccept {
				t.Errorf("IsOverridden = %v, want %v", after.IsOverridden, tt.wantAccept)
			}
			if want := tt.wantSize(before); after.Size() != want {
				t.Errorf("size = %+v, want %+v", after.Size(), want)
			}
		})
	}
}

func TestGrid_OverrideMissingIndex(t *testing.T) {
	g := newSpanGrid(t, []int{1}, 3, 1, false)
	if g.OverrideLayout(0, Dimension{Width: 1, Height: 1}) {
		t.Error("OverrideLayout() before relayout = true, want false")
	}
}
