package layout

// testPolicy assigns types by index and sizes by type.
type testPolicy struct {
	typeOf func(index int) Type
	sizes  map[Type]Dimension
	calls  int
}

func (p *testPolicy) LayoutTypeForIndex(index int) Type {
	if p.typeOf == nil {
		return "row"
	}
	return p.typeOf(index)
}

func (p *testPolicy) EstimateDimension(t Type, index int) Dimension {
	p.calls++
	return p.sizes[t]
}

func rowPolicy(w, h float64) *testPolicy {
	return &testPolicy{sizes: map[Type]Dimension{"row": {Width: w, Height: h}}}
}
