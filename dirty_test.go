package recycler

import (
	"testing"
)

func TestDirty_CheckAndClearDirty(t *testing.T) {
	type tc struct {
		markDirty    bool
		expectFirst  bool
		expectSecond bool
	}

	tests := map[string]tc{
		"returns true and clears flag when dirty": {
			markDirty:    true,
			expectFirst:  true,
			expectSecond: false,
		},
		"returns false when not dirty": {
			markDirty:    false,
			expectFirst:  false,
			expectSecond: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lv := &ListView[string]{}

			if tt.markDirty {
				lv.markDirty()
			}

			first := lv.checkAndClearDirty()
			if first != tt.expectFirst {
				t.Errorf("first checkAndClearDirty() = %v, want %v", first, tt.expectFirst)
			}

			// Second check should always be false (flag was cleared)
			second := lv.checkAndClearDirty()
			if second != tt.expectSecond {
				t.Errorf("second checkAndClearDirty() = %v, want %v", second, tt.expectSecond)
			}
		})
	}
}

func TestDirty_NilListViewPanics(t *testing.T) {
	type tc struct {
		fn func(lv *ListView[string])
	}

	tests := map[string]tc{
		"markDirty":          {fn: func(lv *ListView[string]) { lv.markDirty() }},
		"checkAndClearDirty": {fn: func(lv *ListView[string]) { lv.checkAndClearDirty() }},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on a nil list view did not panic", name)
				}
			}()
			tt.fn(nil)
		})
	}
}

func TestDirty_SetRenderStackOutsideBatch(t *testing.T) {
	var got []RenderStack
	lv := &ListView[string]{}
	lv.onRenderStackChanged = func(s RenderStack) { got = append(got, s) }

	lv.setRenderStack(RenderStack{"a": {DataIndex: 0}})
	lv.setRenderStack(RenderStack{"a": {DataIndex: 1}})

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if !lv.checkAndClearDirty() {
		t.Error("checkAndClearDirty() = false after a render stack change")
	}
}

func TestDirty_BatchCoalesces(t *testing.T) {
	var got []RenderStack
	lv := &ListView[string]{}
	lv.onRenderStackChanged = func(s RenderStack) { got = append(got, s) }

	lv.Batch(func() {
		lv.setRenderStack(RenderStack{"a": {DataIndex: 0}})
		lv.Batch(func() {
			lv.setRenderStack(RenderStack{"a": {DataIndex: 1}})
		})
		lv.setRenderStack(RenderStack{"a": {DataIndex: 2}})
		if len(got) != 0 {
			t.Errorf("notified %d times inside the batch, want 0", len(got))
		}
	})

	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	if got[0]["a"].DataIndex != 2 {
		t.Errorf("notified stack DataIndex = %d, want the final 2", got[0]["a"].DataIndex)
	}

	lv.Batch(func() {})
	if len(got) != 1 {
		t.Errorf("an empty batch notified; notifications = %d, want 1", len(got))
	}
}

func TestDirty_PendingScrollHoldsStack(t *testing.T) {
	var got []RenderStack
	lv := &ListView[string]{}
	lv.onRenderStackChanged = func(s RenderStack) { got = append(got, s) }

	lv.scrollOnNextUpdate(Point{Y: 300})
	lv.renderStackWhenReady(RenderStack{"a": {DataIndex: 3}})

	if len(got) != 0 {
		t.Errorf("notifications while a scroll is pending = %d, want 0", len(got))
	}
	if !lv.hasPendingStack {
		t.Error("hasPendingStack = false, want the held back stack recorded")
	}
	if lv.pendingScrollToOffset == nil || lv.pendingScrollToOffset.Y != 300 {
		t.Errorf("pendingScrollToOffset = %v, want y 300", lv.pendingScrollToOffset)
	}
}
