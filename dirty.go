package recycler

// batchState tracks nested Batch calls.
type batchState struct {
	depth        int  // nesting depth (0 = not batching)
	stackChanged bool // render stack changed while batching
}

// markDirty marks the list view as needing a render.
func (l *ListView[T]) markDirty() {
	if l == nil {
		panic("recycler: nil list view in markDirty")
	}
	l.dirty = true
}

// checkAndClearDirty returns true if dirty and clears the flag.
func (l *ListView[T]) checkAndClearDirty() bool {
	if l == nil {
		panic("recycler: nil list view in checkAndClearDirty")
	}
	d := l.dirty
	l.dirty = false
	return d
}

// queueStateRefresh requests a render on the next Tick without changing
// the render stack. Repeated requests before the Tick coalesce.
func (l *ListView[T]) queueStateRefresh() {
	l.markDirty()
}

// Batch runs fn and delivers at most one render stack change notification
// when it returns, carrying the final stack. Calls may nest; only the
// outermost one notifies.
//
//	lv.Batch(func() {
//	    lv.SetDataProvider(next)
//	    lv.ScrollToTop(false)
//	})  // OnRenderStackChanged fires once here
func (l *ListView[T]) Batch(fn func()) {
	l.batch.depth++
	defer func() {
		l.batch.depth--
		if l.batch.depth == 0 && l.batch.stackChanged {
			l.batch.stackChanged = false
			l.notifyRenderStackChanged()
		}
	}()
	fn()
}

// renderStackWhenReady is the renderer's stack change callback. While an
// initial scroll is pending the stack is held back so the list never draws
// the items at offset zero first.
func (l *ListView[T]) renderStackWhenReady(stack RenderStack) {
	if l.pendingScrollToOffset != nil {
		l.hasPendingStack = true
		return
	}
	l.setRenderStack(stack)
}

func (l *ListView[T]) setRenderStack(stack RenderStack) {
	l.renderStack = stack
	l.markDirty()
	if l.batch.depth > 0 {
		l.batch.stackChanged = true
		return
	}
	l.notifyRenderStackChanged()
}

func (l *ListView[T]) notifyRenderStackChanged() {
	if l.onRenderStackChanged != nil {
		l.onRenderStackChanged(l.RenderStack())
	}
}

// scrollOnNextUpdate is the renderer's anchor callback.
func (l *ListView[T]) scrollOnNextUpdate(p Point) {
	l.pendingScrollToOffset = &p
	l.markDirty()
}
