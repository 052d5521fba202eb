package virtual

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/grindlemire/go-recycler/internal/debug"
	"github.com/grindlemire/go-recycler/internal/errs"
	"github.com/grindlemire/go-recycler/internal/layout"
	"github.com/grindlemire/go-recycler/internal/recycle"
	"github.com/grindlemire/go-recycler/internal/viewability"
)

// StackItem is the render stack entry of one slot.
type StackItem struct {
	DataIndex int
}

// RenderStack maps slot keys to the data index each slot renders.
type RenderStack map[string]StackItem

// StableIDItem is the slot assigned to a stable identity.
type StableIDItem struct {
	Key  string
	Type layout.Type
}

// StableIDFunc returns the stable identity of the item at index.
type StableIDFunc func(index int) string

// DataSource is the part of a data provider the renderer reconciles against.
type DataSource interface {
	Size() int
	StableID(index int) string
}

// Params configures the render window.
type Params struct {
	Horizontal         bool
	ItemCount          int
	InitialOffset      float64
	InitialRenderIndex int
	RenderAheadOffset  float64
}

// Renderer keeps the render stack, the stable id map and the recycle pool in
// sync with the engaged range of its tracker. It owns all three exclusively.
type Renderer struct {
	stack     RenderStack
	stableIDs map[string]StableIDItem
	engaged   map[int]struct{}
	pool      *recycle.Pool[layout.Type]

	stackChanged       func(RenderStack)
	scrollOnNextUpdate func(layout.Point)
	stableID           StableIDFunc
	recycling          bool

	policy  layout.Policy
	manager layout.Manager
	tracker *viewability.Tracker
	params  *Params
	window  layout.Dimension
	hasDims bool

	onVisible             viewability.RangeFunc
	trackerRunning        bool
	dirty                 bool
	optimizeForAnimations bool
	nextKey               uint64
}

// New creates a renderer. stackChanged fires once per batch of render stack
// changes; scrollOnNextUpdate receives the anchor point after
// RefreshWithAnchor; stableID resolves identities for the current data set.
func New(stackChanged func(RenderStack), scrollOnNextUpdate func(layout.Point), stableID StableIDFunc, recycling bool) *Renderer {
	if stackChanged == nil {
		stackChanged = func(RenderStack) {}
	}
	if scrollOnNextUpdate == nil {
		scrollOnNextUpdate = func(layout.Point) {}
	}
	return &Renderer{
		stack:              make(RenderStack),
		stableIDs:          make(map[string]StableIDItem),
		engaged:            make(map[int]struct{}),
		pool:               recycle.New[layout.Type](),
		stackChanged:       stackChanged,
		scrollOnNextUpdate: scrollOnNextUpdate,
		stableID:           stableID,
		recycling:          recycling,
	}
}

// LayoutDimension returns the content dimension, or zero without a manager.
func (r *Renderer) LayoutDimension() layout.Dimension {
	if r.manager == nil {
		return layout.Dimension{}
	}
	return r.manager.ContentDimension()
}

// SetOptimizeForAnimations suppresses recycling during the next data set
// change so items do not jump across the screen.
func (r *Renderer) SetOptimizeForAnimations(v bool) {
	r.optimizeForAnimations = v
}

// HasPendingAnimationOptimization reports whether animation optimization is
// armed.
func (r *Renderer) HasPendingAnimationOptimization() bool {
	return r.optimizeForAnimations
}

// UpdateOffset forwards a scroll offset to the tracker, starting it on the
// first call.
func (r *Renderer) UpdateOffset(x, y float64, isActual bool, correction viewability.WindowCorrection) {
	if r.tracker == nil {
		return
	}
	offset := y
	if r.params != nil && r.params.Horizontal {
		offset = x
	}
	if !r.trackerRunning {
		if isActual {
			r.tracker.SetActualOffset(offset)
		}
		r.StartViewabilityTracker(correction)
	}
	r.tracker.UpdateOffset(offset, isActual, correction)
}

// AttachVisibleItemsListener subscribes fn to visible range changes.
func (r *Renderer) AttachVisibleItemsListener(fn viewability.RangeFunc) {
	r.onVisible = fn
	if r.tracker != nil && r.manager != nil {
		r.tracker.SetVisibleFunc(fn)
	}
}

// RemoveVisibleItemsListener detaches the visible range listener.
func (r *Renderer) RemoveVisibleItemsListener() {
	r.onVisible = nil
	if r.tracker != nil {
		r.tracker.SetVisibleFunc(nil)
	}
}

// LayoutManager returns the current layout manager, or nil.
func (r *Renderer) LayoutManager() layout.Manager {
	return r.manager
}

// SetParamsAndDimensions sets the render parameters and the viewport size.
func (r *Renderer) SetParamsAndDimensions(params Params, window layout.Dimension) {
	p := params
	r.params = &p
	r.window = window
	r.hasDims = true
}

// Params returns the current render parameters.
func (r *Renderer) Params() (Params, bool) {
	if r.params == nil {
		return Params{}, false
	}
	return *r.params, true
}

// SetLayoutManager installs m and lays out every item from scratch.
func (r *Renderer) SetLayoutManager(m layout.Manager) {
	r.manager = m
	if r.params != nil {
		m.RelayoutFromIndex(0, r.params.ItemCount)
	}
}

// SetLayoutPolicy sets the source of item types.
func (r *Renderer) SetLayoutPolicy(p layout.Policy) {
	r.policy = p
}

// Tracker returns the viewability tracker, or nil before Init.
func (r *Renderer) Tracker() *viewability.Tracker {
	return r.tracker
}

// RefreshWithAnchor refreshes ranges after a layout swap while keeping the
// first visible item in place.
func (r *Renderer) RefreshWithAnchor() error {
	if r.tracker == nil {
		return nil
	}
	first := r.tracker.FindFirstLogicallyVisibleIndex()
	if err := r.prepareTracker(); err != nil {
		return err
	}
	offset := 0.0
	if r.manager != nil && r.params != nil && r.params.ItemCount > 0 {
		first = min(r.params.ItemCount-1, first)
		point := r.manager.OffsetForIndex(first)
		r.scrollOnNextUpdate(point)
		offset = point.Y
		if r.params.Horizontal {
			offset = point.X
		}
	}
	r.tracker.ForceRefreshWithOffset(offset)
	return nil
}

// Refresh recomputes ranges at the current offset.
func (r *Renderer) Refresh() error {
	if r.tracker == nil {
		return nil
	}
	if err := r.prepareTracker(); err != nil {
		return err
	}
	r.tracker.ForceRefresh()
	return nil
}

// InitialOffset returns the point the list should start at. An initial
// render index wins over an initial offset and is written back as one.
func (r *Renderer) InitialOffset() layout.Point {
	if r.params == nil {
		return layout.Point{}
	}
	if r.params.InitialRenderIndex > 0 && r.manager != nil {
		point := r.manager.OffsetForIndex(r.params.InitialRenderIndex)
		r.params.InitialOffset = point.Y
		if r.params.Horizontal {
			r.params.InitialOffset = point.X
		}
		return point
	}
	if r.params.Horizontal {
		return layout.Point{X: r.params.InitialOffset}
	}
	return layout.Point{Y: r.params.InitialOffset}
}

// Init creates the tracker at the initial offset and wires it.
func (r *Renderer) Init() error {
	r.InitialOffset()
	r.pool = recycle.New[layout.Type]()
	if r.params != nil {
		r.tracker = viewability.New(r.params.RenderAheadOffset, r.params.InitialOffset)
	} else {
		r.tracker = viewability.New(0, 0)
	}
	return r.prepareTracker()
}

// StartViewabilityTracker runs the tracker's first fit.
func (r *Renderer) StartViewabilityTracker(correction viewability.WindowCorrection) {
	if r.tracker == nil {
		return
	}
	r.trackerRunning = true
	r.tracker.Init(correction)
}

// UpdateRenderAheadOffset changes the render-ahead margin. It reports false
// when the tracker has not started yet.
func (r *Renderer) UpdateRenderAheadOffset(v float64) bool {
	if r.tracker == nil {
		return false
	}
	return r.tracker.UpdateRenderAheadOffset(v)
}

// UpdateRenderBehindOffset changes the margin kept behind the scroll
// direction; negative mirrors the render-ahead margin.
func (r *Renderer) UpdateRenderBehindOffset(v float64) bool {
	if r.tracker == nil {
		return false
	}
	return r.tracker.UpdateRenderBehindOffset(v)
}

// RenderAheadOffset returns the tracker's render-ahead margin.
func (r *Renderer) RenderAheadOffset() float64 {
	if r.tracker == nil {
		if r.params != nil {
			return r.params.RenderAheadOffset
		}
		return 0
	}
	return r.tracker.RenderAheadOffset()
}

// RenderStack returns a copy of the render stack.
func (r *Renderer) RenderStack() RenderStack {
	return maps.Clone(r.stack)
}

// IsEngaged reports whether index is in the engaged range.
func (r *Renderer) IsEngaged(index int) bool {
	_, ok := r.engaged[index]
	return ok
}

// SyncAndGetKey returns the slot key for index, assigning one if needed.
func (r *Renderer) SyncAndGetKey(index int) string {
	return r.syncAndGetKey(index, r.stableID, r.stack, nil)
}

func (r *Renderer) syncAndGetKey(index int, stableID StableIDFunc, stack RenderStack, keyToStableID map[string]string) string {
	id := stableID(index)
	item, ok := r.stableIDs[id]
	key := item.Key

	if !ok {
		t := r.policy.LayoutTypeForIndex(index)
		if pooled, ok := r.pool.Get(t); ok {
			key = pooled
			if meta, ok := stack[key]; ok {
				oldIndex := meta.DataIndex
				stack[key] = StackItem{DataIndex: index}
				if oldIndex != index {
					delete(r.stableIDs, stableID(oldIndex))
				}
			} else {
				stack[key] = StackItem{DataIndex: index}
				if staleID, ok := keyToStableID[key]; ok {
					delete(r.stableIDs, staleID)
				}
			}
		} else {
			key = id
			if _, used := stack[key]; used || r.pool.Contains(key) {
				debug.Log("stable id %q already names a slot, minting a new key for index %d", id, index)
				key = r.collisionAvoidingKey(stack)
			}
			stack[key] = StackItem{DataIndex: index}
		}
		r.dirty = true
		r.stableIDs[id] = StableIDItem{Key: key, Type: t}
	}

	if _, ok := r.engaged[index]; ok {
		r.pool.Remove(key)
	}
	if meta, ok := stack[key]; ok && meta.DataIndex != index {
		debug.Warn("possible stable id collision at index %d (slot %q renders %d)", index, key, meta.DataIndex)
	}
	return key
}

// collisionAvoidingKey mints a key that no live slot uses. The counter
// restarts once no slot is alive.
func (r *Renderer) collisionAvoidingKey(stacks ...RenderStack) string {
	live := r.pool.Len() > 0 || len(r.stack) > 0
	for _, s := range stacks {
		live = live || len(s) > 0
	}
	if !live {
		r.nextKey = 0
	}
	for {
		key := fmt.Sprintf("#%d_rc", r.nextKey)
		r.nextKey++
		if r.keyInUse(key, stacks) {
			continue
		}
		return key
	}
}

func (r *Renderer) keyInUse(key string, stacks []RenderStack) bool {
	if _, ok := r.stack[key]; ok {
		return true
	}
	for _, s := range stacks {
		if _, ok := s[key]; ok {
			return true
		}
	}
	return r.pool.Contains(key)
}

// HandleDataSetChange reconciles the render stack against a replacement data
// set. Slots of identities that disappeared are recycled (unless animation
// optimization is armed), surviving identities keep their slots, and every
// slot whose index is not engaged becomes reclaimable.
func (r *Renderer) HandleDataSetChange(ds DataSource) {
	stableID := ds.StableID
	maxIndex := ds.Size() - 1
	newStack := make(RenderStack)
	keyToStableID := make(map[string]string)

	if r.optimizeForAnimations {
		r.pool.ClearAll()
	}

	active := make(map[string]struct{})
	for _, meta := range r.stack {
		if meta.DataIndex <= maxIndex {
			active[stableID(meta.DataIndex)] = struct{}{}
		}
	}

	for id, item := range r.stableIDs {
		if _, ok := active[id]; ok {
			keyToStableID[item.Key] = id
			continue
		}
		if !r.optimizeForAnimations && r.recycling {
			r.pool.Put(item.Type, item.Key)
		}
		delete(r.stableIDs, id)
		if meta, ok := r.stack[item.Key]; ok && meta.DataIndex <= maxIndex && r.manager != nil {
			r.manager.RemoveLayout(meta.DataIndex)
		}
	}

	keys := maps.Keys(r.stack)
	slices.SortFunc(keys, func(a, b string) bool {
		ia, ib := r.stack[a].DataIndex, r.stack[b].DataIndex
		if ia != ib {
			return ia < ib
		}
		return a < b
	})

	for _, key := range keys {
		index := r.stack[key].DataIndex
		if index <= maxIndex {
			newKey := r.syncAndGetKey(index, stableID, newStack, keyToStableID)
			if meta, ok := newStack[newKey]; !ok {
				newStack[newKey] = StackItem{DataIndex: index}
			} else if meta.DataIndex != index {
				collisionKey := r.collisionAvoidingKey(newStack)
				newStack[collisionKey] = StackItem{DataIndex: index}
				r.stableIDs[stableID(index)] = StableIDItem{Key: collisionKey, Type: r.policy.LayoutTypeForIndex(index)}
			}
		}
		delete(r.stack, key)
	}

	r.stack = newStack

	for key, meta := range r.stack {
		if _, ok := r.engaged[meta.DataIndex]; !ok {
			r.pool.Put(r.policy.LayoutTypeForIndex(meta.DataIndex), key)
		}
	}
}

func (r *Renderer) prepareTracker() error {
	if r.tracker == nil || r.manager == nil || !r.hasDims || r.params == nil {
		return errs.ErrInitialization
	}
	r.tracker.SetEngagedFunc(r.onEngagedItemsChanged)
	if r.onVisible != nil {
		r.tracker.SetVisibleFunc(r.onVisible)
	}
	content := r.manager.ContentDimension()
	r.tracker.SetLayouts(r.manager.Layouts(), content.Primary(r.params.Horizontal))
	r.tracker.SetDimensions(r.window, r.params.Horizontal)
	return nil
}

func (r *Renderer) onEngagedItemsChanged(all, now, notNow []int) {
	for _, index := range notNow {
		delete(r.engaged, index)
		if !r.recycling || r.params == nil || index >= r.params.ItemCount {
			continue
		}
		if item, ok := r.stableIDs[r.stableID(index)]; ok {
			r.pool.Put(r.policy.LayoutTypeForIndex(index), item.Key)
		}
	}
	if r.updateRenderStack(now) {
		r.stackChanged(r.RenderStack())
	}
}

// updateRenderStack assigns slots to newly engaged indexes and reports
// whether the render stack changed.
func (r *Renderer) updateRenderStack(indexes []int) bool {
	r.dirty = false
	for _, index := range indexes {
		r.engaged[index] = struct{}{}
		r.SyncAndGetKey(index)
	}
	changed := r.dirty
	r.dirty = false
	return changed
}
