package recycler

import "strconv"

// DataProvider holds the items of a list view. It is immutable: replace the
// data with CloneWithRows and hand the result to ListView.SetDataProvider so
// the view can relayout only from the first changed row.
type DataProvider[T any] struct {
	rowHasChanged func(a, b T) bool
	stableID      func(item T) string

	data []T

	firstIndexToProcess        int
	requiresDataChangeHandling bool
}

// DataProviderOption configures a DataProvider.
type DataProviderOption[T any] func(*DataProvider[T])

// WithStableID derives each item's identity from the item itself, so the
// view keeps an item's slot when the item moves to another index.
// Without it the identity is the decimal index.
func WithStableID[T any](fn func(item T) string) DataProviderOption[T] {
	return func(dp *DataProvider[T]) {
		dp.stableID = fn
	}
}

// NewDataProvider creates an empty data provider. rowHasChanged reports
// whether two items at the same index differ.
func NewDataProvider[T any](rowHasChanged func(a, b T) bool, opts ...DataProviderOption[T]) *DataProvider[T] {
	if rowHasChanged == nil {
		panic("recycler: nil rowHasChanged in NewDataProvider")
	}
	dp := &DataProvider[T]{rowHasChanged: rowHasChanged}
	for _, opt := range opts {
		opt(dp)
	}
	return dp
}

// Size returns the number of items.
func (dp *DataProvider[T]) Size() int {
	return len(dp.data)
}

// DataAt returns the item at index.
func (dp *DataProvider[T]) DataAt(index int) T {
	return dp.data[index]
}

// All returns the item slice. Callers must not mutate it.
func (dp *DataProvider[T]) All() []T {
	return dp.data
}

// StableID returns the identity of the item at index.
func (dp *DataProvider[T]) StableID(index int) string {
	if dp.stableID != nil && index >= 0 && index < len(dp.data) {
		return dp.stableID(dp.data[index])
	}
	return strconv.Itoa(index)
}

// HasStableIDs reports whether identities come from WithStableID.
func (dp *DataProvider[T]) HasStableIDs() bool {
	return dp.stableID != nil
}

// RowHasChanged reports whether a and b differ.
func (dp *DataProvider[T]) RowHasChanged(a, b T) bool {
	return dp.rowHasChanged(a, b)
}

// FirstIndexToProcess returns the first index whose layout must be
// recomputed relative to the provider this one was cloned from.
func (dp *DataProvider[T]) FirstIndexToProcess() int {
	return dp.firstIndexToProcess
}

// RequiresDataChangeHandling reports whether any pre-existing row changed,
// in which case the view reconciles its slots against the new identities.
// Pure appends do not require it.
func (dp *DataProvider[T]) RequiresDataChangeHandling() bool {
	return dp.requiresDataChangeHandling
}

// CloneWithRows returns a provider holding data. The first changed row is
// found by comparing rows pairwise with rowHasChanged.
func (dp *DataProvider[T]) CloneWithRows(data []T) *DataProvider[T] {
	n := min(len(dp.data), len(data))
	i := 0
	for ; i < n; i++ {
		if dp.rowHasChanged(dp.data[i], data[i]) {
			break
		}
	}
	return dp.clone(data, i)
}

// CloneWithRowsFrom is CloneWithRows for callers that already know the first
// modified index; no rows are compared.
func (dp *DataProvider[T]) CloneWithRowsFrom(data []T, firstModified int) *DataProvider[T] {
	return dp.clone(data, max(min(firstModified, len(dp.data)), 0))
}

func (dp *DataProvider[T]) clone(data []T, first int) *DataProvider[T] {
	return &DataProvider[T]{
		rowHasChanged:              dp.rowHasChanged,
		stableID:                   dp.stableID,
		data:                       data,
		firstIndexToProcess:        first,
		requiresDataChangeHandling: first != len(dp.data),
	}
}
