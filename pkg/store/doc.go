// Package store provides persisted context stores for recycler list views.
//
// A list view saves its scroll offset (and, when item sizes are measured, its
// layouts) under a caller supplied unique key when it closes, and restores
// them when a list with the same key is created again. [Memory] keeps the
// values for the lifetime of the process; [Bolt] keeps them in a bbolt file.
package store
