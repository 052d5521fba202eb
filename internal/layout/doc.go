// Package layout computes item geometry for virtualized lists.
//
// A [Manager] owns one [Layout] per data index and places items with a
// wrap-grid packing rule: items fill the cross axis of the window and wrap
// into a new row (vertical lists) or column (horizontal lists) when the next
// item would overflow. Relayout is incremental: [Manager.RelayoutFromIndex]
// restarts at the first item of the row containing the changed index.
//
// [WrapGrid] is the general packer. [Grid] adds span-based cross-axis sizing
// and suppresses relayout for measurement noise below a configurable delta.
// Types are re-exported through the root recycler package.
package layout
