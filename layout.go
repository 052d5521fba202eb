// layout.go re-exports engine types from internal packages.
// Any changes to the internal types must be mirrored here.
package recycler

import (
	"github.com/grindlemire/go-recycler/internal/errs"
	"github.com/grindlemire/go-recycler/internal/layout"
	"github.com/grindlemire/go-recycler/internal/viewability"
	"github.com/grindlemire/go-recycler/internal/virtual"
)

// LayoutType tags items that share a row template and can recycle each
// other's slots.
type LayoutType = layout.Type

// Layout holds the computed geometry of one data index.
type Layout = layout.Layout

// Dimension is a width/height pair.
type Dimension = layout.Dimension

// Point is an x/y coordinate.
type Point = layout.Point

// Rect is a rectangle with position and dimensions.
type Rect = layout.Rect

// LayoutManager owns the layout list of a list view.
type LayoutManager = layout.Manager

// LayoutListener receives the content dimension after every relayout.
type LayoutListener = layout.Listener

// WindowCorrection shifts the tracked window relative to the scroll offset.
type WindowCorrection = viewability.WindowCorrection

// RangeFunc receives a range, the indexes that entered it and the indexes
// that left it.
type RangeFunc = viewability.RangeFunc

// RenderStack maps slot keys to the data index each slot renders.
type RenderStack = virtual.RenderStack

// StackItem is one render stack entry.
type StackItem = virtual.StackItem

// Error is a discriminated engine error.
type Error = errs.Error

// ErrorKind discriminates engine errors.
type ErrorKind = errs.Kind

const (
	KindInitialization         = errs.KindInitialization
	KindUnresolvedDependencies = errs.KindUnresolvedDependencies
	KindLayoutUnavailable      = errs.KindLayoutUnavailable
	KindSpanOverflow           = errs.KindSpanOverflow
	KindInvalidConfig          = errs.KindInvalidConfig
	KindBoundedSize            = errs.KindBoundedSize
	KindItemTypeNull           = errs.KindItemTypeNull
	KindContextStore           = errs.KindContextStore
)

// Sentinel errors for errors.Is.
var (
	ErrInitialization         = errs.ErrInitialization
	ErrUnresolvedDependencies = errs.ErrUnresolvedDependencies
	ErrBoundedSize            = errs.ErrBoundedSize
	ErrItemTypeNull           = errs.ErrItemTypeNull
)

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return layout.NewRect(x, y, width, height)
}
