// Package errs defines the error taxonomy shared by the virtualization engine.
//
// Every fatal condition carries a [Kind] and a human-readable message.
// Configuration errors are returned from constructors and setters; engine
// desynchronization (for example asking for the layout of an index that was
// never computed) panics with an [*Error] value.
package errs

import "fmt"

// Kind discriminates engine errors.
type Kind uint8

const (
	KindInitialization         Kind = iota + 1 // parameters required for initialization are missing
	KindUnresolvedDependencies                 // data provider or layout provider missing
	KindLayoutUnavailable                      // layout queried for an index without computed layout
	KindSpanOverflow                           // grid item span exceeds the max span
	KindInvalidConfig                          // invalid numeric configuration
	KindBoundedSize                            // viewport has zero width or height
	KindItemTypeNull                           // layout provider returned an empty type
	KindContextStore                           // persisted context could not be read or written
)

var kindNames = map[Kind]string{
	KindInitialization:         "Initialization",
	KindUnresolvedDependencies: "UnresolvedDependencies",
	KindLayoutUnavailable:      "LayoutUnavailable",
	KindSpanOverflow:           "SpanOverflow",
	KindInvalidConfig:          "InvalidConfig",
	KindBoundedSize:            "BoundedSize",
	KindItemTypeNull:           "ItemTypeNull",
	KindContextStore:           "ContextStore",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a discriminated engine error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates an Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Predefined errors with the canonical messages.
var (
	ErrInitialization         = &Error{Kind: KindInitialization, Message: "parameters required for initializing the module are missing"}
	ErrUnresolvedDependencies = &Error{Kind: KindUnresolvedDependencies, Message: "missing data provider or layout provider, cannot proceed without it"}
	ErrBoundedSize            = &Error{Kind: KindBoundedSize, Message: "list needs a bounded size, height or width is 0"}
	ErrItemTypeNull           = &Error{Kind: KindItemTypeNull, Message: "items always require a type, check the layout provider"}
)
