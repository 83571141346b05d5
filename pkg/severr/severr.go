// Package severr defines the error kinds surfaced at the MapModel API
// boundary. Parse and build errors are fatal to the operation that raised
// them; callers distinguish kinds with errors.Is/errors.As rather than
// string matching.
package severr

import "fmt"

// Kind identifies one of the error categories in the error handling design.
type Kind uint8

const (
	// InputMalformed means the OSM bytes were unparseable or internally
	// inconsistent (e.g. a way referencing a node never seen).
	InputMalformed Kind = iota
	// EmptyArea means fewer than two intersections survived classification.
	EmptyArea
	// NotSnappable means no road of the requested profile lies within a
	// reasonable radius of a query point.
	NotSnappable
	// NoPath means start and end are in different connected components of
	// the profile's traversable subgraph.
	NoPath
	// DegenerateInput means start and end snap to the same point: the same
	// intersection, or the same spot along one road.
	DegenerateInput
	// UnknownProfile means the named profile isn't registered in the model.
	UnknownProfile
)

func (k Kind) String() string {
	switch k {
	case InputMalformed:
		return "InputMalformed"
	case EmptyArea:
		return "EmptyArea"
	case NotSnappable:
		return "NotSnappable"
	case NoPath:
		return "NoPath"
	case DegenerateInput:
		return "DegenerateInput"
	case UnknownProfile:
		return "UnknownProfile"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying a Kind plus a human-readable detail and,
// for wrapped causes, the underlying error.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, severr.New(severr.NoPath, "")) or, more idiomatically,
// compare with errors.As and inspect Kind directly.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind with a detail message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs an *Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}
