package maps

import (
	"errors"
	"fmt"
)

// Kind classifies a provider adapter failure.
type Kind string

// Failure kinds surfaced to tool callers as the envelope code.
const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindNotFound          Kind = "NOT_FOUND"
	KindUnsupportedFilter Kind = "UNSUPPORTED_FILTER"
	KindNoRouteFound      Kind = "NO_ROUTE_FOUND"
	KindInvalidWaypoint   Kind = "INVALID_WAYPOINT"
	KindUpstream          Kind = "UPSTREAM_ERROR"
)

// Error is the typed failure returned by every Provider operation.
// Message is human readable and is what callers see in the envelope;
// Err keeps the underlying cause for logs.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int // HTTP status from the provider, 0 if no response
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrUnsupportedFilter = &Error{Kind: KindUnsupportedFilter}
	ErrNoRouteFound      = &Error{Kind: KindNoRouteFound}
	ErrInvalidWaypoint   = &Error{Kind: KindInvalidWaypoint}
	ErrUpstream          = &Error{Kind: KindUpstream}
)

// KindOf returns the kind of err, or KindUpstream for errors that did not
// originate in this package (context deadlines, transport errors).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// NewError builds an *Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func notFound(message string) *Error {
	return NewError(KindNotFound, message)
}

func noRouteFound() *Error {
	return NewError(KindNoRouteFound, "No route found")
}

func upstream(status int, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), StatusCode: status, Err: cause}
}
