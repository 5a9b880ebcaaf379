package router

import (
	"errors"
	"fmt"
)

// ErrRouteNotFound is reported when a path matches no registered template.
var ErrRouteNotFound = errors.New("route not found")

// ErrUnknownRoute is reported when a route name is not registered.
var ErrUnknownRoute = errors.New("unknown route")

// ErrMissingParam is reported when building a path without a required parameter.
var ErrMissingParam = errors.New("missing route parameter")

// NotFoundError describes a path that could not be resolved.
// It matches ErrRouteNotFound with errors.Is. When the path was rejected
// during canonicalization, Cause holds the canonicalization error.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q: %v", ErrRouteNotFound, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrRouteNotFound, e.Path)
}

// Is reports whether target is ErrRouteNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// Unwrap returns the canonicalization cause, if any.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}
