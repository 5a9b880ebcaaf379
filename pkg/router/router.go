package router

import (
	"strings"

	"github.com/psychat-dev/psychat/pkg/routepath"
)

// Table is an immutable route table.
// It is safe for concurrent use once built.
type Table struct {
	root   *RouteNode
	routes []Route
	byName map[string]int
}

// NewTable validates routes and builds a table from them.
// Registration order is kept for Routes; matching precedence does not
// depend on it.
func NewTable(routes ...Route) (*Table, error) {
	if err := NewValidator(routes).Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		root:   newRouteNode(""),
		routes: make([]Route, len(routes)),
		byName: make(map[string]int, len(routes)),
	}
	copy(t.routes, routes)

	for i := range t.routes {
		if err := t.root.insertRoute(&t.routes[i]); err != nil {
			return nil, err
		}
		t.byName[t.routes[i].Name] = i
	}

	return t, nil
}

// MustTable is like NewTable but panics on an invalid route set.
// Intended for package-level route declarations.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve matches a navigation path against the table.
//
// The path is canonicalized first, so "/psychologist/7/chat/" and
// "/psychologist//7/chat?x=1" resolve like "/psychologist/7/chat".
// Static segments match case-insensitively; parameter values keep their
// case. Paths must be absolute: "" and "psychologist/7/chat" are not found.
// When no template matches, the returned error is a *NotFoundError that
// satisfies errors.Is(err, ErrRouteNotFound).
func (t *Table) Resolve(path string) (*MatchResult, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, &NotFoundError{Path: path, Cause: routepath.ErrInvalidPath}
	}

	canon, err := routepath.Canonicalize(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Cause: err}
	}

	raw := routepath.Split(canon.Path)
	segments := make([]string, len(raw))
	for i, seg := range raw {
		decoded, err := routepath.DecodeSegment(seg)
		if err != nil {
			return nil, &NotFoundError{Path: path, Cause: err}
		}
		segments[i] = decoded
	}

	params := make(map[string]string)
	node, ok := t.root.match(segments, params)
	if !ok {
		return nil, &NotFoundError{Path: path}
	}

	return &MatchResult{
		Route:  *node.route,
		View:   node.route.View,
		Path:   canon.Path,
		Query:  canon.Query,
		Params: params,
	}, nil
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route registered under name.
func (t *Table) Lookup(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}
