package router

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errDuplicateTemplate = errors.New("duplicate template")
	errParamConflict     = errors.New("parameter conflict")
)

// Parameter types understood by the route table.
const (
	ParamTypeString   = "string"
	ParamTypeInt      = "int"
	ParamTypeUint     = "uint"
	ParamTypeUUID     = "uuid"
	ParamTypeCatchAll = "[]string"
)

// RouteNode is a node in the radix tree.
type RouteNode struct {
	// segment is the path segment this node matches
	segment string

	// isParam indicates this is a parameter segment (:id)
	isParam bool

	// isCatchAll indicates this is a catch-all segment (*path)
	isCatchAll bool

	// paramName is the parameter name (without : or *)
	paramName string

	// paramType is the expected parameter type (string, int, uuid)
	paramType string

	// route is set when a template terminates at this node
	route *Route

	// children are static segment children
	children []*RouteNode

	// paramChild is the dynamic parameter child (:id)
	paramChild *RouteNode

	// catchAllChild is the catch-all child (*path)
	catchAllChild *RouteNode
}

func newRouteNode(segment string) *RouteNode {
	return &RouteNode{segment: segment}
}

// findChild finds the static child for segment, ignoring case.
func (n *RouteNode) findChild(segment string) *RouteNode {
	for _, child := range n.children {
		if strings.EqualFold(child.segment, segment) {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *RouteNode) addChild(segment string) *RouteNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newRouteNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild sets the parameter child node. Two templates may share a
// parameter position only when they agree on its name and type.
func (n *RouteNode) addParamChild(name, paramType string) (*RouteNode, error) {
	if n.paramChild != nil {
		if n.paramChild.paramName != name || n.paramChild.paramType != paramType {
			return nil, fmt.Errorf("%w: :%s:%s conflicts with :%s:%s", errParamConflict,
				name, paramType, n.paramChild.paramName, n.paramChild.paramType)
		}
		return n.paramChild, nil
	}
	child := newRouteNode("")
	child.isParam = true
	child.paramName = name
	child.paramType = paramType
	n.paramChild = child
	return child, nil
}

// addCatchAllChild sets the catch-all child node.
func (n *RouteNode) addCatchAllChild(name string) (*RouteNode, error) {
	if n.catchAllChild != nil {
		if n.catchAllChild.paramName != name {
			return nil, fmt.Errorf("%w: *%s conflicts with *%s", errParamConflict, name, n.catchAllChild.paramName)
		}
		return n.catchAllChild, nil
	}
	child := newRouteNode("")
	child.isCatchAll = true
	child.paramName = name
	child.paramType = ParamTypeCatchAll
	n.catchAllChild = child
	return child, nil
}

// insertRoute adds a route to the tree.
func (n *RouteNode) insertRoute(route *Route) error {
	current := n

	for _, seg := range splitTemplate(route.Path) {
		var err error
		switch {
		case isCatchAllSegment(seg):
			current, err = current.addCatchAllChild(seg[1:])
		case isParamSegment(seg):
			name, paramType := parseParamSegment(seg)
			current, err = current.addParamChild(name, paramType)
		default:
			current = current.addChild(seg)
		}
		if err != nil {
			return err
		}
	}

	if current.route != nil {
		return fmt.Errorf("%w: %q already registered by %q", errDuplicateTemplate, route.Path, current.route.Name)
	}
	current.route = route
	return nil
}

// match finds the node terminating the given decoded path segments.
// Static children are tried first, then the parameter child, then the
// catch-all, backtracking on failure.
func (n *RouteNode) match(segments []string, params map[string]string) (*RouteNode, bool) {
	if len(segments) == 0 {
		if n.route != nil {
			return n, true
		}
		// A catch-all also matches an empty remainder.
		if n.catchAllChild != nil && n.catchAllChild.route != nil {
			params[n.catchAllChild.paramName] = ""
			return n.catchAllChild, true
		}
		return nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if node, ok := child.match(remaining, params); ok {
			return node, true
		}
	}

	if n.paramChild != nil && ValidateParam(segment, n.paramChild.paramType) == nil {
		params[n.paramChild.paramName] = segment
		if node, ok := n.paramChild.match(remaining, params); ok {
			return node, true
		}
		delete(params, n.paramChild.paramName)
	}

	if n.catchAllChild != nil && n.catchAllChild.route != nil {
		params[n.catchAllChild.paramName] = strings.Join(segments, "/")
		return n.catchAllChild, true
	}

	return nil, false
}

// splitTemplate splits a path template into segments.
func splitTemplate(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func isParamSegment(seg string) bool {
	return strings.HasPrefix(seg, ":")
}

func isCatchAllSegment(seg string) bool {
	return strings.HasPrefix(seg, "*")
}

// parseParamSegment extracts name and type from a parameter segment.
// Input: ":id" or ":id:int" -> name="id", type="string" or "int"
func parseParamSegment(seg string) (name, paramType string) {
	seg = seg[1:]
	if idx := strings.Index(seg, ":"); idx != -1 {
		return seg[:idx], seg[idx+1:]
	}
	return seg, ParamTypeString
}
