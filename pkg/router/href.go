package router

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// HrefOptions configures path building.
type HrefOptions struct {
	// Query are query parameters appended to the path.
	Query map[string]any

	// Fragment is appended after "#" when set.
	Fragment string
}

// HrefOption is a functional option for Href.
type HrefOption func(*HrefOptions)

// WithQuery adds query parameters to the built path.
func WithQuery(query map[string]any) HrefOption {
	return func(o *HrefOptions) {
		o.Query = query
	}
}

// WithFragment sets the fragment of the built path.
func WithFragment(fragment string) HrefOption {
	return func(o *HrefOptions) {
		o.Fragment = fragment
	}
}

// Href builds the path of the named route from a parameter mapping.
// Parameter values are percent-escaped and checked against their declared
// types, so the result always resolves back to the same route.
//
//	table.Href("PsychologistChat", map[string]string{"id": "7"})
//	// "/psychologist/7/chat"
func (t *Table) Href(name string, params map[string]string, opts ...HrefOption) (string, error) {
	route, ok := t.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	var options HrefOptions
	for _, opt := range opts {
		opt(&options)
	}

	segments := splitTemplate(route.Path)
	built := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case isCatchAllSegment(seg):
			value, ok := params[seg[1:]]
			if !ok {
				return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, seg[1:], name)
			}
			for _, part := range strings.Split(strings.Trim(value, "/"), "/") {
				if part != "" {
					built = append(built, url.PathEscape(part))
				}
			}
		case isParamSegment(seg):
			pname, ptype := parseParamSegment(seg)
			value, ok := params[pname]
			if !ok || value == "" {
				return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, pname, name)
			}
			if err := ValidateParam(value, ptype); err != nil {
				return "", fmt.Errorf("param %q for route %q: %w", pname, name, err)
			}
			built = append(built, url.PathEscape(value))
		default:
			built = append(built, seg)
		}
	}

	href := "/" + strings.Join(built, "/")

	if len(options.Query) > 0 {
		q := url.Values{}
		keys := make([]string, 0, len(options.Query))
		for k := range options.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			q.Set(k, fmt.Sprintf("%v", options.Query[k]))
		}
		href += "?" + q.Encode()
	}
	if options.Fragment != "" {
		href += "#" + url.PathEscape(options.Fragment)
	}

	return href, nil
}
