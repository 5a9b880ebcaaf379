package router

// View identifies the renderable unit a route selects.
// Views are opaque to the router; the rendering layer gives them meaning.
type View string

// Route maps a path template to a named view.
type Route struct {
	// Path is the path template (e.g., "/psychologist/:id/intro").
	Path string `json:"path"`

	// Name is the unique route identifier (e.g., "PsychologistIntro").
	Name string `json:"name"`

	// View is the view rendered for this route.
	View View `json:"view"`
}

// Params returns the parameter definitions declared by the route template,
// in template order.
func (r Route) Params() []ParamDef {
	var defs []ParamDef
	for _, seg := range splitTemplate(r.Path) {
		switch {
		case isCatchAllSegment(seg):
			defs = append(defs, ParamDef{Name: seg[1:], Type: ParamTypeCatchAll, Segment: seg})
		case isParamSegment(seg):
			name, typ := parseParamSegment(seg)
			defs = append(defs, ParamDef{Name: name, Type: typ, Segment: seg})
		}
	}
	return defs
}

// ParamDef defines a route parameter.
type ParamDef struct {
	// Name is the parameter name (e.g., "id")
	Name string `json:"name"`

	// Type is the parameter type (e.g., "string", "int", "uuid")
	Type string `json:"type"`

	// Segment is the original template segment (e.g., ":id", ":id:int")
	Segment string `json:"segment"`
}

// MatchResult is the outcome of resolving a navigation path.
// A new MatchResult is created for every resolution.
type MatchResult struct {
	// Route is the matched route definition.
	Route Route `json:"route"`

	// View is the view selected by the route.
	View View `json:"view"`

	// Path is the canonical form of the requested path.
	Path string `json:"path"`

	// Query is the raw query string of the request, without "?".
	Query string `json:"query,omitempty"`

	// Params are the extracted, percent-decoded route parameters.
	Params map[string]string `json:"params"`
}
