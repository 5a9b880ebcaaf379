package router

import (
	"errors"
	"fmt"
	"strings"
)

// Validator checks a set of routes for conflicts and malformed templates
// before they are loaded into a Table.
type Validator struct {
	routes []Route
	errors []ValidationError
}

// ValidationError represents a route validation error.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Routes are the names of the routes involved
	Routes []string

	// Path is the offending template
	Path string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorMissingName indicates a route without a name.
	ErrorMissingName ValidationErrorType = "MISSING_NAME"

	// ErrorDuplicateName indicates two routes share a name.
	ErrorDuplicateName ValidationErrorType = "DUPLICATE_NAME"

	// ErrorInvalidTemplate indicates a template that cannot be parsed.
	// Example: "/psychologist/:" or "/files/*rest/more"
	ErrorInvalidTemplate ValidationErrorType = "INVALID_TEMPLATE"

	// ErrorDuplicateRoute indicates two templates resolve to the same pattern.
	// Example: "/psychologist/:id" and "/psychologist/:id/"
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorParamConflict indicates templates that disagree on the parameter
	// bound at the same position.
	// Example: "/psychologist/:id/intro" and "/psychologist/:slug/chat"
	ErrorParamConflict ValidationErrorType = "PARAM_CONFLICT"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// NewValidator creates a new route validator.
func NewValidator(routes []Route) *Validator {
	return &Validator{routes: routes}
}

// Validate checks all routes.
// Returns nil if all routes are valid, or a *MultiValidationError with every
// problem found.
func (v *Validator) Validate() error {
	v.errors = nil

	v.validateNames()
	v.validateTemplates()
	v.validateConflicts()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

func (v *Validator) validateNames() {
	seen := make(map[string]string)
	for _, route := range v.routes {
		if route.Name == "" {
			v.errors = append(v.errors, ValidationError{
				Type:    ErrorMissingName,
				Message: fmt.Sprintf("route %q has no name", route.Path),
				Path:    route.Path,
			})
			continue
		}
		if prev, ok := seen[route.Name]; ok {
			v.errors = append(v.errors, ValidationError{
				Type:    ErrorDuplicateName,
				Message: fmt.Sprintf("name %q used by %q and %q", route.Name, prev, route.Path),
				Routes:  []string{route.Name},
				Path:    route.Path,
			})
			continue
		}
		seen[route.Name] = route.Path
	}
}

func (v *Validator) validateTemplates() {
	for _, route := range v.routes {
		if msg := templateProblem(route.Path); msg != "" {
			v.errors = append(v.errors, ValidationError{
				Type:    ErrorInvalidTemplate,
				Message: fmt.Sprintf("%q: %s", route.Path, msg),
				Routes:  []string{route.Name},
				Path:    route.Path,
			})
		}
	}
}

// templateProblem describes what is wrong with a template, or returns "".
func templateProblem(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "template must start with /"
	}
	segments := splitTemplate(path)
	names := make(map[string]bool)
	for i, seg := range segments {
		switch {
		case seg == "":
			return "empty segment"
		case isCatchAllSegment(seg):
			if len(seg) == 1 {
				return "catch-all without a name"
			}
			if i != len(segments)-1 {
				return "catch-all must be the last segment"
			}
			if names[seg[1:]] {
				return fmt.Sprintf("parameter %q declared twice", seg[1:])
			}
		case isParamSegment(seg):
			name, typ := parseParamSegment(seg)
			if name == "" {
				return "parameter without a name"
			}
			if !knownParamType(typ) {
				return fmt.Sprintf("unknown parameter type %q", typ)
			}
			if names[name] {
				return fmt.Sprintf("parameter %q declared twice", name)
			}
			names[name] = true
		}
	}
	return ""
}

// validateConflicts inserts every well-formed template into a scratch tree
// and reports duplicates and parameter disagreements.
func (v *Validator) validateConflicts() {
	root := newRouteNode("")
	for i := range v.routes {
		route := v.routes[i]
		if templateProblem(route.Path) != "" {
			continue
		}
		if err := root.insertRoute(&route); err != nil {
			typ := ErrorParamConflict
			if errors.Is(err, errDuplicateTemplate) {
				typ = ErrorDuplicateRoute
			}
			v.errors = append(v.errors, ValidationError{
				Type:    typ,
				Message: err.Error(),
				Routes:  []string{route.Name},
				Path:    route.Path,
			})
		}
	}
}
