package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psychat-dev/psychat/pkg/routepath"
	"github.com/psychat-dev/psychat/pkg/router"
)

// Match is the wire form of a successful resolution.
type Match struct {
	Name   string            `json:"name"`
	View   router.View       `json:"view"`
	Path   string            `json:"path"`
	Params map[string]string `json:"params"`
	Query  string            `json:"query,omitempty"`
}

// NewMatch converts a resolution result to its wire form.
func NewMatch(result *router.MatchResult) Match {
	params := result.Params
	if params == nil {
		params = map[string]string{}
	}
	return Match{
		Name:   result.Route.Name,
		View:   result.View,
		Path:   result.Path,
		Params: params,
		Query:  result.Query,
	}
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Name   string            `json:"name"`
	Path   string            `json:"path"`
	View   router.View       `json:"view"`
	Params []router.ParamDef `json:"params,omitempty"`
}

// errorBody is returned for every failed API request.
type errorBody struct {
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error codes carried in API responses and stream replies.
const (
	CodeRouteNotFound  = "route_not_found"
	CodeInvalidRequest = "invalid_request"
	CodeUnknownRoute   = "unknown_route"
	CodeMissingParam   = "missing_param"
	CodeInvalidParam   = "invalid_param"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("path") {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeInvalidRequest, Message: "path query parameter is required"})
		return
	}
	path := q.Get("path")
	if _, err := routepath.ValidateNavPath(path); errors.Is(err, routepath.ErrInvalidPath) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeInvalidPath, Path: path})
		return
	}

	result, err := s.resolver.Resolve(r.Context(), path)
	if err != nil {
		if errors.Is(err, router.ErrRouteNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: CodeRouteNotFound, Path: path})
			return
		}
		s.logger.Error("resolve failed", "path", path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal"})
		return
	}

	writeJSON(w, http.StatusOK, NewMatch(result))
}

func (s *Server) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	routes := s.table.Routes()
	out := make([]RouteInfo, 0, len(routes))
	for _, rt := range routes {
		out = append(out, RouteInfo{
			Name:   rt.Name,
			Path:   rt.Path,
			View:   rt.View,
			Params: rt.Params(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHref(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	query := r.URL.Query()
	params := make(map[string]string, len(query))
	for k := range query {
		params[k] = query.Get(k)
	}

	href, err := s.table.Href(name, params)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"href": href})
	case errors.Is(err, router.ErrUnknownRoute):
		writeJSON(w, http.StatusNotFound, errorBody{Error: CodeUnknownRoute, Message: err.Error()})
	case errors.Is(err, router.ErrMissingParam):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeMissingParam, Message: err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: CodeInvalidParam, Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
