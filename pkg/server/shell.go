package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/psychat-dev/psychat/pkg/router"
)

// shellTemplate is the HTML document served for every page route.
// The front-end bundle reads the view and params from #psychat-root.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- with .Stylesheet}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
</head>
<body>
<div id="psychat-root" data-view="{{.View}}" data-route="{{.Route}}" data-path="{{.Path}}"></div>
<script id="psychat-params" type="application/json">{{.Params}}</script>
{{- with .Script}}
<script type="module" src="{{.}}"></script>
{{- end}}
</body>
</html>
`))

type shellData struct {
	Title  string
	View   router.View
	Route  string
	Path   string
	Params map[string]string

	Script     string
	Stylesheet string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	result, err := s.resolver.Resolve(r.Context(), target)
	if err != nil {
		if errors.Is(err, router.ErrRouteNotFound) {
			s.notFound.ServeHTTP(w, r)
			return
		}
		s.logger.Error("page resolve failed", "path", target, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if result.Path != r.URL.EscapedPath() {
		canonical := result.Path
		if result.Query != "" {
			canonical += "?" + result.Query
		}
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	data := shellData{
		Title:  "Psychat",
		View:   result.View,
		Route:  result.Route.Name,
		Path:   result.Path,
		Params: result.Params,
	}
	if s.assets != nil {
		data.Script = s.assets.Asset("app.js")
		data.Stylesheet = s.assets.Asset("app.css")
	}

	var buf bytes.Buffer
	err = shellTemplate.Execute(&buf, data)
	if err != nil {
		s.logger.Error("render shell", "view", result.View, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
