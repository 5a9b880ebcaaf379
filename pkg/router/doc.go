// Package router implements the psychat navigation route table.
//
// The route table is built once at start-up from a list of routes and is
// read-only afterwards, so a single *Table may be shared by every request
// and connection without locking.
//
// # Path Templates
//
// Templates are "/"-separated. A segment starting with ":" binds a
// parameter, and a final segment starting with "*" captures the rest of the
// path:
//
//	/                          → static root
//	/psychologist/:id/intro    → :id (string)
//	/psychologist/:id:int/chat → :id (must parse as an integer)
//	/files/*path               → *path (catch-all, may span segments)
//
// Static segments take precedence over parameters, and parameters over a
// catch-all, independent of registration order.
//
// # Usage
//
//	table, err := router.NewTable(
//	    router.Route{Path: "/", Name: "HomePage", View: "HomePage"},
//	    router.Route{Path: "/psychologist/:id/intro", Name: "PsychologistIntro", View: "PsychologistIntro"},
//	)
//
//	match, err := table.Resolve("/psychologist/42/intro")
//	if errors.Is(err, router.ErrRouteNotFound) {
//	    // the rendering layer decides what to show
//	}
//	// match.View == "PsychologistIntro", match.Params["id"] == "42"
//
//	href, _ := table.Href("PsychologistIntro", map[string]string{"id": "42"})
//	// href == "/psychologist/42/intro"
package router
