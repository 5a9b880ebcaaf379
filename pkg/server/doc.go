// Package server exposes a route table over HTTP and WebSocket.
//
// # Endpoints
//
//	GET /_nav/resolve?path=/psychologist/7/chat   resolve a path to a view
//	GET /_nav/routes                              list registered routes
//	GET /_nav/href/{name}?id=7                    build the path of a named route
//	GET /_nav/ws                                  navigation stream
//	GET /healthz                                  liveness probe
//	GET /metrics                                  Prometheus metrics (WithMetrics)
//
// Every other GET is answered with the HTML page shell for the matching
// view, or handed to the NotFound handler.
//
// # Navigation Stream
//
// Clients send JSON frames on /_nav/ws:
//
//	{"id": "1", "path": "/psychologist/7/chat"}
//
// and receive one reply per frame:
//
//	{"id": "1", "ok": true, "match": {"name": "PsychologistChat", "view": "PsychologistChat", ...}}
//	{"id": "2", "ok": false, "error": "route_not_found"}
//
// Replies are written in request order. A malformed frame gets an
// invalid_request reply and the stream stays open.
//
// # Usage
//
//	srv := server.New(table, cfg,
//	    server.WithResolverMiddleware(middleware.Logging(logger)),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
