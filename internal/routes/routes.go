// Package routes declares the psychat front-end navigation table.
package routes

import "github.com/psychat-dev/psychat/pkg/router"

// Views rendered by the front-end.
const (
	HomePage          router.View = "HomePage"
	PsychologistIntro router.View = "PsychologistIntro"
	PsychologistChat  router.View = "PsychologistChat"
)

// Definitions returns the application routes in registration order.
func Definitions() []router.Route {
	return []router.Route{
		{Path: "/", Name: "HomePage", View: HomePage},
		{Path: "/psychologist/:id/intro", Name: "PsychologistIntro", View: PsychologistIntro},
		{Path: "/psychologist/:id/chat", Name: "PsychologistChat", View: PsychologistChat},
	}
}

// New builds the application route table. Callers build it once at start-up
// and pass it to whatever needs to resolve paths.
func New() (*router.Table, error) {
	return router.NewTable(Definitions()...)
}
