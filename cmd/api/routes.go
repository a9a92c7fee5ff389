package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes wires the catalog endpoints onto an httprouter instance and wraps it
// in the middleware chain.
func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.deleteMovieHandler)

	return app.metrics.instrument(
		app.recoverPanic(
			app.requestID(
				app.logRequest(
					app.enableCORS(
						app.rateLimit(router),
					),
				),
			),
		),
	)
}
