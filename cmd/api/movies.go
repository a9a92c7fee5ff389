package main

import (
	"net/http"

	"github.com/hafizmfadli/movie-catalog/internal/data"
)

// listMoviesHandler for the "GET /movies" endpoint. The reply is a bare JSON
// array in storage order.
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createMovieHandler for the "POST /movies" endpoint. Fields are stored as
// submitted and echoed back together with the generated id.
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.MovieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	id, err := app.models.Movies.Insert(r.Context(), &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.CreatedMovie{ID: id, MovieInput: input}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateMovieHandler for the "PUT /movies/:id" endpoint. All six fields are
// overwritten. An id matching no row still yields the success message.
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	var input data.MovieInput

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Movies.Update(r.Context(), id, &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Movie updated."}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteMovieHandler for the "DELETE /movies/:id" endpoint. Deleting an id
// that does not exist is not an error.
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.models.Movies.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Movie deleted."}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
