// Package ui holds the state of the catalog front end: the movie list, the
// edit form and an explicit status machine driven by the REST client.
package ui

import (
	"context"
	"errors"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/validator"
)

// Messages shown to the user when a round trip fails.
const (
	MsgFetchFailed  = "Failed to fetch movies"
	MsgSaveFailed   = "Failed to save movie"
	MsgDeleteFailed = "Failed to delete movie"
)

// DeletePrompt is the question put to the Confirmer before a delete.
const DeletePrompt = "Delete this movie?"

// ErrInvalidForm is returned by Submit when the form fails validation.
var ErrInvalidForm = errors.New("invalid form")

// Status is the phase the front end is in.
type Status int

const (
	Idle Status = iota
	Loading
	Submitting
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Submitting:
		return "submitting"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is the current Status plus the message shown while Failed.
type State struct {
	Status  Status
	Message string

	// Set while Submitting: the body being saved (nil for a delete) and the
	// id it targets (0 for a create).
	Pending  *data.MovieInput
	TargetID int64
}

// API is the subset of the REST client the model drives.
type API interface {
	List(ctx context.Context) ([]data.Movie, error)
	Create(ctx context.Context, input data.MovieInput) (data.CreatedMovie, error)
	Update(ctx context.Context, id int64, input data.MovieInput) error
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Model is the front end state. It is not safe for concurrent use; calls are
// expected one at a time, one round trip each.
type Model struct {
	api     API
	confirm Confirmer

	state   State
	movies  []data.Movie
	form    Form
	editing *int64

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

// New returns an Idle model with an empty list and form. confirm is asked
// before every delete and must not be nil.
func New(api API, confirm Confirmer) *Model {
	return &Model{api: api, confirm: confirm}
}

func (m *Model) State() State         { return m.state }
func (m *Model) Movies() []data.Movie { return m.movies }
func (m *Model) Form() Form           { return m.form }

// EditingID returns the id of the movie loaded by Edit, if any.
func (m *Model) EditingID() (int64, bool) {
	if m.editing == nil {
		return 0, false
	}
	return *m.editing, true
}

func (m *Model) transition(to State) {
	from := m.state
	m.state = to
	if m.OnTransition != nil {
		m.OnTransition(from, to)
	}
}

func (m *Model) fail(message string) {
	m.transition(State{Status: Failed, Message: message})
}

// Mount loads the list for the first time.
func (m *Model) Mount(ctx context.Context) error {
	return m.Refresh(ctx)
}

// Refresh replaces the list with the server's. On failure the previous list
// is kept and the model moves to Failed.
func (m *Model) Refresh(ctx context.Context) error {
	m.transition(State{Status: Loading})

	movies, err := m.api.List(ctx)
	if err != nil {
		m.fail(MsgFetchFailed)
		return err
	}

	m.movies = movies
	m.transition(State{Status: Idle})
	return nil
}

// SetField updates one form input by its JSON field name.
func (m *Model) SetField(name, value string) bool {
	return m.form.Set(name, value)
}

// Edit loads movie into the form and makes it the edit target.
func (m *Model) Edit(movie data.Movie) {
	id := movie.ID
	m.form = FormFrom(movie)
	m.editing = &id
}

// Cancel clears the form and the edit target.
func (m *Model) Cancel() {
	m.form = Form{}
	m.editing = nil
}

// Submit saves the form: PUT to the edit target when one is set, POST
// otherwise. On success the form is cleared and the list re-fetched; on
// failure the form is kept.
func (m *Model) Submit(ctx context.Context) error {
	v := validator.New()
	if m.form.Validate(v); !v.Valid() {
		m.fail(validationMessage(v.Errors))
		return ErrInvalidForm
	}

	input := m.form.Input()

	var target int64
	if m.editing != nil {
		target = *m.editing
	}

	m.transition(State{Status: Submitting, Pending: &input, TargetID: target})

	var err error
	if m.editing != nil {
		err = m.api.Update(ctx, target, input)
	} else {
		_, err = m.api.Create(ctx, input)
	}
	if err != nil {
		m.fail(MsgSaveFailed)
		return err
	}

	m.Cancel()
	return m.Refresh(ctx)
}

// Delete removes the movie with the given id once the user confirms, then
// re-fetches the list. A declined confirmation does nothing.
func (m *Model) Delete(ctx context.Context, id int64) error {
	if !m.confirm.Confirm(DeletePrompt) {
		return nil
	}

	m.transition(State{Status: Submitting, TargetID: id})

	err := m.api.Delete(ctx, id)
	if err != nil {
		m.fail(MsgDeleteFailed)
		return err
	}

	return m.Refresh(ctx)
}
