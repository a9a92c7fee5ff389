package data

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Movie is a row of the movies table. Columns other than id may be NULL,
// which is reported as a JSON null.
type Movie struct {
	// Unique ID, assigned by the database
	ID          int64   `json:"id" db:"id"`
	Title       *string `json:"title" db:"title"`
	Director    *string `json:"director" db:"director"`
	Genre       *string `json:"genre" db:"genre"`
	ReleaseYear *Year   `json:"release_year" db:"release_year"`
	Rating      *Rating `json:"rating" db:"rating"`
	// Poster location, optional
	ImageURL *string `json:"image_url" db:"image_url"`
}

// MovieInput holds the writable fields of a movie as sent by a client.
// A field missing from the request body stays nil and is stored as NULL.
type MovieInput struct {
	Title       *string `json:"title,omitempty"`
	Director    *string `json:"director,omitempty"`
	Genre       *string `json:"genre,omitempty"`
	ReleaseYear *Year   `json:"release_year,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (in *MovieInput) args() []any {
	return []any{in.Title, in.Director, in.Genre, in.ReleaseYear, in.Rating, in.ImageURL}
}

// CreatedMovie is the reply to an insert: the submitted fields plus the
// generated id.
type CreatedMovie struct {
	ID int64 `json:"id"`
	MovieInput
}

// MovieModel wraps a connection pool and implements MovieStore against the
// movies table.
type MovieModel struct {
	DB *sqlx.DB
}

// GetAll returns every row in storage order. An empty table yields an empty,
// non-nil slice.
func (m MovieModel) GetAll(ctx context.Context) ([]*Movie, error) {
	query := `
		SELECT id, title, director, genre, release_year, rating, image_url
		FROM movies`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	movies := []*Movie{}
	err := m.DB.SelectContext(ctx, &movies, query)
	if err != nil {
		return nil, err
	}

	return movies, nil
}

// Insert adds a row built from input and returns the id the database
// assigned to it.
func (m MovieModel) Insert(ctx context.Context, input *MovieInput) (int64, error) {
	query := `
		INSERT INTO movies (title, director, genre, release_year, rating, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id int64
	err := m.DB.QueryRowxContext(ctx, query, input.args()...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update overwrites all six writable columns of the row with the given id.
// Matching zero rows is not an error.
func (m MovieModel) Update(ctx context.Context, id int64, input *MovieInput) error {
	query := `
		UPDATE movies
		SET title = $1, director = $2, genre = $3, release_year = $4, rating = $5, image_url = $6
		WHERE id = $7`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	args := append(input.args(), id)

	_, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

// Delete removes the row with the given id. Matching zero rows is not an
// error.
func (m MovieModel) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM movies
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
