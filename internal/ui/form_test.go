package ui

import (
	"testing"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFromHandlesNulls(t *testing.T) {
	title := "Heat"
	year := data.Year(0)

	f := FormFrom(data.Movie{ID: 1, Title: &title, ReleaseYear: &year})

	assert.Equal(t, Form{Title: "Heat"}, f)
}

func TestFormFromFormatsNumbers(t *testing.T) {
	year := data.Year(1995)
	rating := data.Rating(8.3)
	url := "https://example.com/heat.jpg"

	f := FormFrom(data.Movie{ReleaseYear: &year, Rating: &rating, ImageURL: &url})

	assert.Equal(t, "1995", f.ReleaseYear)
	assert.Equal(t, "8.3", f.Rating)
	assert.Equal(t, url, f.ImageURL)
}

func TestFormSet(t *testing.T) {
	var f Form

	for _, name := range []string{"title", "director", "genre", "release_year", "rating", "image_url"} {
		assert.True(t, f.Set(name, name+"-value"), name)
	}
	assert.False(t, f.Set("runtime", "120"))

	assert.Equal(t, Form{
		Title:       "title-value",
		Director:    "director-value",
		Genre:       "genre-value",
		ReleaseYear: "release_year-value",
		Rating:      "rating-value",
		ImageURL:    "image_url-value",
	}, f)
}

func TestFormValidate(t *testing.T) {
	valid := Form{Title: "A", Director: "B", Genre: "C", ReleaseYear: "2020", Rating: "7.5"}

	v := validator.New()
	valid.Validate(v)
	assert.True(t, v.Valid(), v.Errors)

	v = validator.New()
	Form{Title: "  ", Director: "B", Genre: "C", ReleaseYear: "20.5", Rating: "high"}.Validate(v)
	assert.Equal(t, map[string]string{
		"title":        "must be provided",
		"release_year": "must be a whole number",
		"rating":       "must be a number",
	}, v.Errors)
}

func TestFormValidateRejectsNonFiniteRating(t *testing.T) {
	for _, rating := range []string{"NaN", "Inf", "infinity"} {
		v := validator.New()
		Form{Title: "A", Director: "B", Genre: "C", ReleaseYear: "2020", Rating: rating}.Validate(v)
		assert.Equal(t, map[string]string{"rating": "must be a number"}, v.Errors, rating)
	}
}

func TestFormInput(t *testing.T) {
	in := Form{Title: "A", Director: "B", Genre: "C", ReleaseYear: " 2020 ", Rating: "7.5"}.Input()

	require.NotNil(t, in.ImageURL)
	assert.Equal(t, "A", *in.Title)
	assert.Equal(t, "B", *in.Director)
	assert.Equal(t, "C", *in.Genre)
	assert.Equal(t, data.Year(2020), *in.ReleaseYear)
	assert.Equal(t, data.Rating(7.5), *in.Rating)
	assert.Equal(t, "", *in.ImageURL)
}
