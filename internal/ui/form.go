package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/validator"
)

// Form holds the raw text of the six editable fields, the way an input
// element would.
type Form struct {
	Title       string
	Director    string
	Genre       string
	ReleaseYear string
	Rating      string
	ImageURL    string
}

// FormFrom fills a form from a stored movie. NULL and zero numbers become
// empty inputs.
func FormFrom(m data.Movie) Form {
	var f Form

	if m.Title != nil {
		f.Title = *m.Title
	}
	if m.Director != nil {
		f.Director = *m.Director
	}
	if m.Genre != nil {
		f.Genre = *m.Genre
	}
	if m.ReleaseYear != nil && *m.ReleaseYear != 0 {
		f.ReleaseYear = strconv.Itoa(int(*m.ReleaseYear))
	}
	if m.Rating != nil && *m.Rating != 0 {
		f.Rating = strconv.FormatFloat(float64(*m.Rating), 'f', -1, 64)
	}
	if m.ImageURL != nil {
		f.ImageURL = *m.ImageURL
	}

	return f
}

// Set assigns the field with the given JSON name, reporting false for an
// unknown name.
func (f *Form) Set(name, value string) bool {
	switch name {
	case "title":
		f.Title = value
	case "director":
		f.Director = value
	case "genre":
		f.Genre = value
	case "release_year":
		f.ReleaseYear = value
	case "rating":
		f.Rating = value
	case "image_url":
		f.ImageURL = value
	default:
		return false
	}
	return true
}

// Validate checks that every required field is filled in and that the
// numeric fields parse.
func (f Form) Validate(v *validator.Validator) {
	v.Check(validator.NotBlank(f.Title), "title", "must be provided")
	v.Check(validator.NotBlank(f.Director), "director", "must be provided")
	v.Check(validator.NotBlank(f.Genre), "genre", "must be provided")

	v.Check(validator.NotBlank(f.ReleaseYear), "release_year", "must be provided")
	_, err := strconv.ParseInt(strings.TrimSpace(f.ReleaseYear), 10, 32)
	v.Check(err == nil, "release_year", "must be a whole number")

	v.Check(validator.NotBlank(f.Rating), "rating", "must be provided")
	_, err = data.ParseRating(f.Rating)
	v.Check(err == nil, "rating", "must be a number")
}

// Input converts a validated form into the request body. The image URL is
// sent even when empty.
func (f Form) Input() data.MovieInput {
	year, _ := strconv.ParseInt(strings.TrimSpace(f.ReleaseYear), 10, 32)
	r, _ := data.ParseRating(f.Rating)

	title, director, genre, imageURL := f.Title, f.Director, f.Genre, f.ImageURL
	y := data.Year(year)

	return data.MovieInput{
		Title:       &title,
		Director:    &director,
		Genre:       &genre,
		ReleaseYear: &y,
		Rating:      &r,
		ImageURL:    &imageURL,
	}
}

// validationMessage renders validator errors as "field: message" pairs
// sorted by field name.
func validationMessage(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}
