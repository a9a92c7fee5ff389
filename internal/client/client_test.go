package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func ptr[T any](v T) *T {
	return &v
}

func TestList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/movies", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "title": "Heat", "director": "Michael Mann", "genre": "Crime", "release_year": 1995, "rating": 8.3, "image_url": null}]`))
	}))
	defer ts.Close()

	movies, err := New(ts.URL+"/", nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(1), movies[0].ID)
	assert.Equal(t, "Heat", *movies[0].Title)
	assert.Equal(t, data.Year(1995), *movies[0].ReleaseYear)
	assert.Nil(t, movies[0].ImageURL)
}

func TestCreateSendsJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "A", gjson.GetBytes(body, "title").String())
		assert.Equal(t, int64(2020), gjson.GetBytes(body, "release_year").Int())

		w.Write([]byte(`{"id": 9, "title": "A", "release_year": 2020}`))
	}))
	defer ts.Close()

	created, err := New(ts.URL, nil).Create(context.Background(), data.MovieInput{
		Title:       ptr("A"),
		ReleaseYear: ptr(data.Year(2020)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "A", *created.Title)
}

func TestUpdateAndDeletePaths(t *testing.T) {
	var calls []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, nil)
	require.NoError(t, c.Update(context.Background(), 4, data.MovieInput{Title: ptr("B")}))
	require.NoError(t, c.Delete(context.Background(), 4))

	assert.Equal(t, []string{"PUT /movies/4", "DELETE /movies/4"}, calls)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "pq: connection refused"}`))
	}))
	defer ts.Close()

	err := New(ts.URL, nil).Delete(context.Background(), 1)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "pq: connection refused", apiErr.Message)
	assert.Equal(t, "movies api: 500: pq: connection refused", err.Error())
}

func TestNonJSONErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).List(context.Background())
	assert.EqualError(t, err, "movies api: Bad Gateway")
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, nil).List(context.Background())
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}
