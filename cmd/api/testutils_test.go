package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/hafizmfadli/movie-catalog/internal/jsonlog"
	"github.com/stretchr/testify/require"
)

// memoryMovies is an in-memory MovieStore. Setting err makes every call fail
// with it, setting panicMsg makes every call panic.
type memoryMovies struct {
	mu       sync.Mutex
	nextID   int64
	rows     []*data.Movie
	err      error
	panicMsg string
}

func (m *memoryMovies) check() error {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return m.err
}

func (m *memoryMovies) GetAll(ctx context.Context) ([]*data.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return nil, err
	}

	movies := make([]*data.Movie, 0, len(m.rows))
	for _, row := range m.rows {
		cp := *row
		movies = append(movies, &cp)
	}
	return movies, nil
}

func (m *memoryMovies) Insert(ctx context.Context, input *data.MovieInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return 0, err
	}

	m.nextID++
	m.rows = append(m.rows, rowFrom(m.nextID, input))
	return m.nextID, nil
}

func (m *memoryMovies) Update(ctx context.Context, id int64, input *data.MovieInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return err
	}

	for i, row := range m.rows {
		if row.ID == id {
			m.rows[i] = rowFrom(id, input)
		}
	}
	return nil
}

func (m *memoryMovies) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return err
	}

	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func rowFrom(id int64, in *data.MovieInput) *data.Movie {
	return &data.Movie{
		ID:          id,
		Title:       in.Title,
		Director:    in.Director,
		Genre:       in.Genre,
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
		ImageURL:    in.ImageURL,
	}
}

func newTestApplication(t *testing.T, store data.MovieStore) *application {
	t.Helper()

	var cfg config
	cfg.env = "testing"

	return &application{
		config:  cfg,
		logger:  jsonlog.NewLogger(io.Discard, jsonlog.LevelOff),
		models:  data.Models{Movies: store},
		metrics: newMetrics(),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// do sends a request and returns the status code, headers and body.
func (ts *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (int, http.Header, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	b, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	return rs.StatusCode, rs.Header, string(b)
}
