// Package client talks to the movies REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hafizmfadli/movie-catalog/internal/data"
	"github.com/tidwall/gjson"
)

// Error is returned for any non-2xx reply. Message holds the server's
// "error" field when the body carried one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("movies api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("movies api: %d: %s", e.StatusCode, e.Message)
}

// Client issues one request per call against a movies API base URL such as
// http://localhost:3001.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL. A nil httpClient gets a default with a
// 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List fetches every movie.
func (c *Client) List(ctx context.Context) ([]data.Movie, error) {
	var movies []data.Movie

	err := c.do(ctx, http.MethodGet, "/movies", nil, &movies)
	if err != nil {
		return nil, err
	}

	return movies, nil
}

// Create stores a new movie and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, input data.MovieInput) (data.CreatedMovie, error) {
	var created data.CreatedMovie

	err := c.do(ctx, http.MethodPost, "/movies", input, &created)
	if err != nil {
		return data.CreatedMovie{}, err
	}

	return created, nil
}

// Update overwrites the movie with the given id.
func (c *Client) Update(ctx context.Context, id int64, input data.MovieInput) error {
	return c.do(ctx, http.MethodPut, moviePath(id), input, nil)
}

// Delete removes the movie with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, moviePath(id), nil, nil)
}

func moviePath(id int64) string {
	return "/movies/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Error{
			StatusCode: res.StatusCode,
			Message:    gjson.GetBytes(payload, "error").String(),
		}
	}

	if dst == nil {
		return nil
	}

	return json.Unmarshal(payload, dst)
}
