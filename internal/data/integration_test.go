package data

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIntegrationModels migrates the database at MOVIES_TEST_DSN and returns
// models backed by it with an empty movies table.
func newIntegrationModels(t *testing.T) Models {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dsn := os.Getenv("MOVIES_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping: MOVIES_TEST_DSN not set")
	}

	require.NoError(t, Migrate(dsn))

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("TRUNCATE movies RESTART IDENTITY")
	require.NoError(t, err)

	return NewModels(db)
}

func TestIntegrationRoundTrip(t *testing.T) {
	models := newIntegrationModels(t)
	ctx := context.Background()

	id, err := models.Movies.Insert(ctx, &MovieInput{
		Title:       ptr("A"),
		Director:    ptr("B"),
		Genre:       ptr("C"),
		ReleaseYear: ptr(Year(2020)),
		Rating:      ptr(Rating(7.5)),
	})
	require.NoError(t, err)

	movies, err := models.Movies.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, id, movies[0].ID)
	assert.Equal(t, "A", *movies[0].Title)
	assert.Equal(t, Year(2020), *movies[0].ReleaseYear)
	assert.Equal(t, Rating(7.5), *movies[0].Rating)
	assert.Nil(t, movies[0].ImageURL)

	require.NoError(t, models.Movies.Update(ctx, id, &MovieInput{Title: ptr("A2")}))
	require.NoError(t, models.Movies.Update(ctx, id+100, &MovieInput{Title: ptr("ghost")}))

	movies, err = models.Movies.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "A2", *movies[0].Title)
	assert.Nil(t, movies[0].Director)

	require.NoError(t, models.Movies.Delete(ctx, id+100))
	require.NoError(t, models.Movies.Delete(ctx, id))

	movies, err = models.Movies.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestIntegrationRatingKeepsPrecision(t *testing.T) {
	models := newIntegrationModels(t)
	ctx := context.Background()

	for _, rating := range []Rating{8.25, 100, 0.125} {
		_, err := models.Movies.Insert(ctx, &MovieInput{Title: ptr("precise"), Rating: ptr(rating)})
		require.NoError(t, err)
	}

	movies, err := models.Movies.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 3)

	got := make([]Rating, 0, len(movies))
	for _, m := range movies {
		got = append(got, *m.Rating)
	}
	assert.ElementsMatch(t, []Rating{8.25, 100, 0.125}, got)
}

func TestIntegrationConcurrentInserts(t *testing.T) {
	models := newIntegrationModels(t)

	const n = 10

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]bool)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := models.Movies.Insert(context.Background(), &MovieInput{Title: ptr("concurrent")})
			assert.NoError(t, err)

			mu.Lock()
			ids[id] = true
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Len(t, ids, n)
}
