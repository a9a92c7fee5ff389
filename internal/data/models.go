package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// queryTimeout bounds every statement issued by the models.
const queryTimeout = 3 * time.Second

// MovieStore is the storage capability the HTTP handlers depend on.
//
// Update and Delete report success even when no row matches id.
type MovieStore interface {
	GetAll(ctx context.Context) ([]*Movie, error)
	Insert(ctx context.Context, input *MovieInput) (int64, error)
	Update(ctx context.Context, id int64, input *MovieInput) error
	Delete(ctx context.Context, id int64) error
}

// Models is 'container' which can hold and respresent all your database models
type Models struct {
	Movies MovieStore
}

// NewModels return a Models struct backed by the given connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Movies: MovieModel{DB: sqlx.NewDb(db, "postgres")},
	}
}
