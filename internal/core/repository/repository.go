package repository

import (
	"context"
	"errors"

	"github.com/storeldb/storeapi/internal/api/util"
)

var (
	// ErrNotFound is returned by reads that match no row.
	ErrNotFound = errors.New("record not found")

	// ErrNoRowsAffected is returned by Complete when a staged update or
	// removal matched no row.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// Repository is the data-access contract shared by every entity set.
// Reads hit the database directly; Add, Update and Remove only stage the
// change on the owning UnitOfWork until Complete is called.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	Find(ctx context.Context, filters ...util.QueryFilter) ([]*T, error)
	Exists(ctx context.Context, id int) (bool, error)

	// List and Count back the filterable list endpoints.
	List(ctx context.Context, filter util.ListFilter) ([]*T, error)
	Count(ctx context.Context, filters []util.QueryFilter) (int, error)

	Add(entity *T)
	Update(entity *T)
	Remove(entity *T)

	// Fields returns the column names accepted by Find, List and Count.
	Fields() []string
}
