package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/repository"
)

// table describes how an entity maps onto its table.
type table[T any] struct {
	name    string
	key     string
	columns []string // writable columns, key excluded

	// keyOf points at the entity's primary key so inserts can fill it in.
	keyOf func(*T) *int
	// values returns column values in the order of columns.
	values func(*T) []interface{}
}

func (t table[T]) fields() []string {
	return append([]string{t.key}, t.columns...)
}

func (t table[T]) selectList() string {
	return strings.Join(t.fields(), ", ")
}

// tableRepository implements repository.Repository for a single table.
// Reads go straight to the database; writes are staged on the unit of work.
type tableRepository[T any] struct {
	db  *DB
	uow *unitOfWork
	t   table[T]
}

func newTableRepository[T any](db *DB, uow *unitOfWork, t table[T]) *tableRepository[T] {
	return &tableRepository[T]{db: db, uow: uow, t: t}
}

func (r *tableRepository[T]) Fields() []string {
	return r.t.fields()
}

func (r *tableRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", r.t.selectList(), r.t.name, r.t.key)

	var entity T
	err := r.db.GetContext(ctx, &entity, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", r.t.name, id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.t.name, err)
	}
	return &entity, nil
}

func (r *tableRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.List(ctx, util.ListFilter{})
}

func (r *tableRepository[T]) Find(ctx context.Context, filters ...util.QueryFilter) ([]*T, error) {
	return r.List(ctx, util.ListFilter{Filters: filters})
}

func (r *tableRepository[T]) Exists(ctx context.Context, id int) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", r.t.name, r.t.key)

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), id); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.t.name, err)
	}
	return count > 0, nil
}

func (r *tableRepository[T]) List(ctx context.Context, filter util.ListFilter) ([]*T, error) {
	if err := util.ValidateFilterFields(filter.Filters, r.t.fields()); err != nil {
		return nil, err
	}
	if err := util.ValidateOrderFields(filter.Order, r.t.fields()); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1", r.t.selectList(), r.t.name)
	query, args := ApplyFilters(query, nil, filter.Filters, r.db.lowerFunc())
	query = ApplyOrdering(query, filter.Order, r.t.key)
	query, args = ApplyPagination(query, args, filter.Page, filter.PerPage)

	entities := []*T{}
	if err := r.db.SelectContext(ctx, &entities, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.t.name, err)
	}
	return entities, nil
}

func (r *tableRepository[T]) Count(ctx context.Context, filters []util.QueryFilter) (int, error) {
	if err := util.ValidateFilterFields(filters, r.t.fields()); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1", r.t.name)
	query, args := ApplyFilters(query, nil, filters, r.db.lowerFunc())

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.t.name, err)
	}
	return count, nil
}

func (r *tableRepository[T]) Add(entity *T) {
	r.uow.stage(operation{
		kind:  "insert",
		table: r.t.name,
		apply: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.t.columns)), ", ")
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
				r.t.name, strings.Join(r.t.columns, ", "), placeholders, r.t.key)

			if err := tx.QueryRowxContext(ctx, tx.Rebind(query), r.t.values(entity)...).Scan(r.t.keyOf(entity)); err != nil {
				return 0, err
			}
			return 1, nil
		},
		reset: func() {
			*r.t.keyOf(entity) = 0
		},
	})
}

func (r *tableRepository[T]) Update(entity *T) {
	r.uow.stage(operation{
		kind:  "update",
		table: r.t.name,
		apply: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			assignments := make([]string, len(r.t.columns))
			for i, col := range r.t.columns {
				assignments[i] = col + " = ?"
			}
			query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
				r.t.name, strings.Join(assignments, ", "), r.t.key)

			args := append(r.t.values(entity), *r.t.keyOf(entity))
			return execAffecting(ctx, tx, query, args...)
		},
	})
}

func (r *tableRepository[T]) Remove(entity *T) {
	r.uow.stage(operation{
		kind:  "delete",
		table: r.t.name,
		apply: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.t.name, r.t.key)
			return execAffecting(ctx, tx, query, *r.t.keyOf(entity))
		},
	})
}

// execAffecting runs a statement that must touch at least one row.
func execAffecting(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (int64, error) {
	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return 0, repository.ErrNoRowsAffected
	}
	return rows, nil
}
