package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

type operation struct {
	kind  string
	table string
	apply func(ctx context.Context, tx *sqlx.Tx) (int64, error)
	// reset undoes in-memory side effects of apply after a rollback.
	reset func()
}

type unitOfWork struct {
	db      *DB
	pending []operation

	clients      *clientRepository
	products     *productRepository
	orders       *orderRepository
	orderDetails *tableRepository[domain.OrderDetail]
}

// Store opens units of work over a shared connection pool.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) NewUnitOfWork() repository.UnitOfWork {
	return newUnitOfWork(s.db)
}

func newUnitOfWork(db *DB) *unitOfWork {
	u := &unitOfWork{db: db}
	u.clients = &clientRepository{newTableRepository(db, u, clientTable)}
	u.products = &productRepository{newTableRepository(db, u, productTable)}
	u.orders = &orderRepository{newTableRepository(db, u, orderTable)}
	u.orderDetails = newTableRepository(db, u, orderDetailTable)
	return u
}

func (u *unitOfWork) Clients() repository.ClientRepository {
	return u.clients
}

func (u *unitOfWork) Products() repository.ProductRepository {
	return u.products
}

func (u *unitOfWork) Orders() repository.OrderRepository {
	return u.orders
}

func (u *unitOfWork) OrderDetails() repository.Repository[domain.OrderDetail] {
	return u.orderDetails
}

func (u *unitOfWork) stage(op operation) {
	u.pending = append(u.pending, op)
}

// Complete applies staged changes in order inside one transaction. Any
// failure rolls the whole batch back. Pending changes are cleared either way.
func (u *unitOfWork) Complete(ctx context.Context) (int, error) {
	pending := u.pending
	u.pending = nil

	if len(pending) == 0 {
		return 0, nil
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var affected int64
	for i, op := range pending {
		n, err := op.apply(ctx, tx)
		if err != nil {
			_ = tx.Rollback()
			resetApplied(pending[:i+1])
			return 0, fmt.Errorf("failed to %s %s: %w", op.kind, op.table, err)
		}
		affected += n
	}

	if err := tx.Commit(); err != nil {
		resetApplied(pending)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(affected), nil
}

func resetApplied(ops []operation) {
	for _, op := range ops {
		if op.reset != nil {
			op.reset()
		}
	}
}
