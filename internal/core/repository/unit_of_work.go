package repository

import (
	"context"

	"github.com/storeldb/storeapi/internal/core/domain"
)

// UnitOfWork groups the repositories of one logical operation. Changes
// staged through any of them are written in a single transaction by
// Complete, which returns the number of affected rows. A unit of work is
// not safe for concurrent use.
type UnitOfWork interface {
	Clients() ClientRepository
	Products() ProductRepository
	Orders() OrderRepository
	OrderDetails() Repository[domain.OrderDetail]

	Complete(ctx context.Context) (int, error)
}

// Store hands out a fresh UnitOfWork per operation.
type Store interface {
	NewUnitOfWork() UnitOfWork
}
