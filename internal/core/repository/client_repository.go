package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/core/domain"
)

// SalesFilter narrows the sales-by-client report. Nil fields are ignored.
type SalesFilter struct {
	From     *time.Time
	To       *time.Time
	MinTotal *decimal.Decimal
}

type ClientRepository interface {
	Repository[domain.Client]

	// FindWithMostOrders returns the client with the highest order count.
	// Ties go to the lowest client id. Returns ErrNotFound when no order exists.
	FindWithMostOrders(ctx context.Context) (*domain.ClientOrderCount, error)

	// FindProducts lists the distinct products a client has ordered.
	FindProducts(ctx context.Context, clientID int) ([]*domain.Product, error)

	FindWithOrders(ctx context.Context, clientID int) (*domain.ClientWithOrders, error)

	// FindByProduct lists the distinct clients that ordered a product.
	FindByProduct(ctx context.Context, productID int) ([]*domain.Client, error)

	ListTotals(ctx context.Context) ([]*domain.ClientTotals, error)

	// ListSales returns per-client sales sorted by total sales descending.
	ListSales(ctx context.Context, filter SalesFilter) ([]*domain.ClientSales, error)
}
