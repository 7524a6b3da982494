package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/core/domain"
)

type ProductRepository interface {
	Repository[domain.Product]

	FindByIDs(ctx context.Context, ids []int) ([]*domain.Product, error)

	// FindMostExpensive returns ErrNotFound when there are no products.
	FindMostExpensive(ctx context.Context) (*domain.Product, error)

	// AveragePrice returns zero when there are no products.
	AveragePrice(ctx context.Context) (decimal.Decimal, error)
}
