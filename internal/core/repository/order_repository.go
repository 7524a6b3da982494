package repository

import (
	"context"
	"time"

	"github.com/storeldb/storeapi/internal/core/domain"
)

type OrderFilter struct {
	// From keeps orders dated at or after this instant.
	From *time.Time
}

type OrderRepository interface {
	Repository[domain.Order]

	FindWithDetails(ctx context.Context, orderID int) (*domain.OrderWithDetails, error)
	ListWithItems(ctx context.Context, filter OrderFilter) ([]*domain.OrderListing, error)
	FindItems(ctx context.Context, orderID int) ([]*domain.OrderItem, error)
	TotalQuantity(ctx context.Context, orderID int) (int, error)
}
