package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

var productTable = table[domain.Product]{
	name:    "products",
	key:     "productid",
	columns: []string{"name", "description", "price"},
	keyOf:   func(p *domain.Product) *int { return &p.ID },
	values: func(p *domain.Product) []interface{} {
		return []interface{}{p.Name, NullString(p.Description), p.Price}
	},
}

type productRepository struct {
	*tableRepository[domain.Product]
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []int) ([]*domain.Product, error) {
	products := []*domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`
		SELECT productid, name, description, price
		FROM products
		WHERE productid IN (?)
		ORDER BY productid
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *productRepository) FindMostExpensive(ctx context.Context) (*domain.Product, error) {
	query := `
		SELECT productid, name, description, price
		FROM products
		ORDER BY price DESC, productid ASC
		LIMIT 1
	`
	var product domain.Product
	err := r.db.GetContext(ctx, &product, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no products: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find most expensive product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	if err := r.db.GetContext(ctx, &avg, "SELECT AVG(price) FROM products"); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute average price: %w", err)
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal.Round(2), nil
}
