package domain

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `db:"productid"`
	Name        string          `db:"name"`
	Description *string         `db:"description"` // nil when the product has no description
	Price       decimal.Decimal `db:"price"`
}

func NewProduct(name string, description *string, price decimal.Decimal) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
	}
}

// HasDescription reports whether the product carries a non-empty description.
func (p *Product) HasDescription() bool {
	return p.Description != nil && *p.Description != ""
}
