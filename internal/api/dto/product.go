package dto

import "github.com/shopspring/decimal"

// ProductRequest is the body of POST and PUT /api/Productos
type ProductRequest struct {
	ProductID   int              `json:"product_id"`
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
}

type ProductResponse struct {
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
}
