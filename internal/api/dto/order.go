package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of POST /api/Orders
type CreateOrderRequest struct {
	ClientID int                `json:"client_id" binding:"required,gt=0"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type OrderItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
}

// OrderResponse is an order with its client name and items
type OrderResponse struct {
	OrderID    int                 `json:"order_id"`
	OrderDate  time.Time           `json:"order_date"`
	ClientName string              `json:"client_name"`
	Items      []OrderItemResponse `json:"items"`
}

type OrderLineResponse struct {
	OrderDetailID      int             `json:"order_detail_id"`
	ProductID          int             `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	ProductPrice       decimal.Decimal `json:"product_price" swaggertype:"number"`
	Quantity           int             `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal" swaggertype:"number"`
}

// OrderWithDetailsResponse expands an order into priced lines
type OrderWithDetailsResponse struct {
	OrderID    int                 `json:"order_id"`
	OrderDate  time.Time           `json:"order_date"`
	Client     ClientResponse      `json:"client"`
	Details    []OrderLineResponse `json:"details"`
	OrderTotal decimal.Decimal     `json:"order_total" swaggertype:"number"`
}
