package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest is the body of POST and PUT /api/Clientes. ClientID is
// ignored on create and must match the path on update.
type ClientRequest struct {
	ClientID int    `json:"client_id"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type ClientResponse struct {
	ClientID int    `json:"client_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type ClientMostOrdersResponse struct {
	Client      ClientResponse `json:"client"`
	TotalOrders int            `json:"total_orders"`
}

type OrderSummaryResponse struct {
	OrderID    int       `json:"order_id"`
	OrderDate  time.Time `json:"order_date"`
	TotalItems int       `json:"total_items"`
}

type ClientWithOrdersResponse struct {
	ClientID int                    `json:"client_id"`
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Orders   []OrderSummaryResponse `json:"orders"`
}

type ClientTotalsResponse struct {
	ClientID               int             `json:"client_id"`
	Name                   string          `json:"name"`
	Email                  string          `json:"email"`
	TotalOrders            int             `json:"total_orders"`
	TotalProductsPurchased int             `json:"total_products_purchased"`
	TotalSpent             decimal.Decimal `json:"total_spent" swaggertype:"number"`
}

// ClientSalesResponse is one row of the sales-by-client and top-clients reports
type ClientSalesResponse struct {
	ClientID            int             `json:"client_id"`
	ClientName          string          `json:"client_name"`
	ClientEmail         string          `json:"client_email"`
	TotalOrders         int             `json:"total_orders"`
	TotalProducts       int             `json:"total_products"`
	TotalSales          decimal.Decimal `json:"total_sales" swaggertype:"number"`
	AverageSalePerOrder decimal.Decimal `json:"average_sale_per_order" swaggertype:"number"`
	FirstOrderDate      *time.Time      `json:"first_order_date,omitempty"`
	LastOrderDate       *time.Time      `json:"last_order_date,omitempty"`
}

// ClientListResponse represents a filtered page of clients
type ClientListResponse struct {
	Items      []ClientResponse `json:"items"`
	Pagination PaginationInfo   `json:"pagination"`
}
