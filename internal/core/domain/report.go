package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientOrderCount pairs a client with the number of orders they placed.
type ClientOrderCount struct {
	Client      *Client
	TotalOrders int
}

type OrderSummary struct {
	OrderID    int       `db:"orderid"`
	OrderDate  time.Time `db:"orderdate"`
	TotalItems int       `db:"total_items"`
}

type ClientWithOrders struct {
	Client *Client
	Orders []*OrderSummary
}

// ClientTotals aggregates every order of a client. Clients without orders
// report zero for all totals.
type ClientTotals struct {
	ClientID      int             `db:"clientid"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	TotalOrders   int             `db:"total_orders"`
	TotalQuantity int             `db:"total_quantity"`
	TotalSpent    decimal.Decimal `db:"total_spent"`
}

// ClientSales is one row of the sales-by-client report.
type ClientSales struct {
	ClientID       int
	ClientName     string
	ClientEmail    string
	TotalOrders    int
	TotalQuantity  int
	TotalSales     decimal.Decimal
	AverageSale    decimal.Decimal
	FirstOrderDate *time.Time
	LastOrderDate  *time.Time
}

// OrderLine is one detail row of an order joined with its product.
type OrderLine struct {
	OrderDetailID      int
	ProductID          int
	ProductName        string
	ProductDescription string
	UnitPrice          decimal.Decimal
	Quantity           int
	Subtotal           decimal.Decimal
}

type OrderWithDetails struct {
	OrderID   int
	OrderDate time.Time
	Client    *Client
	Lines     []*OrderLine
	Total     decimal.Decimal
}

type OrderItem struct {
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
}

// OrderListing is an order with its client name and purchased items.
type OrderListing struct {
	OrderID    int
	OrderDate  time.Time
	ClientName string
	Items      []*OrderItem
}
