package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

var orderTable = table[domain.Order]{
	name:    "orders",
	key:     "orderid",
	columns: []string{"clientid", "orderdate"},
	keyOf:   func(o *domain.Order) *int { return &o.ID },
	values: func(o *domain.Order) []interface{} {
		return []interface{}{o.ClientID, o.OrderDate.UTC()}
	},
}

var orderDetailTable = table[domain.OrderDetail]{
	name:    "orderdetails",
	key:     "orderdetailid",
	columns: []string{"orderid", "productid", "quantity"},
	keyOf:   func(d *domain.OrderDetail) *int { return &d.ID },
	values: func(d *domain.OrderDetail) []interface{} {
		d.ResolveOrderID()
		return []interface{}{d.OrderID, d.ProductID, d.Quantity}
	},
}

type orderRepository struct {
	*tableRepository[domain.Order]
}

type orderHeaderRow struct {
	OrderID     int       `db:"orderid"`
	OrderDate   time.Time `db:"orderdate"`
	ClientID    int       `db:"clientid"`
	ClientName  string    `db:"name"`
	ClientEmail string    `db:"email"`
}

type orderLineRow struct {
	OrderDetailID      int             `db:"orderdetailid"`
	ProductID          int             `db:"productid"`
	ProductName        string          `db:"product_name"`
	ProductDescription sql.NullString  `db:"product_description"`
	ProductPrice       decimal.Decimal `db:"product_price"`
	Quantity           int             `db:"quantity"`
}

func (r *orderRepository) FindWithDetails(ctx context.Context, orderID int) (*domain.OrderWithDetails, error) {
	headerQuery := `
		SELECT o.orderid, o.orderdate, c.clientid, c.name, c.email
		FROM orders o
		JOIN clients c ON c.clientid = o.clientid
		WHERE o.orderid = ?
	`
	var header orderHeaderRow
	err := r.db.GetContext(ctx, &header, r.db.Rebind(headerQuery), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("orders %d: %w", orderID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	linesQuery := `
		SELECT od.orderdetailid, p.productid,
			p.name AS product_name,
			p.description AS product_description,
			p.price AS product_price,
			od.quantity
		FROM orderdetails od
		JOIN products p ON p.productid = od.productid
		WHERE od.orderid = ?
		ORDER BY od.orderdetailid
	`
	var rows []orderLineRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(linesQuery), orderID); err != nil {
		return nil, fmt.Errorf("failed to find order details: %w", err)
	}

	order := &domain.OrderWithDetails{
		OrderID:   header.OrderID,
		OrderDate: header.OrderDate,
		Client: &domain.Client{
			ID:    header.ClientID,
			Name:  header.ClientName,
			Email: header.ClientEmail,
		},
		Lines: make([]*domain.OrderLine, 0, len(rows)),
		Total: decimal.Zero,
	}

	for _, row := range rows {
		subtotal := row.ProductPrice.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2)
		order.Lines = append(order.Lines, &domain.OrderLine{
			OrderDetailID:      row.OrderDetailID,
			ProductID:          row.ProductID,
			ProductName:        row.ProductName,
			ProductDescription: row.ProductDescription.String,
			UnitPrice:          row.ProductPrice,
			Quantity:           row.Quantity,
			Subtotal:           subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	return order, nil
}

type orderItemRow struct {
	OrderID int `db:"orderid"`
	domain.OrderItem
}

func (r *orderRepository) ListWithItems(ctx context.Context, filter repository.OrderFilter) ([]*domain.OrderListing, error) {
	query := `
		SELECT o.orderid, o.orderdate, c.clientid, c.name, c.email
		FROM orders o
		JOIN clients c ON c.clientid = o.clientid
		WHERE 1=1
	`
	var args []interface{}
	if filter.From != nil {
		query += " AND o.orderdate >= ?"
		args = append(args, filter.From.UTC())
	}
	query += " ORDER BY o.orderid"

	var headers []orderHeaderRow
	if err := r.db.SelectContext(ctx, &headers, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	listings := make([]*domain.OrderListing, 0, len(headers))
	if len(headers) == 0 {
		return listings, nil
	}

	ids := make([]int, len(headers))
	byID := make(map[int]*domain.OrderListing, len(headers))
	for i, h := range headers {
		ids[i] = h.OrderID
		listing := &domain.OrderListing{
			OrderID:    h.OrderID,
			OrderDate:  h.OrderDate,
			ClientName: h.ClientName,
			Items:      []*domain.OrderItem{},
		}
		byID[h.OrderID] = listing
		listings = append(listings, listing)
	}

	itemsQuery, itemArgs, err := sqlx.In(`
		SELECT od.orderid, p.name AS product_name, od.quantity, p.price
		FROM orderdetails od
		JOIN products p ON p.productid = od.productid
		WHERE od.orderid IN (?)
		ORDER BY od.orderdetailid
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build order items query: %w", err)
	}

	var items []orderItemRow
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(itemsQuery), itemArgs...); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	for i := range items {
		item := items[i].OrderItem
		byID[items[i].OrderID].Items = append(byID[items[i].OrderID].Items, &item)
	}

	return listings, nil
}

func (r *orderRepository) FindItems(ctx context.Context, orderID int) ([]*domain.OrderItem, error) {
	query := `
		SELECT p.name AS product_name, od.quantity, p.price
		FROM orderdetails od
		JOIN products p ON p.productid = od.productid
		WHERE od.orderid = ?
		ORDER BY od.orderdetailid
	`
	items := []*domain.OrderItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), orderID); err != nil {
		return nil, fmt.Errorf("failed to find order items: %w", err)
	}
	return items, nil
}

func (r *orderRepository) TotalQuantity(ctx context.Context, orderID int) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM orderdetails WHERE orderid = ?`

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(query), orderID); err != nil {
		return 0, fmt.Errorf("failed to sum order quantity: %w", err)
	}
	return total, nil
}
