package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

var clientTable = table[domain.Client]{
	name:    "clients",
	key:     "clientid",
	columns: []string{"name", "email"},
	keyOf:   func(c *domain.Client) *int { return &c.ID },
	values: func(c *domain.Client) []interface{} {
		return []interface{}{c.Name, c.Email}
	},
}

type clientRepository struct {
	*tableRepository[domain.Client]
}

func (r *clientRepository) FindWithMostOrders(ctx context.Context) (*domain.ClientOrderCount, error) {
	query := `
		SELECT clientid, COUNT(*) AS total_orders
		FROM orders
		GROUP BY clientid
		ORDER BY total_orders DESC, clientid ASC
		LIMIT 1
	`
	var top struct {
		ClientID    int `db:"clientid"`
		TotalOrders int `db:"total_orders"`
	}
	err := r.db.GetContext(ctx, &top, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no orders: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client with most orders: %w", err)
	}

	client, err := r.GetByID(ctx, top.ClientID)
	if err != nil {
		return nil, err
	}

	return &domain.ClientOrderCount{Client: client, TotalOrders: top.TotalOrders}, nil
}

func (r *clientRepository) FindProducts(ctx context.Context, clientID int) ([]*domain.Product, error) {
	query := `
		SELECT DISTINCT p.productid, p.name, p.description, p.price
		FROM orders o
		JOIN orderdetails od ON od.orderid = o.orderid
		JOIN products p ON p.productid = od.productid
		WHERE o.clientid = ?
		ORDER BY p.productid
	`
	products := []*domain.Product{}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), clientID); err != nil {
		return nil, fmt.Errorf("failed to find client products: %w", err)
	}
	return products, nil
}

func (r *clientRepository) FindWithOrders(ctx context.Context, clientID int) (*domain.ClientWithOrders, error) {
	client, err := r.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT o.orderid, o.orderdate, COUNT(od.orderdetailid) AS total_items
		FROM orders o
		LEFT JOIN orderdetails od ON od.orderid = o.orderid
		WHERE o.clientid = ?
		GROUP BY o.orderid, o.orderdate
		ORDER BY o.orderid
	`
	orders := []*domain.OrderSummary{}
	if err := r.db.SelectContext(ctx, &orders, r.db.Rebind(query), clientID); err != nil {
		return nil, fmt.Errorf("failed to find client orders: %w", err)
	}

	return &domain.ClientWithOrders{Client: client, Orders: orders}, nil
}

func (r *clientRepository) FindByProduct(ctx context.Context, productID int) ([]*domain.Client, error) {
	query := `
		SELECT DISTINCT c.clientid, c.name, c.email
		FROM orderdetails od
		JOIN orders o ON o.orderid = od.orderid
		JOIN clients c ON c.clientid = o.clientid
		WHERE od.productid = ?
		ORDER BY c.clientid
	`
	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, r.db.Rebind(query), productID); err != nil {
		return nil, fmt.Errorf("failed to find product clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) ListTotals(ctx context.Context) ([]*domain.ClientTotals, error) {
	query := `
		SELECT c.clientid, c.name, c.email,
			COUNT(DISTINCT o.orderid) AS total_orders,
			COALESCE(SUM(od.quantity), 0) AS total_quantity,
			COALESCE(SUM(od.quantity * p.price), 0) AS total_spent
		FROM clients c
		LEFT JOIN orders o ON o.clientid = c.clientid
		LEFT JOIN orderdetails od ON od.orderid = o.orderid
		LEFT JOIN products p ON p.productid = od.productid
		GROUP BY c.clientid, c.name, c.email
		ORDER BY c.clientid
	`
	totals := []*domain.ClientTotals{}
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to list client totals: %w", err)
	}
	for _, t := range totals {
		t.TotalSpent = t.TotalSpent.Round(2)
	}
	return totals, nil
}

type orderSalesRow struct {
	OrderID   int             `db:"orderid"`
	OrderDate time.Time       `db:"orderdate"`
	ClientID  int             `db:"clientid"`
	Name      string          `db:"name"`
	Email     string          `db:"email"`
	Quantity  int             `db:"quantity"`
	Total     decimal.Decimal `db:"total"`
}

// ListSales totals each order in SQL and folds the orders per client here,
// which keeps first/last order dates typed on every driver.
func (r *clientRepository) ListSales(ctx context.Context, filter repository.SalesFilter) ([]*domain.ClientSales, error) {
	query := `
		SELECT o.orderid, o.orderdate, c.clientid, c.name, c.email,
			COALESCE(SUM(od.quantity), 0) AS quantity,
			COALESCE(SUM(od.quantity * p.price), 0) AS total
		FROM orders o
		JOIN clients c ON c.clientid = o.clientid
		LEFT JOIN orderdetails od ON od.orderid = o.orderid
		LEFT JOIN products p ON p.productid = od.productid
		WHERE 1=1
	`
	var args []interface{}
	if filter.From != nil {
		query += " AND o.orderdate >= ?"
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += " AND o.orderdate <= ?"
		args = append(args, filter.To.UTC())
	}
	query += " GROUP BY o.orderid, o.orderdate, c.clientid, c.name, c.email ORDER BY o.orderid"

	var rows []orderSalesRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	byClient := make(map[int]*domain.ClientSales)
	for i := range rows {
		row := rows[i]
		sales, ok := byClient[row.ClientID]
		if !ok {
			sales = &domain.ClientSales{
				ClientID:    row.ClientID,
				ClientName:  row.Name,
				ClientEmail: row.Email,
			}
			byClient[row.ClientID] = sales
		}

		sales.TotalOrders++
		sales.TotalQuantity += row.Quantity
		sales.TotalSales = sales.TotalSales.Add(row.Total)

		date := row.OrderDate
		if sales.FirstOrderDate == nil || date.Before(*sales.FirstOrderDate) {
			sales.FirstOrderDate = &date
		}
		if sales.LastOrderDate == nil || date.After(*sales.LastOrderDate) {
			sales.LastOrderDate = &date
		}
	}

	result := make([]*domain.ClientSales, 0, len(byClient))
	for _, sales := range byClient {
		sales.TotalSales = sales.TotalSales.Round(2)
		sales.AverageSale = sales.TotalSales.Div(decimal.NewFromInt(int64(sales.TotalOrders))).Round(2)

		if filter.MinTotal != nil && sales.TotalSales.LessThan(*filter.MinTotal) {
			continue
		}
		result = append(result, sales)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalSales.Equal(result[j].TotalSales) {
			return result[i].TotalSales.GreaterThan(result[j].TotalSales)
		}
		return result[i].ClientID < result[j].ClientID
	})

	return result, nil
}
