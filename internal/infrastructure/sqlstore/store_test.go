package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storeldb/storeapi/internal/core/domain"
)

// fixture is the data set shared by the repository tests:
//
//	Ana   orders #1 (2025-01-10: 2 x Keyboard) and #2 (2025-02-10: 1 x Mouse)
//	Bruno order  #3 (2025-01-15: 3 x Keyboard)
//	Carla no orders
type fixture struct {
	store *Store

	ana, bruno, carla *domain.Client
	keyboard, mouse   *domain.Product
	cable             *domain.Product
	orders            []*domain.Order
}

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), Options{
		Driver:      DriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func strPtr(s string) *string {
	return &s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{store: NewStore(openTestDB(t))}
	uow := f.store.NewUnitOfWork()

	f.ana = domain.NewClient("Ana Lopez", "ana@example.com")
	f.bruno = domain.NewClient("Bruno Diaz", "bruno@example.com")
	f.carla = domain.NewClient("Carla Ruiz", "carla@example.com")
	for _, c := range []*domain.Client{f.ana, f.bruno, f.carla} {
		uow.Clients().Add(c)
	}

	f.keyboard = domain.NewProduct("Keyboard", strPtr("Mechanical keyboard"), decimal.NewFromInt(10))
	f.mouse = domain.NewProduct("Mouse", nil, decimal.RequireFromString("5.50"))
	f.cable = domain.NewProduct("Cable", strPtr(""), decimal.RequireFromString("2.25"))
	for _, p := range []*domain.Product{f.keyboard, f.mouse, f.cable} {
		uow.Products().Add(p)
	}

	_, err := uow.Complete(ctx)
	require.NoError(t, err)

	f.addOrder(t, f.ana, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), map[*domain.Product]int{f.keyboard: 2})
	f.addOrder(t, f.ana, time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC), map[*domain.Product]int{f.mouse: 1})
	f.addOrder(t, f.bruno, time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), map[*domain.Product]int{f.keyboard: 3})

	return f
}

func (f *fixture) addOrder(t *testing.T, client *domain.Client, at time.Time, items map[*domain.Product]int) *domain.Order {
	t.Helper()

	uow := f.store.NewUnitOfWork()
	order := domain.NewOrder(client.ID, at)
	uow.Orders().Add(order)
	for product, qty := range items {
		uow.OrderDetails().Add(domain.NewOrderDetail(order, product.ID, qty))
	}

	_, err := uow.Complete(context.Background())
	require.NoError(t, err)

	f.orders = append(f.orders, order)
	return order
}
