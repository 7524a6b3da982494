package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

func clientNames(clients []*domain.Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names
}

func TestTableRepository_FindIStartsWith(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uow := f.store.NewUnitOfWork()
	uow.Clients().Add(domain.NewClient("ANAbel Soto", "anabel@example.com"))
	uow.Clients().Add(domain.NewClient("Juana Paz", "juana@example.com"))
	_, err := uow.Complete(ctx)
	require.NoError(t, err)

	tests := []struct {
		term     string
		expected []string
	}{
		{"ana", []string{"Ana Lopez", "ANAbel Soto"}},
		{"ANA L", []string{"Ana Lopez"}},
		{"juana", []string{"Juana Paz"}},
		{"zzz", []string{}},
		{"%", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			clients, err := uow.Clients().Find(ctx, util.QueryFilter{
				Field:    "name",
				Operator: util.OpIStartsWith,
				Value:    tt.term,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, clientNames(clients))
		})
	}
}

func TestTableRepository_FindIStartsWithAccents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uow := f.store.NewUnitOfWork()
	uow.Clients().Add(domain.NewClient("Álvaro Núñez", "alvaro@example.com"))
	uow.Clients().Add(domain.NewClient("Ñuño Ortega", "nuno@example.com"))
	_, err := uow.Complete(ctx)
	require.NoError(t, err)

	tests := []struct {
		term     string
		expected []string
	}{
		{"álvaro", []string{"Álvaro Núñez"}},
		{"Álvaro", []string{"Álvaro Núñez"}},
		{"ÁLVARO NÚ", []string{"Álvaro Núñez"}},
		{"ñuño", []string{"Ñuño Ortega"}},
		{"alvaro", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			clients, err := uow.Clients().Find(ctx, util.QueryFilter{
				Field:    "name",
				Operator: util.OpIStartsWith,
				Value:    tt.term,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, clientNames(clients))
		})
	}
}

func TestBuildFilterClause_IStartsWithUsesDialectLower(t *testing.T) {
	f := util.QueryFilter{Field: "name", Operator: util.OpIStartsWith, Value: "Ál_"}

	clause, args := BuildFilterClause(f, sqliteLower)
	assert.Equal(t, `ulower(name) LIKE ? ESCAPE '\'`, clause)
	assert.Equal(t, []interface{}{`ál\_%`}, args)

	clause, _ = BuildFilterClause(f, "LOWER")
	assert.Equal(t, `LOWER(name) LIKE ? ESCAPE '\'`, clause)
}

func TestTableRepository_FindIsBlank(t *testing.T) {
	f := newFixture(t)

	products, err := f.store.NewUnitOfWork().Products().Find(context.Background(), util.QueryFilter{
		Field:    "description",
		Operator: util.OpIsBlank,
	})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Mouse", products[0].Name)
	assert.Equal(t, "Cable", products[1].Name)
}

func TestTableRepository_FindRejectsUnknownField(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.NewUnitOfWork().Clients().Find(context.Background(), util.QueryFilter{
		Field:    "name; DROP TABLE clients",
		Operator: util.OpEq,
		Value:    "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query field")
}

func TestTableRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clients := f.store.NewUnitOfWork().Clients()

	page, err := clients.List(ctx, util.ListFilter{
		Order:   []util.OrderClause{{Field: "name", Direction: util.OrderDesc}},
		Page:    1,
		PerPage: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carla Ruiz", "Bruno Diaz"}, clientNames(page))

	count, err := clients.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTableRepository_GetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.NewUnitOfWork().Clients().GetByID(context.Background(), 404)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestTableRepository_FindOrdersByDate(t *testing.T) {
	f := newFixture(t)

	orders, err := f.store.NewUnitOfWork().Orders().Find(context.Background(), util.QueryFilter{
		Field:    "orderdate",
		Operator: util.OpGte,
		Value:    "2025-01-15",
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, f.orders[1].ID, orders[0].ID)
	assert.Equal(t, f.orders[2].ID, orders[1].ID)
}

func TestClientRepository_FindWithMostOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	top, err := f.store.NewUnitOfWork().Clients().FindWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.ana.ID, top.Client.ID)
	assert.Equal(t, 2, top.TotalOrders)

	// A tie goes to the lowest client id.
	f.addOrder(t, f.bruno, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), map[*domain.Product]int{f.mouse: 1})
	top, err = f.store.NewUnitOfWork().Clients().FindWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.ana.ID, top.Client.ID)
}

func TestClientRepository_FindWithMostOrdersEmpty(t *testing.T) {
	_, err := NewStore(openTestDB(t)).NewUnitOfWork().Clients().FindWithMostOrders(context.Background())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestClientRepository_FindProducts(t *testing.T) {
	f := newFixture(t)
	clients := f.store.NewUnitOfWork().Clients()

	products, err := clients.FindProducts(context.Background(), f.ana.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Keyboard", products[0].Name)
	assert.Equal(t, "Mouse", products[1].Name)

	products, err = clients.FindProducts(context.Background(), f.carla.ID)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClientRepository_FindWithOrders(t *testing.T) {
	f := newFixture(t)

	result, err := f.store.NewUnitOfWork().Clients().FindWithOrders(context.Background(), f.ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", result.Client.Name)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, f.orders[0].ID, result.Orders[0].OrderID)
	assert.Equal(t, 1, result.Orders[0].TotalItems)
	assert.True(t, f.orders[0].OrderDate.Equal(result.Orders[0].OrderDate))
}

func TestClientRepository_FindByProduct(t *testing.T) {
	f := newFixture(t)

	clients, err := f.store.NewUnitOfWork().Clients().FindByProduct(context.Background(), f.keyboard.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Lopez", "Bruno Diaz"}, clientNames(clients))
}

func TestClientRepository_ListTotals(t *testing.T) {
	f := newFixture(t)

	totals, err := f.store.NewUnitOfWork().Clients().ListTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, 2, totals[0].TotalOrders)
	assert.Equal(t, 3, totals[0].TotalQuantity)
	assert.Equal(t, "25.5", totals[0].TotalSpent.String())

	assert.Equal(t, 1, totals[1].TotalOrders)
	assert.Equal(t, "30", totals[1].TotalSpent.String())

	assert.Equal(t, "Carla Ruiz", totals[2].Name)
	assert.Equal(t, 0, totals[2].TotalOrders)
	assert.Equal(t, 0, totals[2].TotalQuantity)
	assert.True(t, totals[2].TotalSpent.IsZero())
}

func TestClientRepository_ListSales(t *testing.T) {
	f := newFixture(t)
	clients := f.store.NewUnitOfWork().Clients()
	ctx := context.Background()

	t.Run("no filter sorts by total descending", func(t *testing.T) {
		sales, err := clients.ListSales(ctx, repository.SalesFilter{})
		require.NoError(t, err)
		require.Len(t, sales, 2)

		assert.Equal(t, "Bruno Diaz", sales[0].ClientName)
		assert.Equal(t, "30", sales[0].TotalSales.String())

		ana := sales[1]
		assert.Equal(t, 2, ana.TotalOrders)
		assert.Equal(t, 3, ana.TotalQuantity)
		assert.Equal(t, "25.5", ana.TotalSales.String())
		assert.Equal(t, "12.75", ana.AverageSale.String())
		assert.True(t, f.orders[0].OrderDate.Equal(*ana.FirstOrderDate))
		assert.True(t, f.orders[1].OrderDate.Equal(*ana.LastOrderDate))
	})

	t.Run("minimum total", func(t *testing.T) {
		min := decimal.NewFromInt(26)
		sales, err := clients.ListSales(ctx, repository.SalesFilter{MinTotal: &min})
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, f.bruno.ID, sales[0].ClientID)
	})

	t.Run("date range", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		sales, err := clients.ListSales(ctx, repository.SalesFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, f.ana.ID, sales[0].ClientID)
		assert.Equal(t, "5.5", sales[0].TotalSales.String())
	})

	t.Run("ties break on client id", func(t *testing.T) {
		f.addOrder(t, f.carla, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), map[*domain.Product]int{f.keyboard: 3})
		sales, err := clients.ListSales(ctx, repository.SalesFilter{})
		require.NoError(t, err)
		require.Len(t, sales, 3)
		assert.Equal(t, f.bruno.ID, sales[0].ClientID)
		assert.Equal(t, f.carla.ID, sales[1].ClientID)
	})
}

func TestProductRepository_AveragePrice(t *testing.T) {
	ctx := context.Background()

	avg, err := NewStore(openTestDB(t)).NewUnitOfWork().Products().AveragePrice(ctx)
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	f := newFixture(t)
	avg, err = f.store.NewUnitOfWork().Products().AveragePrice(ctx)
	require.NoError(t, err)
	// (10 + 5.50 + 2.25) / 3
	assert.Equal(t, "5.92", avg.String())
}

func TestProductRepository_FindMostExpensive(t *testing.T) {
	f := newFixture(t)

	product, err := f.store.NewUnitOfWork().Products().FindMostExpensive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.keyboard.ID, product.ID)

	_, err = NewStore(openTestDB(t)).NewUnitOfWork().Products().FindMostExpensive(context.Background())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestProductRepository_FindByIDs(t *testing.T) {
	f := newFixture(t)

	products, err := f.store.NewUnitOfWork().Products().FindByIDs(context.Background(), []int{f.mouse.ID, f.cable.ID, 9999})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, f.mouse.ID, products[0].ID)
	assert.Equal(t, f.cable.ID, products[1].ID)
}

func TestOrderRepository_FindWithDetails(t *testing.T) {
	f := newFixture(t)
	order := f.addOrder(t, f.carla, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC), map[*domain.Product]int{
		f.mouse: 2,
	})

	result, err := f.store.NewUnitOfWork().Orders().FindWithDetails(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla Ruiz", result.Client.Name)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "Mouse", result.Lines[0].ProductName)
	assert.Equal(t, "", result.Lines[0].ProductDescription)
	assert.Equal(t, "11", result.Lines[0].Subtotal.String())
	assert.Equal(t, "11", result.Total.String())

	_, err = f.store.NewUnitOfWork().Orders().FindWithDetails(context.Background(), 9999)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestOrderRepository_ListWithItems(t *testing.T) {
	f := newFixture(t)
	orders := f.store.NewUnitOfWork().Orders()

	all, err := orders.ListWithItems(context.Background(), repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana Lopez", all[0].ClientName)
	require.Len(t, all[0].Items, 1)
	assert.Equal(t, "Keyboard", all[0].Items[0].ProductName)
	assert.Equal(t, 2, all[0].Items[0].Quantity)

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	recent, err := orders.ListWithItems(context.Background(), repository.OrderFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, f.orders[1].ID, recent[0].OrderID)
}

func TestOrderRepository_FindItemsAndTotalQuantity(t *testing.T) {
	f := newFixture(t)
	orders := f.store.NewUnitOfWork().Orders()

	items, err := orders.FindItems(context.Background(), f.orders[2].ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "10", items[0].Price.String())

	total, err := orders.TotalQuantity(context.Background(), f.orders[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	total, err = orders.TotalQuantity(context.Background(), 9999)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
