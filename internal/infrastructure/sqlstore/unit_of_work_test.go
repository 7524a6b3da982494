package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

func TestUnitOfWork_CompleteWithoutChanges(t *testing.T) {
	uow := NewStore(openTestDB(t)).NewUnitOfWork()

	n, err := uow.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUnitOfWork_AddAssignsKeys(t *testing.T) {
	ctx := context.Background()
	uow := NewStore(openTestDB(t)).NewUnitOfWork()

	client := domain.NewClient("Ana", "ana@example.com")
	product := domain.NewProduct("Pen", nil, decimal.RequireFromString("1.20"))
	uow.Clients().Add(client)
	uow.Products().Add(product)

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Greater(t, client.ID, 0)
	assert.Greater(t, product.ID, 0)

	stored, err := uow.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", stored.Name)
	assert.Nil(t, stored.Description)
	assert.Equal(t, "1.2", stored.Price.String())
}

func TestUnitOfWork_DetailsPickUpGeneratedOrderKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	uow := f.store.NewUnitOfWork()
	order := domain.NewOrder(f.carla.ID, f.orders[0].OrderDate)
	uow.Orders().Add(order)
	uow.OrderDetails().Add(domain.NewOrderDetail(order, f.keyboard.ID, 1))
	uow.OrderDetails().Add(domain.NewOrderDetail(order, f.mouse.ID, 4))

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	total, err := uow.Orders().TotalQuantity(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestUnitOfWork_FailureRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	uow := f.store.NewUnitOfWork()
	client := domain.NewClient("Dario", "dario@example.com")
	uow.Clients().Add(client)
	order := domain.NewOrder(f.ana.ID, f.orders[0].OrderDate)
	uow.Orders().Add(order)
	uow.OrderDetails().Add(domain.NewOrderDetail(order, 9999, 1))

	_, err := uow.Complete(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, client.ID)
	assert.Equal(t, 0, order.ID)

	clients, err := uow.Clients().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	orders, err := uow.Orders().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestUnitOfWork_UpdateOfMissingRowFails(t *testing.T) {
	uow := NewStore(openTestDB(t)).NewUnitOfWork()
	uow.Clients().Update(&domain.Client{ID: 42, Name: "Ghost", Email: "ghost@example.com"})

	_, err := uow.Complete(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNoRowsAffected))
}

func TestUnitOfWork_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	uow := f.store.NewUnitOfWork()
	f.carla.Email = "carla.ruiz@example.com"
	uow.Clients().Update(f.carla)
	uow.Products().Remove(f.cable)

	n, err := uow.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	carla, err := uow.Clients().GetByID(ctx, f.carla.ID)
	require.NoError(t, err)
	assert.Equal(t, "carla.ruiz@example.com", carla.Email)

	_, err = uow.Products().GetByID(ctx, f.cable.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func newMockUnitOfWork(t *testing.T) (*unitOfWork, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return newUnitOfWork(&DB{sqlx.NewDb(mockDB, "sqlmock")}), mock
}

func TestUnitOfWork_CommitsInOneTransaction(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients (name, email) VALUES (?, ?) RETURNING clientid")).
		WithArgs("Ana", "ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"clientid"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE orderid = ?")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	client := domain.NewClient("Ana", "ana@example.com")
	uow.Clients().Add(client)
	uow.Orders().Remove(&domain.Order{ID: 3})

	n, err := uow.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 7, client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RollsBackOnStatementError(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WillReturnRows(sqlmock.NewRows([]string{"clientid"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET name = ?, description = ?, price = ? WHERE productid = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	client := domain.NewClient("Ana", "ana@example.com")
	uow.Clients().Add(client)
	uow.Products().Update(&domain.Product{ID: 5, Name: "Pen", Price: decimal.NewFromInt(1)})

	_, err := uow.Complete(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNoRowsAffected))
	assert.Equal(t, 0, client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_BeginFailure(t *testing.T) {
	uow, mock := newMockUnitOfWork(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	uow.Clients().Add(domain.NewClient("Ana", "ana@example.com"))

	_, err := uow.Complete(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}
