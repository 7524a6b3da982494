package service

import (
	"context"
	"fmt"

	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

type ClientService struct {
	store repository.Store
}

func NewClientService(store repository.Store) *ClientService {
	return &ClientService{store: store}
}

// ClientFields lists the columns accepted by list filters and ordering.
func (s *ClientService) ClientFields() []string {
	return s.store.NewUnitOfWork().Clients().Fields()
}

// ListClients returns one page of clients and the total number of matches.
func (s *ClientService) ListClients(ctx context.Context, filter util.ListFilter) ([]*domain.Client, int, error) {
	clients := s.store.NewUnitOfWork().Clients()

	items, err := clients.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := clients.Count(ctx, filter.Filters)
	if err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int) (*domain.Client, error) {
	client, err := s.store.NewUnitOfWork().Clients().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Client with ID %d not found.", id)
	}
	return client, nil
}

func (s *ClientService) CreateClient(ctx context.Context, client *domain.Client) error {
	uow := s.store.NewUnitOfWork()
	uow.Clients().Add(client)

	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// UpdateClient replaces the client stored under id. The payload id must
// match the path id.
func (s *ClientService) UpdateClient(ctx context.Context, id int, client *domain.Client) error {
	if client.ID != id {
		return badRequest("Client ID mismatch: path %d, body %d.", id, client.ID)
	}

	uow := s.store.NewUnitOfWork()
	uow.Clients().Update(client)

	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int) error {
	uow := s.store.NewUnitOfWork()

	client, err := uow.Clients().GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Client with ID %d not found.", id)
	}

	uow.Clients().Remove(client)
	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// SearchByName matches clients whose name starts with term, ignoring case.
func (s *ClientService) SearchByName(ctx context.Context, term string) ([]*domain.Client, error) {
	clients, err := s.store.NewUnitOfWork().Clients().Find(ctx, util.QueryFilter{
		Field:    "name",
		Operator: util.OpIStartsWith,
		Value:    term,
	})
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, notFound("No clients found whose name starts with '%s'.", term)
	}
	return clients, nil
}

func (s *ClientService) ClientWithMostOrders(ctx context.Context) (*domain.ClientOrderCount, error) {
	top, err := s.store.NewUnitOfWork().Clients().FindWithMostOrders(ctx)
	if err != nil {
		return nil, notFoundOr(err, "No orders found for any client.")
	}
	return top, nil
}

func (s *ClientService) ClientProducts(ctx context.Context, clientID int) ([]*domain.Product, error) {
	clients := s.store.NewUnitOfWork().Clients()

	exists, err := clients.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Client with ID %d not found.", clientID)
	}

	return clients.FindProducts(ctx, clientID)
}

func (s *ClientService) ClientWithOrders(ctx context.Context, clientID int) (*domain.ClientWithOrders, error) {
	result, err := s.store.NewUnitOfWork().Clients().FindWithOrders(ctx, clientID)
	if err != nil {
		return nil, notFoundOr(err, "Client with ID %d not found.", clientID)
	}
	return result, nil
}

func (s *ClientService) ClientTotals(ctx context.Context) ([]*domain.ClientTotals, error) {
	totals, err := s.store.NewUnitOfWork().Clients().ListTotals(ctx)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, notFound("No clients found.")
	}
	return totals, nil
}

// SalesReport returns the sales-by-client rows, possibly none.
func (s *ClientService) SalesReport(ctx context.Context, filter repository.SalesFilter) ([]*domain.ClientSales, error) {
	return s.store.NewUnitOfWork().Clients().ListSales(ctx, filter)
}

// SalesByClient is SalesReport with an empty result reported as not found.
func (s *ClientService) SalesByClient(ctx context.Context, filter repository.SalesFilter) ([]*domain.ClientSales, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, badRequest("Start date must not be after end date.")
	}

	sales, err := s.SalesReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, notFound("No sales found for the given filters.")
	}
	return sales, nil
}

// TopClients returns the n best clients by total sales. Asking for more
// clients than exist returns all of them.
func (s *ClientService) TopClients(ctx context.Context, n int) ([]*domain.ClientSales, error) {
	if n <= 0 {
		return nil, badRequest("The number of clients must be greater than zero.")
	}

	sales, err := s.SalesReport(ctx, repository.SalesFilter{})
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, notFound("No sales found.")
	}
	if n < len(sales) {
		sales = sales[:n]
	}
	return sales, nil
}
