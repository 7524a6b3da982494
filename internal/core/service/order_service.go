package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID int
	Quantity  int
}

type OrderService struct {
	store repository.Store
	now   func() time.Time
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.OrderListing, error) {
	return s.store.NewUnitOfWork().Orders().ListWithItems(ctx, repository.OrderFilter{})
}

// CreateOrder validates the request and writes the order and all of its
// details in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, clientID int, items []OrderItemInput) (*domain.OrderListing, error) {
	if len(items) == 0 {
		return nil, badRequest("The order must contain at least one item.")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, badRequest("Quantity for product %d must be greater than zero.", item.ProductID)
		}
	}

	uow := s.store.NewUnitOfWork()

	client, err := uow.Clients().GetByID(ctx, clientID)
	if err != nil {
		return nil, notFoundAs(err, badRequest("Client with ID %d does not exist.", clientID))
	}

	ids := distinctProductIDs(items)
	products, err := uow.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, badRequest("One or more products do not exist.")
	}
	byID := make(map[int]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := domain.NewOrder(clientID, s.now())
	uow.Orders().Add(order)
	for _, item := range items {
		detail := domain.NewOrderDetail(order, item.ProductID, item.Quantity)
		if err := detail.Validate(); err != nil {
			return nil, badRequest("%s", err.Error())
		}
		uow.OrderDetails().Add(detail)
	}

	if _, err := uow.Complete(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	listing := &domain.OrderListing{
		OrderID:    order.ID,
		OrderDate:  order.OrderDate,
		ClientName: client.Name,
		Items:      make([]*domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		p := byID[item.ProductID]
		listing.Items = append(listing.Items, &domain.OrderItem{
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       p.Price,
		})
	}
	return listing, nil
}

func distinctProductIDs(items []OrderItemInput) []int {
	seen := make(map[int]bool, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func (s *OrderService) OrderWithDetails(ctx context.Context, orderID int) (*domain.OrderWithDetails, error) {
	order, err := s.store.NewUnitOfWork().Orders().FindWithDetails(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "Order with ID %d not found.", orderID)
	}
	return order, nil
}

func (s *OrderService) OrderItems(ctx context.Context, orderID int) ([]*domain.OrderItem, error) {
	orders := s.store.NewUnitOfWork().Orders()

	if err := s.requireOrder(ctx, orders, orderID); err != nil {
		return nil, err
	}
	return orders.FindItems(ctx, orderID)
}

func (s *OrderService) TotalQuantity(ctx context.Context, orderID int) (int, error) {
	orders := s.store.NewUnitOfWork().Orders()

	if err := s.requireOrder(ctx, orders, orderID); err != nil {
		return 0, err
	}
	return orders.TotalQuantity(ctx, orderID)
}

// OrdersAfter returns orders placed on a later calendar day than date.
func (s *OrderService) OrdersAfter(ctx context.Context, date time.Time) ([]*domain.OrderListing, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	from := day.AddDate(0, 0, 1)

	orders, err := s.store.NewUnitOfWork().Orders().ListWithItems(ctx, repository.OrderFilter{From: &from})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFound("No orders found after %s.", day.Format("2006-01-02"))
	}
	return orders, nil
}

func (s *OrderService) requireOrder(ctx context.Context, orders repository.OrderRepository, orderID int) error {
	exists, err := orders.Exists(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("Order with ID %d not found.", orderID)
	}
	return nil
}
