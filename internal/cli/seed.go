package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
	"github.com/storeldb/storeapi/internal/core/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo clients, products and orders",
	Long:  "Load a small demo data set into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		result, err := seedDemoData(cmd.Context(), services.Store, services.OrderService)
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d clients, %d products and %d orders\n", result.clients, result.products, result.orders)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedResult struct {
	clients, products, orders int
}

// seedDemoData writes the demo catalogue in one unit of work and then
// places the demo orders through the order service.
func seedDemoData(ctx context.Context, store repository.Store, orders *service.OrderService) (*seedResult, error) {
	existing, err := store.NewUnitOfWork().Clients().Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("database already has %d clients, refusing to seed", existing)
	}

	desc := func(s string) *string { return &s }

	clients := []*domain.Client{
		domain.NewClient("Juan Perez", "juan.perez@example.com"),
		domain.NewClient("Maria Lopez", "maria.lopez@example.com"),
		domain.NewClient("Carlos Sanchez", "carlos.sanchez@example.com"),
	}
	products := []*domain.Product{
		domain.NewProduct("Laptop", desc("15 inch business laptop"), decimal.RequireFromString("999.99")),
		domain.NewProduct("Mouse", desc("Wireless mouse"), decimal.RequireFromString("19.50")),
		domain.NewProduct("Keyboard", desc("Mechanical keyboard"), decimal.RequireFromString("49.90")),
		domain.NewProduct("USB Cable", nil, decimal.RequireFromString("5.00")),
	}

	uow := store.NewUnitOfWork()
	for _, c := range clients {
		uow.Clients().Add(c)
	}
	for _, p := range products {
		uow.Products().Add(p)
	}
	if _, err := uow.Complete(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	laptop, mouse, keyboard, cable := products[0], products[1], products[2], products[3]
	demoOrders := []struct {
		client *domain.Client
		items  []service.OrderItemInput
	}{
		{clients[0], []service.OrderItemInput{{ProductID: laptop.ID, Quantity: 1}, {ProductID: mouse.ID, Quantity: 2}}},
		{clients[1], []service.OrderItemInput{{ProductID: keyboard.ID, Quantity: 1}, {ProductID: cable.ID, Quantity: 3}}},
		{clients[0], []service.OrderItemInput{{ProductID: keyboard.ID, Quantity: 2}}},
	}
	for _, o := range demoOrders {
		if _, err := orders.CreateOrder(ctx, o.client.ID, o.items); err != nil {
			return nil, fmt.Errorf("failed to seed order for %s: %w", o.client.Name, err)
		}
	}

	return &seedResult{
		clients:  len(clients),
		products: len(products),
		orders:   len(demoOrders),
	}, nil
}
