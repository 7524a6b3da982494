package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
)

type ProductService struct {
	store repository.Store
}

func NewProductService(store repository.Store) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.store.NewUnitOfWork().Products().GetAll(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.store.NewUnitOfWork().Products().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product with ID %d not found.", id)
	}
	return product, nil
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return badRequest("Product name is required.")
	}
	if product.Price.IsNegative() {
		return badRequest("Product price must not be negative.")
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	uow := s.store.NewUnitOfWork()
	uow.Products().Add(product)

	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces the product stored under id. When the write fails
// the product is looked up again so a concurrent delete answers 404.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, product *domain.Product) error {
	if product.ID != id {
		return badRequest("Product ID mismatch: path %d, body %d.", id, product.ID)
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	uow := s.store.NewUnitOfWork()
	uow.Products().Update(product)

	if _, err := uow.Complete(ctx); err != nil {
		exists, existsErr := uow.Products().Exists(ctx, id)
		if existsErr == nil && !exists {
			return notFound("Product with ID %d not found.", id)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	uow := s.store.NewUnitOfWork()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Product with ID %d not found.", id)
	}

	uow.Products().Remove(product)
	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *ProductService) ProductsPricedAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.Product, error) {
	products, err := s.store.NewUnitOfWork().Products().Find(ctx, util.QueryFilter{
		Field:    "price",
		Operator: util.OpGt,
		Value:    threshold,
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, notFound("No products found with a price above %s.", threshold.String())
	}
	return products, nil
}

func (s *ProductService) ProductsWithoutDescription(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.store.NewUnitOfWork().Products().Find(ctx, util.QueryFilter{
		Field:    "description",
		Operator: util.OpIsBlank,
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, notFound("No products without a description were found.")
	}
	return products, nil
}

// AveragePrice is zero when there are no products.
func (s *ProductService) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	return s.store.NewUnitOfWork().Products().AveragePrice(ctx)
}

func (s *ProductService) MostExpensiveProduct(ctx context.Context) (*domain.Product, error) {
	product, err := s.store.NewUnitOfWork().Products().FindMostExpensive(ctx)
	if err != nil {
		return nil, notFoundOr(err, "No products found.")
	}
	return product, nil
}

// ProductClients lists the distinct clients that ordered the product.
func (s *ProductService) ProductClients(ctx context.Context, productID int) ([]*domain.Client, error) {
	uow := s.store.NewUnitOfWork()

	exists, err := uow.Products().Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Product with ID %d not found.", productID)
	}

	return uow.Clients().FindByProduct(ctx, productID)
}
