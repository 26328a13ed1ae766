package service

import (
	"context"
	"fmt"
	"strings"

	"shopcore/internal/domain"
	"shopcore/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the interface for catalog business logic.
type ProductService interface {
	Create(ctx context.Context, name, description string, price float64, stock int) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, name, description string, price float64) (*domain.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetAvailable(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new instance of ProductService.
func NewProductService(products repository.ProductRepository, logger *zap.Logger) ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productService{
		products: products,
		logger:   logger,
	}
}

// Create validates the business rules and persists a new product. Unlike the
// entity, the service requires a strictly positive price on creation.
func (s *productService) Create(ctx context.Context, name, description string, price float64, stock int) (*domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "product name is required")
	}
	if price <= 0 {
		return nil, domain.NewValidationError("price", "price must be greater than zero")
	}
	if stock < 0 {
		return nil, domain.NewValidationError("stock", "stock cannot be negative")
	}

	product, err := domain.NewProduct(name, description, price, stock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID().String()),
		zap.String("name", product.Name()),
	)

	return product, nil
}

// Update replaces name, description and price of an existing product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, name, description string, price float64) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "product id cannot be empty")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(name, description, price); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// UpdateStock applies a signed delta to the product's stock and returns the
// updated product. A delta that would make the stock negative is rejected
// and the stored stock stays unchanged.
func (s *productService) UpdateStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "product id cannot be empty")
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateStock(delta); err != nil {
		s.logger.Debug("Stock update rejected",
			zap.String("product_id", id.String()),
			zap.Int("delta", delta),
			zap.Int("stock", product.Stock()),
		)
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "product id cannot be empty")
	}

	found, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return repository.ErrProductNotFound
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// GetByID retrieves a product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "product id cannot be empty")
	}
	return s.products.FindByID(ctx, id)
}

// GetAll returns all products.
func (s *productService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

// GetAvailable returns the products with stock remaining.
func (s *productService) GetAvailable(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAvailable(ctx)
}
