package repository

import (
	"context"
	"fmt"
	"sync"

	"shopcore/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = fmt.Errorf("product %w", domain.ErrNotFound)
	ErrNilProduct      = fmt.Errorf("%w: nil product", domain.ErrInvalidArgument)
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindAvailable(ctx context.Context) ([]*domain.Product, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// productRepository is the in-memory adapter, guarded by a single mutex held
// for the full duration of each operation. Reads return copies taken under
// the lock.
type productRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

// NewProductRepository creates an empty in-memory ProductRepository.
func NewProductRepository() ProductRepository {
	return &productRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

// Create stores a copy of the product.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return ErrNilProduct
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *product
	r.products[product.ID()] = &cp
	return nil
}

// Update replaces the stored product with the same ID.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return ErrNilProduct
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID()]; !ok {
		return ErrProductNotFound
	}

	cp := *product
	r.products[product.ID()] = &cp
	return nil
}

// Delete removes the product and reports whether it was present.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}

	delete(r.products, id)
	return true, nil
}

// FindByID retrieves a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	cp := *product
	return &cp, nil
}

// FindAll returns a snapshot copy of all products, never a live view.
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		cp := *product
		products = append(products, &cp)
	}

	return products, nil
}

// FindAvailable returns a snapshot of the products with stock remaining.
func (r *productRepository) FindAvailable(ctx context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if product.IsAvailable() {
			cp := *product
			products = append(products, &cp)
		}
	}

	return products, nil
}

// Exists reports whether a product with the given ID exists.
func (r *productRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	return ok, nil
}
