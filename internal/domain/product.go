package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ProductNameMinLen = 3
	ProductNameMaxLen = 100
)

// ErrInsufficientStock is returned when a stock delta would drive the stock
// below zero. The rejected delta leaves the product unchanged.
var ErrInsufficientStock = fmt.Errorf("%w: not enough stock available", ErrConflict)

// Product represents a catalog item. Fields are unexported; state changes
// only through UpdateDetails and UpdateStock.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	price       float64
	stock       int
	createdAt   time.Time
	updatedAt   *time.Time
}

// NewProduct creates a product. Price and stock must be non-negative; the
// name must be 3-100 characters.
func NewProduct(name, description string, price float64, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, NewValidationError("price", "price cannot be negative")
	}
	if stock < 0 {
		return nil, NewValidationError("stock", "stock cannot be negative")
	}

	return &Product{
		id:          uuid.New(),
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		createdAt:   time.Now().UTC(),
	}, nil
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() float64       { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last modification timestamp, if the product has been
// modified since creation.
func (p *Product) UpdatedAt() (time.Time, bool) {
	if p.updatedAt == nil {
		return time.Time{}, false
	}
	return *p.updatedAt, true
}

// UpdateDetails replaces name, description and price.
func (p *Product) UpdateDetails(name, description string, price float64) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price < 0 {
		return NewValidationError("price", "price cannot be negative")
	}

	p.name = name
	p.description = description
	p.price = price
	p.touch()
	return nil
}

// UpdateStock applies a signed delta to the stock. A delta that would make
// the stock negative fails with ErrInsufficientStock and changes nothing.
func (p *Product) UpdateStock(delta int) error {
	if p.stock+delta < 0 {
		return ErrInsufficientStock
	}
	p.stock += delta
	p.touch()
	return nil
}

// IsAvailable reports whether the product has stock left.
func (p *Product) IsAvailable() bool {
	return p.stock > 0
}

func (p *Product) touch() {
	now := time.Now().UTC()
	p.updatedAt = &now
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "product name cannot be empty")
	}
	if len(name) < ProductNameMinLen || len(name) > ProductNameMaxLen {
		return NewValidationError("name", fmt.Sprintf("product name must be between %d and %d characters", ProductNameMinLen, ProductNameMaxLen))
	}
	return nil
}
