package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID regardless of deletion state
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByID finds a product by ID, excluding soft-deleted records
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByName finds an active product by its exact name
	FindActiveByName(ctx context.Context, name string) (*Product, error)

	// FindActive returns all products that are not soft-deleted
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// CountActive counts products that are not soft-deleted
	CountActive(ctx context.Context) (int64, error)
}

// StockMutator is the narrow capability the workflow services use to
// mutate the stock ledger. Delta application and absolute overwrite are
// the only two mutation paths.
type StockMutator interface {
	// AdjustQuantity adds delta to the product's ledger quantity
	AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) error

	// SetQuantity overwrites the product's ledger quantity
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error
}
