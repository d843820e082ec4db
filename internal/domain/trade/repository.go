package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// OrderRepository defines the interface for sales order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns all orders with their items
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindOpen returns all orders with isCompleted=false, with items.
	// The availability calculator scans these on every call.
	FindOpen(ctx context.Context) ([]Order, error)

	// MaxOrderNumber returns the highest assigned order number, 0 when the
	// collection is empty
	MaxOrderNumber(ctx context.Context) (int, error)

	// Save creates or updates an order and replaces its items
	Save(ctx context.Context, order *Order) error

	// Delete removes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseRepository defines the interface for restock purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindAll returns all purchases with their items
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)

	// MaxPurchaseNumber returns the highest assigned purchase number, 0
	// when the collection is empty
	MaxPurchaseNumber(ctx context.Context) (int, error)

	// Save creates or updates a purchase and replaces its items
	Save(ctx context.Context, purchase *Purchase) error

	// Delete removes a purchase and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
