package audit

import (
	"context"

	"github.com/google/uuid"
)

// ChangeEntryRepository defines the interface for audit trail persistence
type ChangeEntryRepository interface {
	// Save persists a new change entry
	Save(ctx context.Context, entry *ChangeEntry) error

	// FindByID finds a change entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ChangeEntry, error)

	// FindAll returns all change entries ordered by change date descending
	FindAll(ctx context.Context) ([]ChangeEntry, error)
}

// SubscriptionRepository defines the interface for push subscription persistence
type SubscriptionRepository interface {
	// FindByEndpoint finds a subscription by its unique endpoint
	FindByEndpoint(ctx context.Context, endpoint string) (*Subscription, error)

	// FindAll returns all subscriptions in persistence order
	FindAll(ctx context.Context) ([]Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, sub *Subscription) error

	// Delete removes a subscription
	Delete(ctx context.Context, id uuid.UUID) error
}
