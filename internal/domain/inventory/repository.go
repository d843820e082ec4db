package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// CountSessionRepository defines the interface for count session persistence
type CountSessionRepository interface {
	// FindByID finds a count session with its items
	FindByID(ctx context.Context, id uuid.UUID) (*CountSession, error)

	// FindAll returns all count sessions with their items
	FindAll(ctx context.Context, filter shared.Filter) ([]CountSession, error)

	// Save creates or updates a count session and replaces its items
	Save(ctx context.Context, session *CountSession) error

	// Delete removes a count session and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
