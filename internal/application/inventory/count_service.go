package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CountService drives the physical inventory count workflow. Completing a
// session overwrites each counted product's ledger quantity outright.
type CountService struct {
	sessions inventory.CountSessionRepository
	products catalog.ProductRepository
	stock    catalog.StockMutator
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewCountService creates a new CountService
func NewCountService(
	sessions inventory.CountSessionRepository,
	products catalog.ProductRepository,
	stock catalog.StockMutator,
	recorder audit.Recorder,
	logger *zap.Logger,
) *CountService {
	return &CountService{
		sessions: sessions,
		products: products,
		stock:    stock,
		recorder: recorder,
		logger:   logger,
	}
}

// Create starts a count session snapshotting every active product's
// current ledger quantity
func (s *CountService) Create(ctx context.Context, actor identity.Actor) (*CountResponse, error) {
	products, err := s.products.FindActive(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	snapshots := make([]inventory.CountSnapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, inventory.CountSnapshot{ProductID: p.ID, Quantity: p.Quantity})
	}

	session, err := inventory.NewCountSession(actor.ID, snapshots)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeInventoryCreated,
		Description: fmt.Sprintf("Inventory count from %s started.", session.StartDate.Format("2006-01-02")),
	}); err != nil {
		return nil, err
	}

	response := ToCountResponse(session)
	return &response, nil
}

// List returns all count sessions
func (s *CountService) List(ctx context.Context, filter shared.Filter) ([]CountResponse, error) {
	sessions, err := s.sessions.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCountResponses(sessions), nil
}

// Get returns one count session
func (s *CountService) Get(ctx context.Context, id uuid.UUID) (*CountResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCountResponse(session)
	return &response, nil
}

// Update applies a partial update. On the completion edge it overwrites
// every counted product's ledger quantity with the counted value,
// discarding any drift accumulated during the count window.
func (s *CountService) Update(ctx context.Context, id uuid.UUID, req UpdateCountRequest, actor identity.Actor) (*CountResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := inventory.CountPatch{
		IsCompleted: req.IsCompleted,
		Comment:     req.Comment,
	}
	if req.Items != nil {
		specs := make([]inventory.CountItemSpec, 0, len(*req.Items))
		for _, item := range *req.Items {
			specs = append(specs, inventory.CountItemSpec{
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				NewQuantity: item.NewQuantity,
			})
		}
		patch.Items = &specs
	}

	changes, completedNow, err := session.ApplyPatch(patch)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if completedNow {
		for _, item := range session.Items {
			if err := s.stock.SetQuantity(ctx, item.ProductID, item.NewQuantity); err != nil {
				return nil, err
			}
		}
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeInventoryUpdated,
		Description: fmt.Sprintf("Inventory count from %s updated. Changes: %s", session.StartDate.Format("2006-01-02"), audit.RenderChanges(changes)),
	}); err != nil {
		return nil, err
	}

	response := ToCountResponse(session)
	return &response, nil
}

// Remove deletes a count session that is not yet completed
func (s *CountService) Remove(ctx context.Context, id uuid.UUID, actor identity.Actor) error {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := session.EnsureRemovable(); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeInventoryDeleted,
		Description: fmt.Sprintf("Inventory count from %s deleted.", session.StartDate.Format("2006-01-02")),
	})
	return err
}
