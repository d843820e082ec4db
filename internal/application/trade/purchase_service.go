package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService drives the restock-purchase workflow. Confirmed
// deliveries replenish the stock ledger by cumulative-total deltas.
type PurchaseService struct {
	purchases trade.PurchaseRepository
	products  catalog.ProductRepository
	stock     catalog.StockMutator
	recorder  audit.Recorder
	logger    *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchases trade.PurchaseRepository,
	products catalog.ProductRepository,
	stock catalog.StockMutator,
	recorder audit.Recorder,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		products:  products,
		stock:     stock,
		recorder:  recorder,
		logger:    logger,
	}
}

// Create creates a purchase with the next sequence number, snapshotting
// every active product with zero requested and confirmed quantities
func (s *PurchaseService) Create(ctx context.Context, actor identity.Actor) (*PurchaseResponse, error) {
	maxNumber, err := s.purchases.MaxPurchaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindActive(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	productIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	purchase, err := trade.NewPurchase(maxNumber+1, actor.ID, productIDs)
	if err != nil {
		return nil, err
	}

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangePurchaseCreated,
		Description: fmt.Sprintf("Purchase %d created.", purchase.PurchaseNumber),
	}); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List returns all purchases
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) ([]PurchaseResponse, error) {
	purchases, err := s.purchases.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponses(purchases), nil
}

// Get returns one purchase
func (s *PurchaseService) Get(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Update applies a partial update. When the resulting state is partially
// or fully received, the ledger is adjusted by the difference between the
// new and previously recorded cumulative confirmed totals, making repeated
// submissions of an unchanged total a no-op.
func (s *PurchaseService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest, actor identity.Actor) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := trade.PurchasePatch{
		IsPaid:           req.IsPaid,
		IsCompleted:      req.IsCompleted,
		PartialCompleted: req.PartialCompleted,
		IsCreated:        req.IsCreated,
		Comment:          req.Comment,
	}
	if req.Items != nil {
		specs := make([]trade.PurchaseItemSpec, 0, len(*req.Items))
		for _, item := range *req.Items {
			specs = append(specs, trade.PurchaseItemSpec{
				ProductID:         item.ProductID,
				Quantity:          item.Quantity,
				ConfirmedQuantity: item.ConfirmedQuantity,
			})
		}
		patch.Items = &specs
	}

	changes, deltas, err := purchase.ApplyPatch(patch)
	if err != nil {
		return nil, err
	}

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	for _, delta := range deltas {
		if err := s.stock.AdjustQuantity(ctx, delta.ProductID, delta.Delta); err != nil {
			return nil, err
		}
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangePurchaseUpdated,
		Description: fmt.Sprintf("Purchase %d updated. Changes: %s", purchase.PurchaseNumber, audit.RenderChanges(changes)),
	}); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Remove deletes a purchase that is neither completed nor paid
func (s *PurchaseService) Remove(ctx context.Context, id uuid.UUID, actor identity.Actor) error {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := purchase.EnsureRemovable(); err != nil {
		return err
	}

	if err := s.purchases.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangePurchaseDeleted,
		Description: fmt.Sprintf("Purchase %d deleted.", purchase.PurchaseNumber),
	})
	return err
}
