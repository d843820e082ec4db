package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PurchaseItem is one product line of a restock purchase. Quantity is the
// amount requested from the supplier; ConfirmedQuantity is the cumulative
// total received so far, not an increment.
type PurchaseItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity          int       `gorm:"not null;default:0"`
	ConfirmedQuantity int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// PurchaseItemSpec describes one purchase line as submitted by the caller
type PurchaseItemSpec struct {
	ProductID         uuid.UUID
	Quantity          int
	ConfirmedQuantity int
}

// StockDelta is a pending ledger adjustment produced by a purchase update
type StockDelta struct {
	ProductID uuid.UUID
	Delta     int
}

// Purchase is a restock order. It snapshots the full active catalog at
// creation; received deliveries replenish the ledger by the difference
// between the newly submitted and previously recorded cumulative totals,
// so repeated submissions of an unchanged total have no further effect.
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber   int       `gorm:"not null;uniqueIndex"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Items            []PurchaseItem
	IsCompleted      bool   `gorm:"not null;default:false"`
	PartialCompleted bool   `gorm:"not null;default:false"`
	IsPaid           bool   `gorm:"not null;default:false"`
	IsCreated        bool   `gorm:"not null;default:false"`
	Comment          string `gorm:"type:text"`
	PurchaseDate     time.Time
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase snapshotting the given products with zero
// requested and zero confirmed quantities
func NewPurchase(purchaseNumber int, userID uuid.UUID, productIDs []uuid.UUID) (*Purchase, error) {
	if purchaseNumber < 1 {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number must be positive")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Purchase requires a creating user")
	}

	p := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		UserID:            userID,
		PurchaseDate:      time.Now(),
	}
	p.Items = make([]PurchaseItem, 0, len(productIDs))
	for _, productID := range productIDs {
		p.Items = append(p.Items, PurchaseItem{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			ProductID:  productID,
		})
	}
	return p, nil
}

// PurchasePatch carries the optional field updates of a purchase edit
type PurchasePatch struct {
	Items            *[]PurchaseItemSpec
	IsPaid           *bool
	IsCompleted      *bool
	PartialCompleted *bool
	IsCreated        *bool
	Comment          *string
}

// ApplyPatch validates the edit against the purchase state, applies it and
// returns the diff plus the ledger deltas to apply. Deltas are non-empty
// only when the resulting state is partially or fully completed, and each
// is the difference between the new and old cumulative confirmed totals.
func (p *Purchase) ApplyPatch(patch PurchasePatch) (changes []audit.FieldChange, deltas []StockDelta, err error) {
	if p.IsCompleted {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Purchase is already completed")
	}

	wasPaid := p.IsPaid
	wasCompleted := p.IsCompleted
	oldComment := p.Comment
	oldConfirmed := make(map[uuid.UUID]int, len(p.Items))
	for _, item := range p.Items {
		oldConfirmed[item.ProductID] = item.ConfirmedQuantity
	}

	if patch.Items != nil {
		items := make([]PurchaseItem, 0, len(*patch.Items))
		for _, s := range *patch.Items {
			if s.ProductID == uuid.Nil {
				return nil, nil, shared.NewDomainError("INVALID_PRODUCT", "Purchase item requires a product")
			}
			items = append(items, PurchaseItem{
				ID:                uuid.New(),
				PurchaseID:        p.ID,
				ProductID:         s.ProductID,
				Quantity:          s.Quantity,
				ConfirmedQuantity: s.ConfirmedQuantity,
			})
		}
		p.Items = items
	}
	if patch.IsPaid != nil {
		p.IsPaid = *patch.IsPaid
	}
	if patch.PartialCompleted != nil {
		p.PartialCompleted = *patch.PartialCompleted
	}
	if patch.IsCompleted != nil {
		p.IsCompleted = *patch.IsCompleted
	}
	if patch.IsCreated != nil {
		p.IsCreated = *patch.IsCreated
	}
	if patch.Comment != nil {
		p.Comment = *patch.Comment
	}

	if p.PartialCompleted || p.IsCompleted {
		for _, item := range p.Items {
			delta := item.ConfirmedQuantity - oldConfirmed[item.ProductID]
			if delta != 0 {
				deltas = append(deltas, StockDelta{ProductID: item.ProductID, Delta: delta})
			}
		}
	}

	if !wasPaid && p.IsPaid {
		changes = append(changes, audit.NewFieldChange("isPaid", "false", "true"))
	}
	if !wasCompleted && p.IsCompleted {
		changes = append(changes, audit.NewFieldChange("isCompleted", "false", "true"))
	}
	if p.PartialCompleted && !p.IsCompleted {
		changes = append(changes, audit.NewFieldChange("partialCompleted", "false", "true"))
	}
	if oldComment != p.Comment {
		changes = append(changes, audit.NewFieldChange("comment", oldComment, p.Comment))
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return changes, deltas, nil
}

// EnsureRemovable verifies the purchase may be deleted in its current state
func (p *Purchase) EnsureRemovable() error {
	if p.IsCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a completed purchase")
	}
	if p.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a paid purchase")
	}
	return nil
}
