package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Change type tags recorded by the workflows
const (
	ChangeProductCreated   = "product-created"
	ChangeProductUpdated   = "product-updated"
	ChangeProductDeleted   = "product-deleted"
	ChangeOrderCreated     = "order-created"
	ChangeOrderUpdated     = "order-updated"
	ChangeOrderDeleted     = "order-deleted"
	ChangePurchaseCreated  = "purchase-created"
	ChangePurchaseUpdated  = "purchase-updated"
	ChangePurchaseDeleted  = "purchase-deleted"
	ChangeInventoryCreated = "inventory-created"
	ChangeInventoryUpdated = "inventory-updated"
	ChangeInventoryDeleted = "inventory-deleted"
)

// ChangeEntry is one append-only audit trail record. Entries are never
// mutated or deleted by business logic.
type ChangeEntry struct {
	shared.BaseEntity
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ChangeType  string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text;not null"`
	ChangeDate  int64     `gorm:"not null;index"` // epoch milliseconds
}

// TableName returns the table name for GORM
func (ChangeEntry) TableName() string {
	return "change_entries"
}

// NewChangeEntry creates a new audit entry stamped with the current time
func NewChangeEntry(userID uuid.UUID, changeType, description string) (*ChangeEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Change entry requires a user")
	}
	if changeType == "" {
		return nil, shared.NewDomainError("INVALID_CHANGE_TYPE", "Change type cannot be empty")
	}

	return &ChangeEntry{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		ChangeType:  changeType,
		Description: description,
		ChangeDate:  time.Now().UnixMilli(),
	}, nil
}
