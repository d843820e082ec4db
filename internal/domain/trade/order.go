package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
)

// OrderItem is one product line of a sales order, snapshotted at creation
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemSpec describes one order line as submitted by the caller
type ItemSpec struct {
	ProductID uuid.UUID
	Quantity  int
}

// Order is a sales order. While incomplete it reserves stock against its
// items; on the completion edge the reserved quantities are decremented
// from the ledger exactly once, after which the order is immutable.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   int       `gorm:"not null;uniqueIndex"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Items         []OrderItem
	IsCompleted   bool   `gorm:"not null;default:false"`
	IsPaid        bool   `gorm:"not null;default:false"`
	ConfirmedPaid bool   `gorm:"not null;default:false"`
	Comment       string `gorm:"type:text"`
	OrderDate     time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a sales order with the given number and item snapshot
func NewOrder(orderNumber int, userID uuid.UUID, items []ItemSpec) (*Order, error) {
	if orderNumber < 1 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must be positive")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order requires a purchasing user")
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Order item requires a product")
		}
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		OrderDate:         time.Now(),
	}
	o.Items = buildOrderItems(o.ID, items)
	return o, nil
}

func buildOrderItems(orderID uuid.UUID, specs []ItemSpec) []OrderItem {
	items := make([]OrderItem, 0, len(specs))
	for _, s := range specs {
		items = append(items, OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
		})
	}
	return items
}

// OrderPatch carries the optional field updates of an order edit
type OrderPatch struct {
	Items         *[]ItemSpec
	IsPaid        *bool
	ConfirmedPaid *bool
	IsCompleted   *bool
	Comment       *string
}

// ApplyPatch validates the edit against the actor and the order state,
// applies it, and returns the field-level diff in the fixed order items,
// confirmedPaid, isPaid, comment, isCompleted. completedNow reports the
// isCompleted false-to-true edge, on which the caller must decrement stock
// exactly once.
func (o *Order) ApplyPatch(patch OrderPatch, actor identity.Actor, perms identity.PermissionSet) (changes []audit.FieldChange, completedNow bool, err error) {
	if !actor.CanAccessRecordOf(o.UserID) {
		return nil, false, shared.NewDomainError("FORBIDDEN", "You do not have access to this order")
	}
	if o.IsCompleted {
		return nil, false, shared.NewDomainError("INVALID_STATE", "Order is already completed")
	}
	if o.IsPaid && !perms.Has(identity.PermApprovePayment) {
		return nil, false, shared.NewDomainError("INVALID_STATE", "Cannot edit a paid order without payment approval permission")
	}
	if patch.ConfirmedPaid != nil && *patch.ConfirmedPaid && !o.ConfirmedPaid && !perms.Has(identity.PermApprovePayment) {
		return nil, false, shared.NewDomainError("FORBIDDEN", "Not allowed to confirm payment")
	}

	if patch.Items != nil && !o.sameItems(*patch.Items) {
		changes = append(changes, audit.NewStructuralChange("items"))
		o.Items = buildOrderItems(o.ID, *patch.Items)
	}
	if patch.ConfirmedPaid != nil && *patch.ConfirmedPaid != o.ConfirmedPaid {
		changes = append(changes, audit.NewFieldChange("confirmedPaid", boolString(o.ConfirmedPaid), boolString(*patch.ConfirmedPaid)))
		o.ConfirmedPaid = *patch.ConfirmedPaid
	}
	if patch.IsPaid != nil && *patch.IsPaid != o.IsPaid {
		changes = append(changes, audit.NewFieldChange("isPaid", boolString(o.IsPaid), boolString(*patch.IsPaid)))
		o.IsPaid = *patch.IsPaid
	}
	if patch.Comment != nil && *patch.Comment != o.Comment {
		changes = append(changes, audit.NewFieldChange("comment", o.Comment, *patch.Comment))
		o.Comment = *patch.Comment
	}
	if patch.IsCompleted != nil && *patch.IsCompleted != o.IsCompleted {
		changes = append(changes, audit.NewFieldChange("isCompleted", boolString(o.IsCompleted), boolString(*patch.IsCompleted)))
		completedNow = *patch.IsCompleted
		o.IsCompleted = *patch.IsCompleted
	}

	if len(changes) > 0 {
		o.UpdatedAt = time.Now()
		o.IncrementVersion()
	}

	return changes, completedNow, nil
}

// EnsureRemovable verifies the actor may delete the order in its current state
func (o *Order) EnsureRemovable(actor identity.Actor) error {
	if !actor.CanAccessRecordOf(o.UserID) {
		return shared.NewDomainError("FORBIDDEN", "You do not have access to this order")
	}
	if o.IsCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a completed order")
	}
	return nil
}

func (o *Order) sameItems(specs []ItemSpec) bool {
	if len(o.Items) != len(specs) {
		return false
	}
	for i, item := range o.Items {
		if item.ProductID != specs[i].ProductID || item.Quantity != specs[i].Quantity {
			return false
		}
	}
	return true
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
