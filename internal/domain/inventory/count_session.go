package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/shared"
)

// CountItem is one product line of a count session. Quantity is the ledger
// value snapshotted when the session started; NewQuantity is the counted
// value that overwrites the ledger on completion.
type CountItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity    int       `gorm:"not null;default:0"`
	NewQuantity int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CountItem) TableName() string {
	return "count_items"
}

// CountItemSpec describes one count line as submitted by the caller
type CountItemSpec struct {
	ProductID   uuid.UUID
	Quantity    int
	NewQuantity int
}

// CountSnapshot is a product's ledger quantity captured at session start
type CountSnapshot struct {
	ProductID uuid.UUID
	Quantity  int
}

// CountSession is a physical inventory count. On completion every counted
// quantity overwrites the product's ledger value outright, reconciling any
// drift accumulated during the count window (last writer wins), and the
// session becomes immutable.
type CountSession struct {
	shared.BaseAggregateRoot
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate   time.Time
	IsCompleted bool `gorm:"not null;default:false"`
	Items       []CountItem `gorm:"foreignKey:SessionID"`
	Comment     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CountSession) TableName() string {
	return "count_sessions"
}

// NewCountSession starts a count session snapshotting the given products
func NewCountSession(createdByID uuid.UUID, snapshots []CountSnapshot) (*CountSession, error) {
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Count session requires a creator")
	}

	s := &CountSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreatedByID:       createdByID,
		StartDate:         time.Now(),
	}
	s.Items = make([]CountItem, 0, len(snapshots))
	for _, snap := range snapshots {
		s.Items = append(s.Items, CountItem{
			ID:        uuid.New(),
			SessionID: s.ID,
			ProductID: snap.ProductID,
			Quantity:  snap.Quantity,
		})
	}
	return s, nil
}

// CountPatch carries the optional field updates of a count session edit
type CountPatch struct {
	Items       *[]CountItemSpec
	IsCompleted *bool
	Comment     *string
}

// ApplyPatch validates the edit against the session state, applies it and
// returns the diff. Item lists are compared structurally and reported as a
// single clause. completedNow reports the completion edge, on which the
// caller must overwrite each product's ledger quantity.
func (s *CountSession) ApplyPatch(patch CountPatch) (changes []audit.FieldChange, completedNow bool, err error) {
	if s.IsCompleted {
		return nil, false, shared.NewDomainError("INVALID_STATE", "Count session is already completed")
	}

	if patch.IsCompleted != nil && *patch.IsCompleted && !s.IsCompleted {
		changes = append(changes, audit.NewFieldChange("isCompleted", "false", "true"))
		completedNow = true
	}
	if patch.Items != nil && !s.sameItems(*patch.Items) {
		changes = append(changes, audit.NewStructuralChange("items"))
		items := make([]CountItem, 0, len(*patch.Items))
		for _, spec := range *patch.Items {
			if spec.ProductID == uuid.Nil {
				return nil, false, shared.NewDomainError("INVALID_PRODUCT", "Count item requires a product")
			}
			items = append(items, CountItem{
				ID:          uuid.New(),
				SessionID:   s.ID,
				ProductID:   spec.ProductID,
				Quantity:    spec.Quantity,
				NewQuantity: spec.NewQuantity,
			})
		}
		s.Items = items
	}
	if patch.Comment != nil && *patch.Comment != s.Comment {
		changes = append(changes, audit.NewFieldChange("comment", s.Comment, *patch.Comment))
		s.Comment = *patch.Comment
	}
	if patch.IsCompleted != nil {
		s.IsCompleted = *patch.IsCompleted
	}

	if len(changes) > 0 {
		s.UpdatedAt = time.Now()
		s.IncrementVersion()
	}

	return changes, completedNow, nil
}

// EnsureRemovable verifies the session may be deleted in its current state
func (s *CountSession) EnsureRemovable() error {
	if s.IsCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a completed count session")
	}
	return nil
}

func (s *CountSession) sameItems(specs []CountItemSpec) bool {
	if len(s.Items) != len(specs) {
		return false
	}
	for i, item := range s.Items {
		spec := specs[i]
		if item.ProductID != spec.ProductID || item.Quantity != spec.Quantity || item.NewQuantity != spec.NewQuantity {
			return false
		}
	}
	return true
}
