package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCountSessionRepository implements CountSessionRepository using GORM
type GormCountSessionRepository struct {
	db *gorm.DB
}

// NewGormCountSessionRepository creates a new GormCountSessionRepository
func NewGormCountSessionRepository(db *gorm.DB) *GormCountSessionRepository {
	return &GormCountSessionRepository{db: db}
}

var _ inventory.CountSessionRepository = (*GormCountSessionRepository)(nil)

// FindByID finds a count session with its items
func (r *GormCountSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	var session inventory.CountSession
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindAll returns all count sessions with their items
func (r *GormCountSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.CountSession, error) {
	var sessions []inventory.CountSession
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.CountSession{}).Preload("Items"), filter)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a count session, replacing its items
func (r *GormCountSessionRepository) Save(ctx context.Context, session *inventory.CountSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&inventory.CountItem{}).Error; err != nil {
			return err
		}
		return tx.Save(session).Error
	})
}

// Delete removes a count session and its items
func (r *GormCountSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&inventory.CountItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.CountSession{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
