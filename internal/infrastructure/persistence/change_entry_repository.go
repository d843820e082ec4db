package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormChangeEntryRepository implements ChangeEntryRepository using GORM.
// The table is append-only; entries are never updated or deleted.
type GormChangeEntryRepository struct {
	db *gorm.DB
}

// NewGormChangeEntryRepository creates a new GormChangeEntryRepository
func NewGormChangeEntryRepository(db *gorm.DB) *GormChangeEntryRepository {
	return &GormChangeEntryRepository{db: db}
}

var _ audit.ChangeEntryRepository = (*GormChangeEntryRepository)(nil)

// Save persists a new change entry
func (r *GormChangeEntryRepository) Save(ctx context.Context, entry *audit.ChangeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByID finds a change entry by its ID
func (r *GormChangeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.ChangeEntry, error) {
	var entry audit.ChangeEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll returns all change entries, newest first
func (r *GormChangeEntryRepository) FindAll(ctx context.Context) ([]audit.ChangeEntry, error) {
	var entries []audit.ChangeEntry
	if err := r.db.WithContext(ctx).
		Order("change_date desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
