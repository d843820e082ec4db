package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChangeEntryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&audit.ChangeEntry{})
	require.NoError(t, err)

	return db
}

func TestGormChangeEntryRepository_SaveAndFind(t *testing.T) {
	db := setupChangeEntryTestDB(t)
	repo := NewGormChangeEntryRepository(db)
	ctx := context.Background()

	entry, err := audit.NewChangeEntry(uuid.New(), audit.ChangeProductCreated, "alice: Product Hammer created.")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, audit.ChangeProductCreated, found.ChangeType)
	assert.Equal(t, "alice: Product Hammer created.", found.Description)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormChangeEntryRepository_FindAllNewestFirst(t *testing.T) {
	db := setupChangeEntryTestDB(t)
	repo := NewGormChangeEntryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	older, err := audit.NewChangeEntry(userID, audit.ChangeOrderCreated, "first")
	require.NoError(t, err)
	older.ChangeDate = 1000
	require.NoError(t, repo.Save(ctx, older))

	newer, err := audit.NewChangeEntry(userID, audit.ChangeOrderUpdated, "second")
	require.NoError(t, err)
	newer.ChangeDate = 2000
	require.NoError(t, repo.Save(ctx, newer))

	entries, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Description)
	assert.Equal(t, "first", entries[1].Description)
}
