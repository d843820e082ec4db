package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCountSessionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&inventory.CountSession{}, &inventory.CountItem{})
	require.NoError(t, err)

	return db
}

func TestGormCountSessionRepository_SaveAndFind(t *testing.T) {
	db := setupCountSessionTestDB(t)
	repo := NewGormCountSessionRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	session, err := inventory.NewCountSession(uuid.New(), []inventory.CountSnapshot{
		{ProductID: productID, Quantity: 93},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, session))

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, found.IsCompleted)
	require.Len(t, found.Items, 1)
	assert.Equal(t, productID, found.Items[0].ProductID)
	assert.Equal(t, 93, found.Items[0].Quantity)
}

func TestGormCountSessionRepository_SaveReplacesItems(t *testing.T) {
	db := setupCountSessionTestDB(t)
	repo := NewGormCountSessionRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	session, err := inventory.NewCountSession(uuid.New(), []inventory.CountSnapshot{
		{ProductID: productID, Quantity: 93},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, session))

	items := []inventory.CountItemSpec{{ProductID: productID, Quantity: 93, NewQuantity: 100}}
	_, _, err = session.ApplyPatch(inventory.CountPatch{Items: &items})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, session))

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 100, found.Items[0].NewQuantity)

	var itemCount int64
	require.NoError(t, db.Model(&inventory.CountItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestGormCountSessionRepository_Delete(t *testing.T) {
	db := setupCountSessionTestDB(t)
	repo := NewGormCountSessionRepository(db)
	ctx := context.Background()

	session, err := inventory.NewCountSession(uuid.New(), []inventory.CountSnapshot{
		{ProductID: uuid.New(), Quantity: 5},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, session))

	require.NoError(t, repo.Delete(ctx, session.ID))

	_, err = repo.FindByID(ctx, session.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&inventory.CountItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestGormCountSessionRepository_Delete_NotFound(t *testing.T) {
	db := setupCountSessionTestDB(t)
	repo := NewGormCountSessionRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
