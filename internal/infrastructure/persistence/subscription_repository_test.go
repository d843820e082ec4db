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

func setupSubscriptionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&audit.Subscription{})
	require.NoError(t, err)

	return db
}

func TestGormSubscriptionRepository_SaveAndFindByEndpoint(t *testing.T) {
	db := setupSubscriptionTestDB(t)
	repo := NewGormSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := audit.NewSubscription(uuid.New(), "https://push.example.com/a", "key", "secret")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sub))

	found, err := repo.FindByEndpoint(ctx, sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, found.ID)
	assert.Equal(t, "key", found.P256dh)

	_, err = repo.FindByEndpoint(ctx, "https://push.example.com/unknown")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSubscriptionRepository_RefreshedKeysPersist(t *testing.T) {
	db := setupSubscriptionTestDB(t)
	repo := NewGormSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := audit.NewSubscription(uuid.New(), "https://push.example.com/a", "key", "secret")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sub))

	newUser := uuid.New()
	sub.Refresh(newUser, "rotated-key", "rotated-secret")
	require.NoError(t, repo.Save(ctx, sub))

	found, err := repo.FindByEndpoint(ctx, sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, newUser, found.UserID)
	assert.Equal(t, "rotated-key", found.P256dh)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGormSubscriptionRepository_Delete(t *testing.T) {
	db := setupSubscriptionTestDB(t)
	repo := NewGormSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := audit.NewSubscription(uuid.New(), "https://push.example.com/a", "key", "secret")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sub))

	require.NoError(t, repo.Delete(ctx, sub.ID))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	err = repo.Delete(ctx, sub.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
