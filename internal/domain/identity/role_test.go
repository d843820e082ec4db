package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_CanAccessRecordOf(t *testing.T) {
	owner := uuid.New()

	assert.True(t, Actor{ID: owner}.CanAccessRecordOf(owner))
	assert.False(t, Actor{ID: uuid.New()}.CanAccessRecordOf(owner))
	assert.True(t, Actor{ID: uuid.New(), IsAdmin: true}.CanAccessRecordOf(owner))
}

func TestPermissionSet_Has(t *testing.T) {
	perms := PermissionSet{PermApprovePayment}
	assert.True(t, perms.Has(PermApprovePayment))
	assert.False(t, perms.Has(PermManageCatalog))
	assert.False(t, PermissionSet(nil).Has(PermApprovePayment))
}

func TestPermissionSet_ValueScan(t *testing.T) {
	perms := PermissionSet{PermApprovePayment, PermManageCatalog}

	value, err := perms.Value()
	require.NoError(t, err)

	var scanned PermissionSet
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, perms, scanned)

	var empty PermissionSet
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)

	value, err = PermissionSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestRole_Grant(t *testing.T) {
	role, err := NewRole("Manager", []string{PermApprovePayment})
	require.NoError(t, err)

	role.Grant(PermManageCatalog)
	assert.True(t, role.Permissions.Has(PermManageCatalog))

	// granting twice keeps one entry
	role.Grant(PermManageCatalog)
	assert.Len(t, role.Permissions, 2)
}

func TestNewRole_EmptyName(t *testing.T) {
	_, err := NewRole("  ", nil)
	assert.Error(t, err)
}
