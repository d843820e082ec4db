package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
)

func newTestOrder(t *testing.T, userID uuid.UUID) *Order {
	t.Helper()
	o, err := NewOrder(1, userID, []ItemSpec{
		{ProductID: uuid.New(), Quantity: 5},
	})
	require.NoError(t, err)
	return o
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("valid order", func(t *testing.T) {
		productID := uuid.New()
		o, err := NewOrder(7, userID, []ItemSpec{{ProductID: productID, Quantity: 3}})
		require.NoError(t, err)
		assert.Equal(t, 7, o.OrderNumber)
		assert.Equal(t, userID, o.UserID)
		require.Len(t, o.Items, 1)
		assert.Equal(t, productID, o.Items[0].ProductID)
		assert.False(t, o.IsCompleted)
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := NewOrder(0, userID, nil)
		assert.Error(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := NewOrder(1, uuid.Nil, nil)
		assert.Error(t, err)
	})

	t.Run("item without product", func(t *testing.T) {
		_, err := NewOrder(1, userID, []ItemSpec{{ProductID: uuid.Nil, Quantity: 1}})
		assert.Error(t, err)
	})
}

func TestOrder_ApplyPatch_Guards(t *testing.T) {
	owner := identity.Actor{ID: uuid.New(), Name: "owner"}
	admin := identity.Actor{ID: uuid.New(), Name: "admin", IsAdmin: true}
	stranger := identity.Actor{ID: uuid.New(), Name: "stranger"}
	approver := identity.PermissionSet{identity.PermApprovePayment}
	none := identity.PermissionSet{}

	t.Run("stranger cannot edit", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		_, _, err := o.ApplyPatch(OrderPatch{Comment: strPtr("x")}, stranger, none)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin can edit any order", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		changes, _, err := o.ApplyPatch(OrderPatch{Comment: strPtr("checked")}, admin, none)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "comment", changes[0].Field)
	})

	t.Run("completed order is immutable", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		o.IsCompleted = true
		_, _, err := o.ApplyPatch(OrderPatch{Comment: strPtr("x")}, owner, none)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("paid order locked without approval permission", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		o.IsPaid = true
		_, _, err := o.ApplyPatch(OrderPatch{Comment: strPtr("x")}, owner, none)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("paid order editable with approval permission", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		o.IsPaid = true
		_, _, err := o.ApplyPatch(OrderPatch{Comment: strPtr("x")}, owner, approver)
		assert.NoError(t, err)
	})

	t.Run("confirming payment requires permission", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		_, _, err := o.ApplyPatch(OrderPatch{ConfirmedPaid: boolPtr(true)}, owner, none)
		assert.ErrorIs(t, err, shared.ErrForbidden)

		changes, _, err := o.ApplyPatch(OrderPatch{ConfirmedPaid: boolPtr(true)}, owner, approver)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "confirmedPaid", changes[0].Field)
		assert.True(t, o.ConfirmedPaid)
	})

	t.Run("unsetting confirmedPaid needs no permission", func(t *testing.T) {
		o := newTestOrder(t, owner.ID)
		o.ConfirmedPaid = true
		_, _, err := o.ApplyPatch(OrderPatch{ConfirmedPaid: boolPtr(false)}, owner, none)
		assert.NoError(t, err)
		assert.False(t, o.ConfirmedPaid)
	})
}

func TestOrder_ApplyPatch_CompletionEdge(t *testing.T) {
	owner := identity.Actor{ID: uuid.New(), Name: "owner"}
	none := identity.PermissionSet{}

	o := newTestOrder(t, owner.ID)
	changes, completedNow, err := o.ApplyPatch(OrderPatch{IsCompleted: boolPtr(true)}, owner, none)
	require.NoError(t, err)
	assert.True(t, completedNow)
	require.Len(t, changes, 1)
	assert.Equal(t, "isCompleted", changes[0].Field)
}

func TestOrder_ApplyPatch_DiffOrder(t *testing.T) {
	owner := identity.Actor{ID: uuid.New(), Name: "owner"}
	approver := identity.PermissionSet{identity.PermApprovePayment}

	o := newTestOrder(t, owner.ID)
	newItems := []ItemSpec{{ProductID: uuid.New(), Quantity: 2}}
	changes, completedNow, err := o.ApplyPatch(OrderPatch{
		Items:         &newItems,
		ConfirmedPaid: boolPtr(true),
		IsPaid:        boolPtr(true),
		Comment:       strPtr("rush"),
		IsCompleted:   boolPtr(true),
	}, owner, approver)
	require.NoError(t, err)
	assert.True(t, completedNow)

	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"items", "confirmedPaid", "isPaid", "comment", "isCompleted"}, fields)
}

func TestOrder_ApplyPatch_SameItemsNoDiff(t *testing.T) {
	owner := identity.Actor{ID: uuid.New(), Name: "owner"}
	none := identity.PermissionSet{}

	o := newTestOrder(t, owner.ID)
	same := []ItemSpec{{ProductID: o.Items[0].ProductID, Quantity: o.Items[0].Quantity}}
	changes, _, err := o.ApplyPatch(OrderPatch{Items: &same}, owner, none)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestOrder_EnsureRemovable(t *testing.T) {
	owner := identity.Actor{ID: uuid.New(), Name: "owner"}
	stranger := identity.Actor{ID: uuid.New(), Name: "stranger"}

	o := newTestOrder(t, owner.ID)
	assert.NoError(t, o.EnsureRemovable(owner))
	assert.ErrorIs(t, o.EnsureRemovable(stranger), shared.ErrForbidden)

	o.IsCompleted = true
	assert.ErrorIs(t, o.EnsureRemovable(owner), shared.ErrInvalidState)
}
