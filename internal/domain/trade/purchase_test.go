package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/shared"
)

func newTestPurchase(t *testing.T, productIDs ...uuid.UUID) *Purchase {
	t.Helper()
	p, err := NewPurchase(1, uuid.New(), productIDs)
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	t.Run("snapshots catalog with zero quantities", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		p := newTestPurchase(t, a, b)
		require.Len(t, p.Items, 2)
		for _, item := range p.Items {
			assert.Equal(t, 0, item.Quantity)
			assert.Equal(t, 0, item.ConfirmedQuantity)
		}
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := NewPurchase(0, uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := NewPurchase(1, uuid.Nil, nil)
		assert.Error(t, err)
	})
}

func TestPurchase_ApplyPatch_Deltas(t *testing.T) {
	productID := uuid.New()

	t.Run("no deltas while neither partial nor completed", func(t *testing.T) {
		p := newTestPurchase(t, productID)
		items := []PurchaseItemSpec{{ProductID: productID, Quantity: 10, ConfirmedQuantity: 4}}
		_, deltas, err := p.ApplyPatch(PurchasePatch{Items: &items})
		require.NoError(t, err)
		assert.Empty(t, deltas)
	})

	t.Run("delta is the difference of cumulative totals", func(t *testing.T) {
		p := newTestPurchase(t, productID)
		items := []PurchaseItemSpec{{ProductID: productID, Quantity: 10, ConfirmedQuantity: 4}}
		_, deltas, err := p.ApplyPatch(PurchasePatch{Items: &items, PartialCompleted: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, deltas, 1)
		assert.Equal(t, StockDelta{ProductID: productID, Delta: 4}, deltas[0])

		// resubmitting the same cumulative total adds nothing
		_, deltas, err = p.ApplyPatch(PurchasePatch{Items: &items})
		require.NoError(t, err)
		assert.Empty(t, deltas)

		// raising the total applies only the increment
		items = []PurchaseItemSpec{{ProductID: productID, Quantity: 10, ConfirmedQuantity: 10}}
		_, deltas, err = p.ApplyPatch(PurchasePatch{Items: &items, IsCompleted: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, deltas, 1)
		assert.Equal(t, 6, deltas[0].Delta)
	})

	t.Run("lowering a total yields a negative correction", func(t *testing.T) {
		p := newTestPurchase(t, productID)
		items := []PurchaseItemSpec{{ProductID: productID, Quantity: 10, ConfirmedQuantity: 8}}
		_, _, err := p.ApplyPatch(PurchasePatch{Items: &items, PartialCompleted: boolPtr(true)})
		require.NoError(t, err)

		items = []PurchaseItemSpec{{ProductID: productID, Quantity: 10, ConfirmedQuantity: 5}}
		_, deltas, err := p.ApplyPatch(PurchasePatch{Items: &items})
		require.NoError(t, err)
		require.Len(t, deltas, 1)
		assert.Equal(t, -3, deltas[0].Delta)
	})
}

func TestPurchase_ApplyPatch_Terminal(t *testing.T) {
	p := newTestPurchase(t, uuid.New())
	_, _, err := p.ApplyPatch(PurchasePatch{IsCompleted: boolPtr(true)})
	require.NoError(t, err)

	_, _, err = p.ApplyPatch(PurchasePatch{Comment: strPtr("late edit")})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestPurchase_ApplyPatch_Diff(t *testing.T) {
	t.Run("paid and completed transitions recorded once", func(t *testing.T) {
		p := newTestPurchase(t, uuid.New())
		changes, _, err := p.ApplyPatch(PurchasePatch{
			IsPaid:      boolPtr(true),
			IsCompleted: boolPtr(true),
			Comment:     strPtr("all received"),
		})
		require.NoError(t, err)

		fields := make([]string, 0, len(changes))
		for _, c := range changes {
			fields = append(fields, c.Field)
		}
		assert.Equal(t, []string{"isPaid", "isCompleted", "comment"}, fields)
	})

	t.Run("partial completion recorded while not completed", func(t *testing.T) {
		p := newTestPurchase(t, uuid.New())
		changes, _, err := p.ApplyPatch(PurchasePatch{PartialCompleted: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, "partialCompleted", changes[0].Field)
	})
}

func TestPurchase_EnsureRemovable(t *testing.T) {
	p := newTestPurchase(t, uuid.New())
	assert.NoError(t, p.EnsureRemovable())

	p.IsPaid = true
	assert.ErrorIs(t, p.EnsureRemovable(), shared.ErrInvalidState)

	p.IsPaid = false
	p.IsCompleted = true
	assert.ErrorIs(t, p.EnsureRemovable(), shared.ErrInvalidState)
}
