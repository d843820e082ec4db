package push

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warehouse/backend/internal/domain/audit"
)

func TestClassifyStatus(t *testing.T) {
	t.Run("2xx is success", func(t *testing.T) {
		assert.NoError(t, classifyStatus(http.StatusCreated, "https://push.example/ep"))
	})

	t.Run("410 matches gone sentinel", func(t *testing.T) {
		err := classifyStatus(http.StatusGone, "https://push.example/ep")
		assert.ErrorIs(t, err, audit.ErrSubscriptionGone)
	})

	t.Run("404 matches gone sentinel", func(t *testing.T) {
		err := classifyStatus(http.StatusNotFound, "https://push.example/ep")
		assert.ErrorIs(t, err, audit.ErrSubscriptionGone)
	})

	t.Run("other failures are not gone", func(t *testing.T) {
		err := classifyStatus(http.StatusTooManyRequests, "https://push.example/ep")
		assert.Error(t, err)
		assert.False(t, errors.Is(err, audit.ErrSubscriptionGone))

		var delivery *audit.DeliveryError
		assert.ErrorAs(t, err, &delivery)
		assert.Equal(t, http.StatusTooManyRequests, delivery.StatusCode)
	})
}
