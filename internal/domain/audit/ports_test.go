package audit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryError_GoneMatching(t *testing.T) {
	gone410 := &DeliveryError{StatusCode: 410, Endpoint: "https://push.example/a"}
	gone404 := &DeliveryError{StatusCode: 404, Endpoint: "https://push.example/b"}
	throttled := &DeliveryError{StatusCode: 429, Endpoint: "https://push.example/c"}

	assert.True(t, errors.Is(gone410, ErrSubscriptionGone))
	assert.True(t, errors.Is(gone404, ErrSubscriptionGone))
	assert.False(t, errors.Is(throttled, ErrSubscriptionGone))
}
