package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NewEntry is the input to the change recorder
type NewEntry struct {
	UserID      uuid.UUID
	ChangeType  string
	Description string
}

// Recorder persists an audit entry and fans it out to push subscribers.
// Every workflow calls this after its own mutation and the stock mutation
// have completed; a failed record does not roll the stock mutation back.
type Recorder interface {
	Record(ctx context.Context, entry NewEntry) (*ChangeEntry, error)
}

// Message is a push notification payload
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushTransport delivers a message to a single subscription endpoint.
// Implementations must return an error matching ErrSubscriptionGone when
// the endpoint reports it is permanently unreachable.
type PushTransport interface {
	Send(ctx context.Context, sub Subscription, msg Message) error
}

// ErrSubscriptionGone marks an endpoint the transport reports as
// permanently gone; the fan-out prunes the subscription and continues.
var ErrSubscriptionGone = errors.New("push subscription gone")

// DeliveryError is a push delivery failure carrying the transport status
type DeliveryError struct {
	StatusCode int
	Endpoint   string
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("push delivery failed with status %d", e.StatusCode)
}

// Is lets a gone delivery error match ErrSubscriptionGone via errors.Is
func (e *DeliveryError) Is(target error) bool {
	return target == ErrSubscriptionGone && e.Gone()
}

// Gone reports whether the endpoint is permanently unreachable
func (e *DeliveryError) Gone() bool {
	return e.StatusCode == 404 || e.StatusCode == 410
}
