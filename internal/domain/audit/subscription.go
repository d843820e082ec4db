package audit

import (
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Subscription is a registered push endpoint for one user agent.
// Subscriptions are upserted on endpoint and deleted only when the
// transport reports the endpoint permanently gone.
type Subscription struct {
	shared.BaseEntity
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint string    `gorm:"type:text;not null;uniqueIndex"`
	P256dh   string    `gorm:"type:text;not null"`
	Auth     string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a subscription for a user's push endpoint
func NewSubscription(userID uuid.UUID, endpoint, p256dh, auth string) (*Subscription, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Subscription requires a user")
	}
	if endpoint == "" {
		return nil, shared.NewDomainError("INVALID_ENDPOINT", "Subscription endpoint cannot be empty")
	}
	if p256dh == "" || auth == "" {
		return nil, shared.NewDomainError("INVALID_KEYS", "Subscription delivery keys cannot be empty")
	}

	return &Subscription{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Endpoint:   endpoint,
		P256dh:     p256dh,
		Auth:       auth,
	}, nil
}

// Refresh updates the subscription in place for an endpoint re-registration
func (s *Subscription) Refresh(userID uuid.UUID, p256dh, auth string) {
	s.UserID = userID
	s.P256dh = p256dh
	s.Auth = auth
}
