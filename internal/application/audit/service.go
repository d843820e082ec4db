package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service is the append-only change recorder. Every recorded entry is
// persisted first and then fanned out to all push subscribers; endpoints
// reported permanently gone are pruned during the fan-out.
type Service struct {
	entries   audit.ChangeEntryRepository
	subs      audit.SubscriptionRepository
	transport audit.PushTransport
	logger    *zap.Logger
}

// NewService creates a new audit Service
func NewService(
	entries audit.ChangeEntryRepository,
	subs audit.SubscriptionRepository,
	transport audit.PushTransport,
	logger *zap.Logger,
) *Service {
	return &Service{
		entries:   entries,
		subs:      subs,
		transport: transport,
		logger:    logger,
	}
}

var _ audit.Recorder = (*Service)(nil)

// Record persists the entry and notifies every subscriber. The entry is
// returned even when deliveries fail; delivery failures are aggregated
// into the returned error.
func (s *Service) Record(ctx context.Context, entry audit.NewEntry) (*audit.ChangeEntry, error) {
	changeEntry, err := audit.NewChangeEntry(entry.UserID, entry.ChangeType, entry.Description)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, changeEntry); err != nil {
		return nil, err
	}

	if err := s.Broadcast(ctx, audit.Message{Title: entry.ChangeType, Body: entry.Description}); err != nil {
		return changeEntry, err
	}

	return changeEntry, nil
}

// Broadcast sends the message to every registered subscription. A gone
// endpoint is deleted and skipped; other delivery failures are collected
// and joined so one bad subscriber never starves the rest.
func (s *Service) Broadcast(ctx context.Context, msg audit.Message) error {
	subscriptions, err := s.subs.FindAll(ctx)
	if err != nil {
		return err
	}

	var delivery []error
	for i := range subscriptions {
		sub := subscriptions[i]
		if err := s.transport.Send(ctx, sub, msg); err != nil {
			if errors.Is(err, audit.ErrSubscriptionGone) {
				if delErr := s.subs.Delete(ctx, sub.ID); delErr != nil {
					s.logger.Warn("failed to prune gone subscription",
						zap.String("endpoint", sub.Endpoint),
						zap.Error(delErr))
					delivery = append(delivery, delErr)
					continue
				}
				s.logger.Info("pruned gone push subscription",
					zap.String("endpoint", sub.Endpoint))
				continue
			}
			s.logger.Warn("push delivery failed",
				zap.String("endpoint", sub.Endpoint),
				zap.Error(err))
			delivery = append(delivery, err)
		}
	}

	return errors.Join(delivery...)
}

// Subscribe upserts a push subscription keyed by endpoint and sends the
// subscriber a confirmation notification. A failed confirmation is
// logged but does not fail the registration.
func (s *Service) Subscribe(ctx context.Context, actor identity.Actor, req SubscribeRequest) error {
	sub, err := s.subs.FindByEndpoint(ctx, req.Endpoint)
	switch {
	case err == nil:
		sub.Refresh(actor.ID, req.P256dh, req.Auth)
	case errors.Is(err, shared.ErrNotFound):
		sub, err = audit.NewSubscription(actor.ID, req.Endpoint, req.P256dh, req.Auth)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := s.subs.Save(ctx, sub); err != nil {
		return err
	}

	confirmation := audit.Message{
		Title: "Subscribed",
		Body:  fmt.Sprintf("%s subscribed to notifications", actor.Name),
	}
	if err := s.transport.Send(ctx, *sub, confirmation); err != nil {
		s.logger.Warn("subscription confirmation push failed",
			zap.String("endpoint", sub.Endpoint),
			zap.Error(err))
	}

	return nil
}

// History returns all change entries, newest first
func (s *Service) History(ctx context.Context) ([]ChangeEntryResponse, error) {
	entries, err := s.entries.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToChangeEntryResponses(entries), nil
}

// Entry returns a single change entry
func (s *Service) Entry(ctx context.Context, id uuid.UUID) (*ChangeEntryResponse, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToChangeEntryResponse(entry)
	return &response, nil
}
