package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// WebPushTransport delivers notifications over the Web Push protocol,
// signed with the configured VAPID key pair.
type WebPushTransport struct {
	cfg    config.PushConfig
	logger *zap.Logger
}

// NewWebPushTransport creates a new WebPushTransport
func NewWebPushTransport(cfg config.PushConfig, logger *zap.Logger) *WebPushTransport {
	return &WebPushTransport{cfg: cfg, logger: logger}
}

var _ audit.PushTransport = (*WebPushTransport)(nil)

// Send delivers the message to the subscription's endpoint. Endpoints
// answering 404 or 410 yield an error matching audit.ErrSubscriptionGone.
func (t *WebPushTransport) Send(ctx context.Context, sub audit.Subscription, msg audit.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		Subscriber:      t.cfg.Subscriber,
		VAPIDPublicKey:  t.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: t.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("send push to %s: %w", sub.Endpoint, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return classifyStatus(resp.StatusCode, sub.Endpoint)
}

// classifyStatus maps a push service response status to a delivery result
func classifyStatus(status int, endpoint string) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	default:
		return &audit.DeliveryError{StatusCode: status, Endpoint: endpoint}
	}
}
