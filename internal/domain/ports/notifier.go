package ports

import (
	"context"

	"pushcron/internal/domain/model"
)

// Notifier delivers push notifications through a provider (e.g. OneSignal).
type Notifier interface {
	Send(ctx context.Context, creds model.Credentials, notification model.Notification) (*model.Delivery, error)
}

// Alerter posts operator alerts to a chat channel.
type Alerter interface {
	Alert(ctx context.Context, alert model.Alert) error
}
