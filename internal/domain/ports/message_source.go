package ports

import (
	"context"

	"pushcron/internal/domain/model"
)

// MessageSource loads the notification configured for a job.
type MessageSource interface {
	Load(ctx context.Context, path string) (*model.Notification, error)
}

// CredentialProvider resolves OneSignal credentials for an app prefix.
type CredentialProvider interface {
	Credentials(app string) (model.Credentials, error)
}
