package ports

import (
	"context"

	"pushcron/internal/domain/model"
)

// RunHistory persists delivery attempts.
type RunHistory interface {
	Record(ctx context.Context, run model.Run) error
	Recent(ctx context.Context, limit int) ([]model.Run, error)
}

// Counter is a persistent monotonically increasing counter.
type Counter interface {
	Increment(ctx context.Context) (int, error)
}
