package history

import (
	"context"

	"pushcron/internal/domain/model"
)

// Noop discards runs; used when no history database is configured.
type Noop struct{}

func (Noop) Record(context.Context, model.Run) error { return nil }

func (Noop) Recent(context.Context, int) ([]model.Run, error) { return nil, nil }
