package usecase

import (
	"context"
	"fmt"

	"pushcron/internal/domain/ports"
)

// Heartbeat bumps the keep-alive counter so scheduled repositories keep seeing activity.
type Heartbeat struct {
	counter ports.Counter
	logger  ports.Logger
}

// NewHeartbeat constructs a Heartbeat use case.
func NewHeartbeat(counter ports.Counter, logger ports.Logger) *Heartbeat {
	return &Heartbeat{counter: counter, logger: logger}
}

// Run increments the counter and returns the new value.
func (h *Heartbeat) Run(ctx context.Context) (int, error) {
	value, err := h.counter.Increment(ctx)
	if err != nil {
		h.logger.Error(ctx, "heartbeat failed", "error", err)
		return 0, fmt.Errorf("heartbeat: %w", err)
	}
	h.logger.Info(ctx, "heartbeat recorded", "value", value)
	return value, nil
}
