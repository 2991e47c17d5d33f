package app

import (
	"context"

	"github.com/robfig/cron/v3"

	"pushcron/internal/domain/ports"
)

// cronLogger routes robfig/cron's own logging through ports.Logger.
// cron's Info output is per-tick noise, so only errors are forwarded.
type cronLogger struct {
	logger ports.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(string, ...any) {}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	if l.logger == nil {
		return
	}
	args := append([]any{"error", err}, keysAndValues...)
	l.logger.Error(context.Background(), "cron: "+msg, args...)
}
