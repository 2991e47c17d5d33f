//go:build wireinject

package di

import (
	"github.com/google/wire"

	"pushcron/internal/adapter/logging"
	"pushcron/internal/app"
	"pushcron/internal/config"
	"pushcron/internal/domain/ports"
	"pushcron/internal/jobs"
	"pushcron/internal/usecase"
)

var loggerSet = wire.NewSet(
	provideSlogLogger,
	logging.New,
	wire.Bind(new(ports.Logger), new(*logging.SLogger)),
)

var deliverySet = wire.NewSet(
	loggerSet,
	provideCredentials,
	provideMessageSource,
	provideNotifier,
	provideAlerter,
	provideHistory,
	usecase.NewDelivery,
)

var heartbeatSet = wire.NewSet(
	provideCounter,
	usecase.NewHeartbeat,
)

// InitializeDelivery wires the one-shot send path.
func InitializeDelivery(cfg *config.Config) (*usecase.Delivery, func(), error) {
	wire.Build(deliverySet)
	return nil, nil, nil
}

// InitializeHeartbeat wires the keep-alive counter.
func InitializeHeartbeat(cfg *config.Config) (*usecase.Heartbeat, error) {
	wire.Build(loggerSet, heartbeatSet)
	return nil, nil
}

// InitializeHistory opens the delivery ledger.
func InitializeHistory(cfg *config.Config) (ports.RunHistory, func(), error) {
	wire.Build(provideHistory)
	return nil, nil, nil
}

// InitializeApp wires the long-running scheduler.
func InitializeApp(cfg *config.Config, catalogue *jobs.Catalogue) (*app.App, func(), error) {
	wire.Build(
		deliverySet,
		heartbeatSet,
		provideSettings,
		app.New,
	)
	return nil, nil, nil
}
