package di

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"pushcron/internal/adapter/counter"
	"pushcron/internal/adapter/credentials"
	"pushcron/internal/adapter/discord"
	"pushcron/internal/adapter/history"
	"pushcron/internal/adapter/messagefile"
	"pushcron/internal/adapter/onesignal"
	"pushcron/internal/app"
	"pushcron/internal/config"
	"pushcron/internal/domain/ports"
	"pushcron/internal/jobs"
)

// logOutput is where provideSlogLogger writes.
var logOutput io.Writer = os.Stderr

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(logOutput, opts)
	} else {
		handler = slog.NewJSONHandler(logOutput, opts)
	}
	return slog.New(handler)
}

func provideCredentials() ports.CredentialProvider {
	return credentials.NewEnv()
}

func provideMessageSource() ports.MessageSource {
	return messagefile.New()
}

func provideNotifier(cfg *config.Config, logger ports.Logger) ports.Notifier {
	return onesignal.New(cfg.OneSignalEndpoint, cfg.RequestTimeout, logger)
}

func provideAlerter(cfg *config.Config, logger ports.Logger) ports.Alerter {
	if cfg.DiscordWebhookURL == "" {
		return nil
	}
	return discord.NewWebhook(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger)
}

func provideHistory(cfg *config.Config) (ports.RunHistory, func(), error) {
	if cfg.HistoryDB == "" {
		return history.Noop{}, func() {}, nil
	}
	store, err := history.Open(context.Background(), cfg.HistoryDB)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func provideCounter(cfg *config.Config) ports.Counter {
	return counter.NewFile(cfg.HeartbeatFile)
}

func provideSettings(cfg *config.Config, catalogue *jobs.Catalogue) (app.Settings, error) {
	loc, err := catalogue.Location(cfg.Timezone)
	if err != nil {
		return app.Settings{}, err
	}
	return app.Settings{
		Location:   loc,
		JobTimeout: cfg.JobTimeout,
		RunNow:     cfg.RunNow,
		ListenAddr: cfg.ListenAddr,
	}, nil
}
