package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"pushcron/internal/adapter/httpapi"
	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
	"pushcron/internal/jobs"
	"pushcron/internal/usecase"
)

const (
	heartbeatEntry  = "heartbeat"
	shutdownTimeout = 5 * time.Second
)

// Settings tune the scheduler.
type Settings struct {
	Location   *time.Location
	JobTimeout time.Duration
	RunNow     bool
	ListenAddr string
}

type entry struct {
	name     string
	schedule string
	id       cron.EntryID
}

// App manages the lifecycle of the push scheduler.
type App struct {
	cron      *cron.Cron
	catalogue *jobs.Catalogue
	delivery  *usecase.Delivery
	heartbeat *usecase.Heartbeat
	history   ports.RunHistory
	logger    ports.Logger
	settings  Settings
	entries   []entry
}

// New constructs an App instance.
func New(
	catalogue *jobs.Catalogue,
	delivery *usecase.Delivery,
	heartbeat *usecase.Heartbeat,
	history ports.RunHistory,
	logger ports.Logger,
	settings Settings,
) *App {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.JobTimeout <= 0 {
		settings.JobTimeout = 2 * time.Minute
	}
	cronLog := cronLogger{logger: logger}
	return &App{
		cron: cron.New(
			cron.WithLocation(settings.Location),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
			cron.WithLogger(cronLog),
		),
		catalogue: catalogue,
		delivery:  delivery,
		heartbeat: heartbeat,
		history:   history,
		logger:    logger,
		settings:  settings,
	}
}

// Run registers every job, optionally fires them once, then serves the cron schedule until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJobs(); err != nil {
		return err
	}

	if a.settings.RunNow {
		a.logger.Info(ctx, "running all jobs immediately")
		for _, job := range a.catalogue.Jobs {
			a.runJob(ctx, job)
		}
	}

	server := a.startServer(ctx)

	a.logger.Info(ctx, "starting scheduler", "jobs", len(a.catalogue.Jobs), "timezone", a.settings.Location.String())
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(shutdownTimeout):
		a.logger.Error(context.Background(), "timed out waiting for running jobs")
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error(shutdownCtx, "health server shutdown failed", "error", err)
		}
	}

	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

// Upcoming lists the next fire time of every registered entry, soonest first.
func (a *App) Upcoming() []model.Upcoming {
	now := time.Now().In(a.settings.Location)
	upcoming := make([]model.Upcoming, 0, len(a.entries))
	for _, e := range a.entries {
		next := a.cron.Entry(e.id).Next
		if next.IsZero() {
			if schedule := a.cron.Entry(e.id).Schedule; schedule != nil {
				next = schedule.Next(now)
			}
		}
		upcoming = append(upcoming, model.Upcoming{Job: e.name, Schedule: e.schedule, Next: next})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Next.Before(upcoming[j].Next)
	})
	return upcoming
}

func (a *App) scheduleJobs() error {
	if len(a.entries) > 0 {
		return nil
	}

	for _, job := range a.catalogue.Jobs {
		id, err := a.cron.AddFunc(job.Schedule, func() {
			a.runJob(context.Background(), job)
		})
		if err != nil {
			return fmt.Errorf("schedule job %s: %w", job.Name, err)
		}
		a.entries = append(a.entries, entry{name: job.Name, schedule: job.Schedule, id: id})
	}

	if a.catalogue.Heartbeat != "" && a.heartbeat != nil {
		id, err := a.cron.AddFunc(a.catalogue.Heartbeat, func() {
			ctx, cancel := context.WithTimeout(context.Background(), a.settings.JobTimeout)
			defer cancel()
			_, _ = a.heartbeat.Run(ctx)
		})
		if err != nil {
			return fmt.Errorf("schedule heartbeat: %w", err)
		}
		a.entries = append(a.entries, entry{name: heartbeatEntry, schedule: a.catalogue.Heartbeat, id: id})
	}
	return nil
}

// runJob never returns an error: failures are logged, recorded and alerted by the delivery use case.
func (a *App) runJob(parent context.Context, job model.Job) {
	ctx, cancel := context.WithTimeout(parent, a.settings.JobTimeout)
	defer cancel()
	a.logger.Debug(ctx, "job triggered", "job", job.Name, "schedule", job.Schedule)
	_, _ = a.delivery.Deliver(ctx, job)
}

func (a *App) startServer(ctx context.Context) *http.Server {
	if a.settings.ListenAddr == "" {
		return nil
	}

	server := &http.Server{
		Addr:              a.settings.ListenAddr,
		Handler:           httpapi.NewRouter(a, a.history),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info(ctx, "health server listening", "addr", a.settings.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "health server failed", "error", err)
		}
	}()
	return server
}
