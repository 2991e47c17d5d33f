package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

// Delivery sends the notification configured for a job and records the outcome.
type Delivery struct {
	credentials ports.CredentialProvider
	messages    ports.MessageSource
	notifier    ports.Notifier
	history     ports.RunHistory
	alerter     ports.Alerter
	logger      ports.Logger
	now         func() time.Time
}

// NewDelivery constructs a Delivery use case. history and alerter may be nil.
func NewDelivery(
	credentials ports.CredentialProvider,
	messages ports.MessageSource,
	notifier ports.Notifier,
	history ports.RunHistory,
	alerter ports.Alerter,
	logger ports.Logger,
) *Delivery {
	return &Delivery{
		credentials: credentials,
		messages:    messages,
		notifier:    notifier,
		history:     history,
		alerter:     alerter,
		logger:      logger,
		now:         time.Now,
	}
}

// Deliver runs one job. The returned run is populated even when err is non-nil.
func (d *Delivery) Deliver(ctx context.Context, job model.Job) (*model.Run, error) {
	start := d.now()
	run := &model.Run{
		ID:        uuid.NewString(),
		Job:       job.Name,
		StartedAt: start,
	}
	d.logger.Info(ctx, "starting delivery", "job", job.Name, "run_id", run.ID)

	delivery, err := d.send(ctx, job)
	run.Duration = d.now().Sub(start)
	if err != nil {
		run.Status = model.RunFailed
		run.Error = err.Error()
		d.logger.Error(ctx, "delivery failed", "job", job.Name, "run_id", run.ID, "error", err)
		d.record(ctx, run)
		d.alert(ctx, job, run, err)
		return run, err
	}

	run.Status = model.RunSent
	run.NotificationID = delivery.ID
	run.Recipients = delivery.Recipients
	d.record(ctx, run)
	d.logger.Info(ctx, "delivery completed",
		"job", job.Name,
		"run_id", run.ID,
		"notification_id", delivery.ID,
		"recipients", delivery.Recipients,
		"duration", run.Duration,
	)
	return run, nil
}

func (d *Delivery) send(ctx context.Context, job model.Job) (*model.Delivery, error) {
	creds, err := d.credentials.Credentials(job.App)
	if err != nil {
		return nil, err
	}

	notification, err := d.messages.Load(ctx, job.MessagePath)
	if err != nil {
		return nil, err
	}
	if notification.Heading == "" {
		notification.Heading = model.DisplayName(job.App) + " Notification"
	}

	d.logger.Info(ctx, "sending notification",
		"job", job.Name,
		"app", job.App,
		"name", notification.Name,
		"heading", notification.Heading,
		"segment", notification.Segment,
		"url", notification.URL,
		"big_picture", notification.BigPicture,
		"rate_button", notification.ShowRateButton,
	)

	delivery, err := d.notifier.Send(ctx, creds, *notification)
	if err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}
	return delivery, nil
}

func (d *Delivery) record(ctx context.Context, run *model.Run) {
	if d.history == nil {
		return
	}
	if err := d.history.Record(ctx, *run); err != nil {
		d.logger.Error(ctx, "failed to record run", "run_id", run.ID, "error", err)
	}
}

func (d *Delivery) alert(ctx context.Context, job model.Job, run *model.Run, cause error) {
	if d.alerter == nil {
		return
	}
	alert := model.Alert{
		Title:       "Push delivery failed: " + job.Name,
		Description: cause.Error(),
		Fields: []model.AlertField{
			{Name: "App", Value: job.App, Inline: true},
			{Name: "Schedule", Value: job.Schedule, Inline: true},
			{Name: "Run", Value: run.ID, Inline: false},
		},
	}
	if err := d.alerter.Alert(ctx, alert); err != nil {
		d.logger.Error(ctx, "failed to send alert", "job", job.Name, "error", err)
	}
}
