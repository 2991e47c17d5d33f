package model

import "time"

// RunStatus is the outcome of a single delivery attempt.
type RunStatus string

const (
	RunSent   RunStatus = "sent"
	RunFailed RunStatus = "failed"
)

// Run records one delivery attempt.
type Run struct {
	ID             string        `json:"id"`
	Job            string        `json:"job"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Status         RunStatus     `json:"status"`
	NotificationID string        `json:"notification_id,omitempty"`
	Recipients     int           `json:"recipients"`
	Error          string        `json:"error,omitempty"`
}
