package model

import "time"

// Job binds a message file and a credential prefix to a cron schedule.
type Job struct {
	Name        string
	App         string
	Schedule    string
	MessagePath string
}

// Upcoming describes the next fire time of a scheduled entry.
type Upcoming struct {
	Job      string    `json:"job"`
	Schedule string    `json:"schedule"`
	Next     time.Time `json:"next"`
}
