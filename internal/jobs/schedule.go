package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ParseSchedule parses a standard five-field cron expression or descriptor (@daily, @every 1h).
func ParseSchedule(spec string) (cron.Schedule, error) {
	return cron.ParseStandard(spec)
}

// NextFires returns the next n activation times of spec strictly after from.
// Times are computed and returned in from's location.
func NextFires(spec string, from time.Time, n int) ([]time.Time, error) {
	if n < 0 {
		return nil, fmt.Errorf("fire count must not be negative, got %d", n)
	}
	schedule, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}

	fires := make([]time.Time, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = schedule.Next(next)
		if next.IsZero() {
			break
		}
		fires = append(fires, next)
	}
	return fires, nil
}
