package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunAfter returns the first activation of schedule after t.
func NextRunAfter(schedule string, t time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(t), nil
}

// Describe returns a human-readable description of a cron schedule
func Describe(schedule string) string {
	switch schedule {
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 * * * *":
		return "Every hour at :00"
	case "0 6 * * *":
		return "Daily at 06:00"
	default:
		return "Custom schedule: " + schedule
	}
}
