package attendance

import (
	"errors"
	"time"
)

// DefaultWorkdayStart is the check-in cutoff used when no override is
// configured.
const DefaultWorkdayStart = "08:00"

var ErrInvalidClock = errors.New("invalid clock value")

// ParseClock accepts HH:MM or HH:MM:SS wall-clock values.
func ParseClock(value string) (time.Time, error) {
	if parsed, err := time.Parse("15:04:05", value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("15:04", value); err == nil {
		return parsed, nil
	}
	return time.Time{}, ErrInvalidClock
}

// IsLate reports whether a check-in is strictly after the workday
// start. A missing check-in is never late, whatever the status says.
func IsLate(checkIn *string, workdayStart string) bool {
	if checkIn == nil || *checkIn == "" {
		return false
	}
	in, err := ParseClock(*checkIn)
	if err != nil {
		return false
	}
	start, err := ParseClock(workdayStart)
	if err != nil {
		start, _ = ParseClock(DefaultWorkdayStart)
	}
	return in.After(start)
}
