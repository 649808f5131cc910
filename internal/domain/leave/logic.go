package leave

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date before start date")

// DurationDays returns the inclusive day count between start and end:
// a single-day request counts as 1.
func DurationDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

func ValidType(leaveType string) bool {
	for _, t := range Types {
		if leaveType == t {
			return true
		}
	}
	return false
}
