package leave

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "single day", start: date(2025, 3, 10), end: date(2025, 3, 10), want: 1},
		{name: "three days", start: date(2025, 3, 10), end: date(2025, 3, 12), want: 3},
		{name: "across month boundary", start: date(2025, 1, 30), end: date(2025, 2, 2), want: 4},
		{name: "full week", start: date(2025, 6, 2), end: date(2025, 6, 8), want: 7},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := DurationDays(tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}

func TestDurationDaysInvalidRange(t *testing.T) {
	_, err := DurationDays(date(2025, 3, 12), date(2025, 3, 10))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidType(t *testing.T) {
	for _, leaveType := range Types {
		if !ValidType(leaveType) {
			t.Fatalf("expected %q to be a valid type", leaveType)
		}
	}
	if ValidType("sabbatical") {
		t.Fatal("expected unknown type to be rejected")
	}
}
