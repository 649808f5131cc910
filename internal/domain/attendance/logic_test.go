package attendance

import "testing"

func clock(value string) *string {
	return &value
}

func TestIsLate(t *testing.T) {
	tests := []struct {
		name    string
		checkIn *string
		want    bool
	}{
		{name: "before cutoff", checkIn: clock("07:45"), want: false},
		{name: "exactly on cutoff", checkIn: clock("08:00"), want: false},
		{name: "exactly on cutoff with seconds", checkIn: clock("08:00:00"), want: false},
		{name: "one second after cutoff", checkIn: clock("08:00:01"), want: true},
		{name: "one minute after cutoff", checkIn: clock("08:01"), want: true},
		{name: "no check-in", checkIn: nil, want: false},
		{name: "empty check-in", checkIn: clock(""), want: false},
		{name: "garbage check-in", checkIn: clock("not-a-time"), want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLate(tc.checkIn, DefaultWorkdayStart); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsLateCustomStart(t *testing.T) {
	if IsLate(clock("08:30"), "09:00") {
		t.Fatal("expected 08:30 to be on time for a 09:00 start")
	}
	if !IsLate(clock("09:01"), "09:00") {
		t.Fatal("expected 09:01 to be late for a 09:00 start")
	}
}

func TestParseClock(t *testing.T) {
	if _, err := ParseClock("23:59:59"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseClock("8 in the morning"); err == nil {
		t.Fatal("expected error for invalid clock")
	}
}
