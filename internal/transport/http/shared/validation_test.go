package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("username", "  ", "username is required")
	v.Required("email", "a@example.com", "email is required")
	v.Enum("status", "unknown", []string{"present", "late"}, "must be a known status")
	v.Add("address", "too long")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Field != "address" || issues[1].Field != "status" || issues[2].Field != "username" {
		t.Fatalf("expected issues sorted by field, got %+v", issues)
	}
}

func TestValidatorEnumIgnoresEmptyAndCase(t *testing.T) {
	v := NewValidator()
	v.Enum("status", "", []string{"present"}, "must be a known status")
	v.Enum("status", "PRESENT", []string{"present"}, "must be a known status")
	if v.HasIssues() {
		t.Fatalf("unexpected issues: %+v", v.Issues())
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("startDate", "2026-03-10")
	end, _ := v.Date("endDate", "2026-03-08")
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected both date fields flagged, got %+v", v.Issues())
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("expected no rejection without issues")
	}

	v.Add("name", "name is required")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "plain date", value: "2026-03-02", want: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2026-03-02T10:30:00Z", want: time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC)},
		{name: "empty is zero", value: ""},
		{name: "garbage", value: "yesterday", wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := ParseMonth("2026-3"); err == nil {
		t.Fatal("expected error for short month")
	}
}
