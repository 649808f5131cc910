package salary

import (
	"testing"
	"time"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name      string
		basic     float64
		allowance float64
		bonus     float64
		deduction float64
		want      float64
	}{
		{name: "all components", basic: 5000000, allowance: 500000, bonus: 250000, deduction: 100000, want: 5650000},
		{name: "zero defaults", basic: 4200000, want: 4200000},
		{name: "deduction only", basic: 3000000, deduction: 150000, want: 2850000},
		{name: "deduction exceeds basic", basic: 1000, deduction: 2500, want: -1500},
		{name: "all zero", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotal(tc.basic, tc.allowance, tc.bonus, tc.deduction)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	value := time.Date(2025, 7, 19, 13, 45, 0, 0, time.UTC)
	got := NormalizeMonth(value)
	want := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
