package salary

import "time"

// ComputeTotal is the single source of truth for a month's pay:
// basic + allowance + bonus - deduction.
func ComputeTotal(basic, allowance, bonus, deduction float64) float64 {
	return basic + allowance + bonus - deduction
}

// NormalizeMonth truncates any date within a month to its first day,
// the canonical key for the (employee, month) uniqueness rule.
func NormalizeMonth(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, time.UTC)
}
