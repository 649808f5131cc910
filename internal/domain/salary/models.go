package salary

import "time"

type Salary struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Month       time.Time  `json:"month"`
	BasicSalary float64    `json:"basicSalary"`
	Allowance   float64    `json:"allowance"`
	Bonus       float64    `json:"bonus"`
	Deduction   float64    `json:"deduction"`
	TotalSalary float64    `json:"totalSalary"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Input is one month's compensation as entered by an admin. The total
// is never accepted from outside; it is always recomputed on save.
type Input struct {
	EmployeeID  int64
	Month       time.Time
	BasicSalary float64
	Allowance   float64
	Bonus       float64
	Deduction   float64
	PaymentDate *time.Time
	Notes       string
}
