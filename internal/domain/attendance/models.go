package attendance

import "time"

const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusAbsent     = "absent"
	StatusPermission = "permission"
	StatusSick       = "sick"
)

var Statuses = []string{StatusPresent, StatusLate, StatusAbsent, StatusPermission, StatusSick}

type Record struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Date       time.Time `json:"date"`
	CheckIn    *string   `json:"checkIn,omitempty"`
	CheckOut   *string   `json:"checkOut,omitempty"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	Location   string    `json:"location,omitempty"`
	IsLate     bool      `json:"isLate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Mark is a single day's attendance submission. Nil clock fields leave
// the stored values untouched on an update.
type Mark struct {
	CheckIn  *string
	CheckOut *string
	Status   string
	Notes    string
	Location string
}
