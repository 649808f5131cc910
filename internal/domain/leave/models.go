package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeSick      = "sick"
	TypeAnnual    = "annual"
	TypePersonal  = "personal"
	TypeMarriage  = "marriage"
	TypeMaternity = "maternity"
	TypeOther     = "other"
)

var Types = []string{TypeSick, TypeAnnual, TypePersonal, TypeMarriage, TypeMaternity, TypeOther}

type Request struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employeeId"`
	LeaveType      string     `json:"leaveType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	DurationDays   int        `json:"durationDays"`
	Reason         string     `json:"reason"`
	AttachmentPath string     `json:"attachmentPath,omitempty"`
	Status         string     `json:"status"`
	AdminNotes     string     `json:"adminNotes,omitempty"`
	DecidedBy      *int64     `json:"decidedBy,omitempty"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type NewRequest struct {
	EmployeeID     int64
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	AttachmentPath string
}
